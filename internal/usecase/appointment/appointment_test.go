package appointment

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/salonhub/salon-api/internal/audit"
	domain "github.com/salonhub/salon-api/internal/domain/appointment"
	"github.com/salonhub/salon-api/internal/httperr"
	"github.com/salonhub/salon-api/internal/models"
	"github.com/salonhub/salon-api/internal/store"
	"github.com/salonhub/salon-api/internal/timezone"
)

// ------------------------------------------------------
// fakes
// ------------------------------------------------------

type fakeRepo struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Appointment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: map[int64]models.Appointment{}}
}

func (r *fakeRepo) Count(_ context.Context, f domain.ListFilter) (int64, error) {
	rows, _ := r.Find(context.Background(), f, 0, 0)
	return int64(len(rows)), nil
}

func (r *fakeRepo) Find(_ context.Context, f domain.ListFilter, limit, offset int) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Appointment
	for _, ap := range r.rows {
		if f.Status != "" && ap.Status != f.Status {
			continue
		}
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if offset > len(out) {
		return []models.Appointment{}, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeRepo) Get(_ context.Context, id int64) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &ap, nil
}

func (r *fakeRepo) Create(_ context.Context, ap *models.Appointment) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	cp := *ap
	cp.ID = r.nextID
	cp.CreatedAt = time.Now()
	r.rows[cp.ID] = cp
	return &cp, nil
}

func (r *fakeRepo) Update(_ context.Context, id int64, p domain.Patch) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.rows[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	if p.Status != nil {
		ap.Status = *p.Status
	}
	if p.Time != nil {
		ap.Time = *p.Time
	}
	if p.ClientID != nil {
		ap.ClientID = p.ClientID
	}
	r.rows[id] = ap
	return &ap, nil
}

func (r *fakeRepo) Transition(_ context.Context, id int64, from, to domain.Status) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ap, ok := r.rows[id]
	if !ok || ap.Status != string(from) {
		return false, nil
	}
	ap.Status = string(to)
	r.rows[id] = ap
	return true, nil
}

// staleRepo serves reads taken before any status change, as a concurrent
// caller that loaded the row early would see it.
type staleRepo struct {
	*fakeRepo
}

func (r staleRepo) Get(ctx context.Context, id int64) (*models.Appointment, error) {
	ap, err := r.fakeRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	ap.Status = string(domain.StatusPending)
	return ap, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return store.ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

type fakeClients struct {
	mu     sync.Mutex
	known  map[int64]bool
	visits map[int64]int
}

func (c *fakeClients) Exists(_ context.Context, id int64) (bool, error) {
	return c.known[id], nil
}

func (c *fakeClients) RecordVisit(_ context.Context, id int64, _ time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.visits[id]++
	return nil
}

type nopSink struct{}

func (nopSink) Log(context.Context, audit.Event) error { return nil }

func newDispatcher(t *testing.T) *audit.Dispatcher {
	d := audit.NewDispatcher(nopSink{})
	t.Cleanup(func() { _ = d.Close(context.Background()) })
	return d
}

// ------------------------------------------------------
// tests
// ------------------------------------------------------

func TestCreateAppointment(t *testing.T) {
	repo := newFakeRepo()
	clients := &fakeClients{known: map[int64]bool{1: true}, visits: map[int64]int{}}
	uc := NewCreateAppointment(repo, clients, newDispatcher(t))
	ctx := context.Background()

	ap, err := uc.Execute(ctx, CreateAppointmentInput{
		Service: "Haircut", Date: "2024-03-01", Time: "10:00", Name: "Ana", Phone: "12345678",
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if ap.Status != string(domain.StatusPending) {
		t.Errorf("expected pending, got %s", ap.Status)
	}

	missing := int64(9)
	_, err = uc.Execute(ctx, CreateAppointmentInput{
		Service: "Haircut", Date: "2024-03-01", Time: "10:00", Name: "Ana", Phone: "12345678",
		ClientID: &missing,
	})
	if !httperr.IsBusiness(err, "client_not_found") {
		t.Errorf("expected client_not_found, got %v", err)
	}

	_, err = uc.Execute(ctx, CreateAppointmentInput{
		Service: "Haircut", Date: "2024-02-30", Time: "10:00", Name: "Ana", Phone: "12345678",
	})
	if !httperr.IsBusiness(err, "invalid_date_or_time") {
		t.Errorf("expected invalid_date_or_time, got %v", err)
	}

	_, err = uc.Execute(ctx, CreateAppointmentInput{
		Service: "Haircut", Date: "2024-03-01", Time: "10:00", Name: "Ana", Phone: "12345678",
		Status: "scheduled",
	})
	if !httperr.IsBusiness(err, "invalid_status") {
		t.Errorf("expected invalid_status, got %v", err)
	}
}

func TestCompleteAppointment_RecordsVisit(t *testing.T) {
	repo := newFakeRepo()
	clients := &fakeClients{known: map[int64]bool{1: true}, visits: map[int64]int{}}
	d := newDispatcher(t)
	clock := timezone.Fixed(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	clientID := int64(1)
	created, _ := NewCreateAppointment(repo, clients, d).Execute(ctx, CreateAppointmentInput{
		Service: "Haircut", Date: "2024-03-01", Time: "10:00", Name: "Ana", Phone: "12345678",
		ClientID: &clientID,
	})

	uc := NewCompleteAppointment(repo, clients, d, clock)
	ap, err := uc.Execute(ctx, created.ID)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if ap.Status != string(domain.StatusCompleted) {
		t.Errorf("expected completed, got %s", ap.Status)
	}
	if clients.visits[1] != 1 {
		t.Errorf("expected 1 visit, got %d", clients.visits[1])
	}

	if _, err := uc.Execute(ctx, created.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("expected invalid_state on second completion, got %v", err)
	}
	if _, err := NewCancelAppointment(repo, d).Execute(ctx, created.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("expected invalid_state on cancel after completion, got %v", err)
	}
}

func TestCompleteAppointment_StaleReadLosesTransition(t *testing.T) {
	base := newFakeRepo()
	clients := &fakeClients{known: map[int64]bool{1: true}, visits: map[int64]int{}}
	d := newDispatcher(t)
	clock := timezone.Fixed(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	clientID := int64(1)
	created, _ := NewCreateAppointment(base, clients, d).Execute(ctx, CreateAppointmentInput{
		Service: "Haircut", Date: "2024-03-01", Time: "10:00", Name: "Ana", Phone: "12345678",
		ClientID: &clientID,
	})

	repo := staleRepo{base}
	uc := NewCompleteAppointment(repo, clients, d, clock)

	if _, err := uc.Execute(ctx, created.ID); err != nil {
		t.Fatalf("first Execute() error: %v", err)
	}
	if _, err := uc.Execute(ctx, created.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("expected invalid_state for the losing caller, got %v", err)
	}
	if _, err := NewCancelAppointment(repo, d).Execute(ctx, created.ID); !httperr.IsBusiness(err, "invalid_state") {
		t.Errorf("expected invalid_state for a stale cancel, got %v", err)
	}
	if clients.visits[1] != 1 {
		t.Errorf("expected 1 visit, got %d", clients.visits[1])
	}
	if got, _ := base.Get(ctx, created.ID); got.Status != string(domain.StatusCompleted) {
		t.Errorf("expected completed, got %s", got.Status)
	}
}

func TestCompleteAppointment_ConcurrentCallers(t *testing.T) {
	repo := newFakeRepo()
	clients := &fakeClients{known: map[int64]bool{1: true}, visits: map[int64]int{}}
	d := newDispatcher(t)
	clock := timezone.Fixed(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	ctx := context.Background()

	clientID := int64(1)
	created, _ := NewCreateAppointment(repo, clients, d).Execute(ctx, CreateAppointmentInput{
		Service: "Haircut", Date: "2024-03-01", Time: "10:00", Name: "Ana", Phone: "12345678",
		ClientID: &clientID,
	})

	uc := NewCompleteAppointment(repo, clients, d, clock)

	const callers = 8
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := uc.Execute(ctx, created.ID); err == nil {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if wins != 1 {
		t.Errorf("expected exactly 1 successful completion, got %d", wins)
	}
	if clients.visits[1] != 1 {
		t.Errorf("expected 1 visit, got %d", clients.visits[1])
	}
}

func TestListAppointments_Pages(t *testing.T) {
	repo := newFakeRepo()
	clients := &fakeClients{known: map[int64]bool{}, visits: map[int64]int{}}
	create := NewCreateAppointment(repo, clients, newDispatcher(t))
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if _, err := create.Execute(ctx, CreateAppointmentInput{
			Service: "Haircut", Date: "2024-03-01", Time: "10:00", Name: "Ana", Phone: "12345678",
		}); err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}

	page, err := NewListAppointments(repo).Execute(ctx, domain.ListFilter{}, 2, 5)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if page.Total != 7 || page.TotalPages != 2 || len(page.Items) != 2 {
		t.Errorf("unexpected page %+v", page)
	}

	empty, err := NewListAppointments(repo).Execute(ctx, domain.ListFilter{Status: "cancelled"}, 1, 5)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if empty.TotalPages != 1 || empty.Items == nil || len(empty.Items) != 0 {
		t.Errorf("unexpected empty page %+v", empty)
	}
}

func TestDeleteAppointment_Missing(t *testing.T) {
	uc := NewDeleteAppointment(newFakeRepo(), newDispatcher(t))
	if err := uc.Execute(context.Background(), 42); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
