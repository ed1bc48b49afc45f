package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/salonhub/salon-api/internal/config"
	"github.com/salonhub/salon-api/internal/db"
	"github.com/salonhub/salon-api/internal/models"
	"github.com/salonhub/salon-api/internal/schema"
	"github.com/salonhub/salon-api/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()

	p, err := db.Open(context.Background(), config.DatabaseConfig{
		Driver:          db.DriverSQLite,
		URL:             filepath.Join(t.TempDir(), "salon.db") + "?_pragma=busy_timeout(5000)",
		PoolSize:        5,
		AcquireTimeout:  time.Second,
		ConnMaxLifetime: time.Minute,
	})
	if err != nil {
		t.Fatalf("db.Open() error: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })

	if err := p.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate() error: %v", err)
	}
	return store.New(p)
}

func haircut() store.Fields {
	return store.Fields{
		"service": "Haircut",
		"date":    "2024-03-01",
		"time":    "10:00",
		"name":    "Ana",
		"phone":   "12345678",
	}
}

func TestInsert_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := store.Insert[models.Appointment](ctx, s, schema.Appointments, haircut())
	if err != nil {
		t.Fatalf("Insert() error: %v", err)
	}
	if created == nil {
		t.Fatal("expected created appointment, got nil")
	}
	if created.ID == 0 {
		t.Error("expected generated id")
	}
	if created.Status != "pending" {
		t.Errorf("expected default status pending, got %q", created.Status)
	}
	if created.CreatedAt.IsZero() {
		t.Error("expected generated created_at")
	}

	got, err := store.SelectByID[models.Appointment](ctx, s, schema.Appointments, created.ID)
	if err != nil {
		t.Fatalf("SelectByID() error: %v", err)
	}
	if got == nil {
		t.Fatal("expected appointment, got nil")
	}
	if got.Service != "Haircut" || got.Date != "2024-03-01" || got.Time != "10:00" ||
		got.Name != "Ana" || got.Phone != "12345678" || got.ClientID != nil {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestSelectByID_Absent(t *testing.T) {
	s := newTestStore(t)

	got, err := store.SelectByID[models.Appointment](context.Background(), s, schema.Appointments, 404)
	if err != nil {
		t.Fatalf("SelectByID() error: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestSelectAll_EmptyIsNotNil(t *testing.T) {
	s := newTestStore(t)

	rows, err := store.SelectAll[models.Client](context.Background(), s, schema.Clients, store.Query{})
	if err != nil {
		t.Fatalf("SelectAll() error: %v", err)
	}
	if rows == nil || len(rows) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", rows)
	}
}

func TestSelectAll_FilterSearchPage(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seed := []store.Fields{
		{"service": "Haircut", "date": "2024-03-01", "time": "10:00", "name": "Ana", "phone": "11111111"},
		{"service": "Haircut", "date": "2024-03-02", "time": "11:00", "name": "Mariana", "phone": "22222222", "status": "completed"},
		{"service": "Beard", "date": "2024-03-03", "time": "12:00", "name": "Bruno", "phone": "33333333"},
		{"service": "Color", "date": "2024-03-04", "time": "13:00", "name": "ANAlia", "phone": "44444444"},
	}
	for _, f := range seed {
		if _, err := store.Insert[models.Appointment](ctx, s, schema.Appointments, f); err != nil {
			t.Fatalf("seed insert error: %v", err)
		}
	}

	search := &store.Search{Term: "ana", Columns: []string{"name", "phone"}}
	conds := []store.Condition{store.Eq("status", "pending")}

	n, err := s.Count(ctx, schema.Appointments, conds, search)
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 pending matches, got %d", n)
	}

	rows, err := store.SelectAll[models.Appointment](ctx, s, schema.Appointments, store.Query{
		Conditions: conds,
		Search:     search,
		OrderBy:    "date desc",
		Limit:      1,
		Offset:     1,
	})
	if err != nil {
		t.Fatalf("SelectAll() error: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Ana" {
		t.Errorf("expected second page to hold Ana, got %+v", rows)
	}

	generic, err := store.SelectAll[store.Row](ctx, s, schema.Appointments, store.Query{
		Conditions: []store.Condition{store.Eq("service", "Beard")},
	})
	if err != nil {
		t.Fatalf("SelectAll(Row) error: %v", err)
	}
	if len(generic) != 1 || generic[0]["name"] != "Bruno" {
		t.Errorf("unexpected generic rows %v", generic)
	}
}

func TestUpdate_PartialAndEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := store.Insert[models.Appointment](ctx, s, schema.Appointments, haircut())
	if err != nil || created == nil {
		t.Fatalf("Insert() = %v, %v", created, err)
	}

	same, err := store.Update[models.Appointment](ctx, s, schema.Appointments, created.ID, store.Fields{})
	if err != nil {
		t.Fatalf("empty Update() error: %v", err)
	}
	if same == nil || same.ID != created.ID || same.Time != created.Time ||
		same.Status != created.Status || !same.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("expected no-op update to return %+v, got %+v", created, same)
	}

	var noName *string
	updated, err := store.Update[models.Appointment](ctx, s, schema.Appointments, created.ID, store.Fields{
		"time": "15:30",
		"name": noName,
	})
	if err != nil {
		t.Fatalf("Update() error: %v", err)
	}
	if updated.Time != "15:30" {
		t.Errorf("expected time 15:30, got %q", updated.Time)
	}
	if updated.Name != "Ana" {
		t.Errorf("expected untouched name Ana, got %q", updated.Name)
	}

	missing, err := store.Update[models.Appointment](ctx, s, schema.Appointments, 9999, store.Fields{"time": "09:00"})
	if err != nil {
		t.Fatalf("Update() on missing id error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for missing id, got %+v", missing)
	}
}

func TestDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := store.Insert[models.Appointment](ctx, s, schema.Appointments, haircut())
	if err != nil || created == nil {
		t.Fatalf("Insert() = %v, %v", created, err)
	}

	res, err := s.Delete(ctx, schema.Appointments, created.ID)
	if err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if res.AffectedRows != 1 {
		t.Errorf("expected 1 affected row, got %d", res.AffectedRows)
	}

	_, err = s.Delete(ctx, schema.Appointments, created.ID)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestInsert_UniqueViolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	svc := store.Fields{"name": "Haircut", "price": 50.0, "duration": 30}
	if _, err := store.Insert[models.Service](ctx, s, schema.Services, svc); err != nil {
		t.Fatalf("first Insert() error: %v", err)
	}

	_, err := store.Insert[models.Service](ctx, s, schema.Services, svc)
	var se *store.StorageError
	if !errors.As(err, &se) {
		t.Fatalf("expected StorageError, got %v", err)
	}
	if !store.IsUniqueViolation(err) {
		t.Errorf("expected unique violation, got %v", err)
	}
}

func TestClosedProviderFails(t *testing.T) {
	p, err := db.Open(context.Background(), config.DatabaseConfig{
		Driver:         db.DriverSQLite,
		URL:            filepath.Join(t.TempDir(), "closed.db"),
		PoolSize:       1,
		AcquireTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("db.Open() error: %v", err)
	}
	s := store.New(p)
	_ = p.Close()

	_, err = s.Count(context.Background(), schema.Clients, nil, nil)
	if !db.IsConnectionError(err) {
		t.Errorf("expected ConnectionError, got %v", err)
	}
}

func TestCount_SearchMatchesWildcardsLiterally(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Promo 100%", "Ana_Maria", "Bruno"} {
		f := store.Fields{"service": "Haircut", "date": "2024-03-01", "time": "10:00", "name": name, "phone": "11111111"}
		if _, err := store.Insert[models.Appointment](ctx, s, schema.Appointments, f); err != nil {
			t.Fatalf("seed insert error: %v", err)
		}
	}

	tests := []struct {
		term string
		want int64
	}{
		{"%", 1},
		{"_", 1},
		{"a_m", 1},
		{"o", 2},
	}

	for _, tt := range tests {
		n, err := s.Count(ctx, schema.Appointments, nil, &store.Search{Term: tt.term, Columns: []string{"name"}})
		if err != nil {
			t.Fatalf("Count(%q) error: %v", tt.term, err)
		}
		if n != tt.want {
			t.Errorf("term %q: expected %d matches, got %d", tt.term, tt.want, n)
		}
	}
}
