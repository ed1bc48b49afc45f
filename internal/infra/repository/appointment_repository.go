package repository

import (
	"context"

	domain "github.com/salonhub/salon-api/internal/domain/appointment"
	"github.com/salonhub/salon-api/internal/models"
	"github.com/salonhub/salon-api/internal/schema"
	"github.com/salonhub/salon-api/internal/store"
)

const defaultAppointmentSort = "date desc"

var appointmentSearchColumns = []string{"name", "phone", "service"}

type AppointmentRepository struct {
	store *store.Store
}

func NewAppointmentRepository(s *store.Store) *AppointmentRepository {
	return &AppointmentRepository{store: s}
}

var _ domain.Repository = (*AppointmentRepository)(nil)

// --------------------------------------------------
// Listing
// --------------------------------------------------

func appointmentConditions(f domain.ListFilter) []store.Condition {
	var conds []store.Condition
	if f.Status != "" {
		conds = append(conds, store.Eq("status", f.Status))
	}
	if f.Date != "" {
		conds = append(conds, store.Eq("date", f.Date))
	}
	if f.ClientID != nil {
		conds = append(conds, store.Eq("client_id", *f.ClientID))
	}
	return conds
}

func appointmentSearch(f domain.ListFilter) *store.Search {
	if f.Search == "" {
		return nil
	}
	return &store.Search{Term: f.Search, Columns: appointmentSearchColumns}
}

func (r *AppointmentRepository) Count(ctx context.Context, f domain.ListFilter) (int64, error) {
	return r.store.Count(ctx, schema.Appointments, appointmentConditions(f), appointmentSearch(f))
}

func (r *AppointmentRepository) Find(
	ctx context.Context,
	f domain.ListFilter,
	limit, offset int,
) ([]models.Appointment, error) {

	sort := f.Sort
	if sort == "" {
		sort = defaultAppointmentSort
	}

	return store.SelectAll[models.Appointment](ctx, r.store, schema.Appointments, store.Query{
		Conditions: appointmentConditions(f),
		Search:     appointmentSearch(f),
		OrderBy:    sort,
		Limit:      limit,
		Offset:     offset,
	})
}

// --------------------------------------------------
// Single record
// --------------------------------------------------

func (r *AppointmentRepository) Get(ctx context.Context, id int64) (*models.Appointment, error) {
	ap, err := store.SelectByID[models.Appointment](ctx, r.store, schema.Appointments, id)
	if err != nil {
		return nil, err
	}
	if ap == nil {
		return nil, store.ErrNotFound
	}
	return ap, nil
}

func (r *AppointmentRepository) Create(ctx context.Context, ap *models.Appointment) (*models.Appointment, error) {
	fields := store.Fields{
		"service":   ap.Service,
		"date":      ap.Date,
		"time":      ap.Time,
		"name":      ap.Name,
		"phone":     ap.Phone,
		"client_id": ap.ClientID,
	}
	if ap.Status != "" {
		fields["status"] = ap.Status
	}

	created, err := store.Insert[models.Appointment](ctx, r.store, schema.Appointments, fields)
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, store.ErrNotInserted
	}
	return created, nil
}

func (r *AppointmentRepository) Update(
	ctx context.Context,
	id int64,
	p domain.Patch,
) (*models.Appointment, error) {

	updated, err := store.Update[models.Appointment](ctx, r.store, schema.Appointments, id, store.Fields{
		"service":   p.Service,
		"date":      p.Date,
		"time":      p.Time,
		"name":      p.Name,
		"phone":     p.Phone,
		"client_id": p.ClientID,
		"status":    p.Status,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, store.ErrNotFound
	}
	return updated, nil
}

func (r *AppointmentRepository) Transition(
	ctx context.Context,
	id int64,
	from, to domain.Status,
) (bool, error) {

	n, err := r.store.Exec(ctx, "appointments",
		"UPDATE appointments SET status = ? WHERE id = ? AND status = ?",
		string(to), id, string(from),
	)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.store.Delete(ctx, schema.Appointments, id)
	return err
}
