package repository

import (
	"context"
	"time"

	appointment "github.com/salonhub/salon-api/internal/domain/appointment"
	domain "github.com/salonhub/salon-api/internal/domain/client"
	"github.com/salonhub/salon-api/internal/models"
	"github.com/salonhub/salon-api/internal/schema"
	"github.com/salonhub/salon-api/internal/store"
)

const defaultClientSort = "name asc"

var clientSearchColumns = []string{"name", "phone", "email"}

type ClientRepository struct {
	store *store.Store
}

func NewClientRepository(s *store.Store) *ClientRepository {
	return &ClientRepository{store: s}
}

var (
	_ domain.Repository   = (*ClientRepository)(nil)
	_ appointment.Clients = (*ClientRepository)(nil)
)

func clientSearch(f domain.ListFilter) *store.Search {
	if f.Search == "" {
		return nil
	}
	return &store.Search{Term: f.Search, Columns: clientSearchColumns}
}

func (r *ClientRepository) Count(ctx context.Context, f domain.ListFilter) (int64, error) {
	return r.store.Count(ctx, schema.Clients, nil, clientSearch(f))
}

func (r *ClientRepository) Find(ctx context.Context, f domain.ListFilter, limit, offset int) ([]models.Client, error) {
	sort := f.Sort
	if sort == "" {
		sort = defaultClientSort
	}
	return store.SelectAll[models.Client](ctx, r.store, schema.Clients, store.Query{
		Search:  clientSearch(f),
		OrderBy: sort,
		Limit:   limit,
		Offset:  offset,
	})
}

func (r *ClientRepository) Get(ctx context.Context, id int64) (*models.Client, error) {
	c, err := store.SelectByID[models.Client](ctx, r.store, schema.Clients, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, store.ErrNotFound
	}
	return c, nil
}

func (r *ClientRepository) Exists(ctx context.Context, id int64) (bool, error) {
	n, err := r.store.Count(ctx, schema.Clients, []store.Condition{store.Eq("id", id)}, nil)
	return n > 0, err
}

func (r *ClientRepository) Create(ctx context.Context, c *models.Client) (*models.Client, error) {
	created, err := store.Insert[models.Client](ctx, r.store, schema.Clients, store.Fields{
		"name":  c.Name,
		"phone": c.Phone,
		"email": c.Email,
	})
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, store.ErrNotInserted
	}
	return created, nil
}

func (r *ClientRepository) Update(ctx context.Context, id int64, p domain.Patch) (*models.Client, error) {
	updated, err := store.Update[models.Client](ctx, r.store, schema.Clients, id, store.Fields{
		"name":  p.Name,
		"phone": p.Phone,
		"email": p.Email,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, store.ErrNotFound
	}
	return updated, nil
}

func (r *ClientRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.store.Delete(ctx, schema.Clients, id)
	return err
}

func (r *ClientRepository) RecordVisit(ctx context.Context, id int64, at time.Time) error {
	n, err := r.store.Exec(ctx, "clients",
		"UPDATE clients SET total_visits = total_visits + 1, last_visit = ? WHERE id = ?",
		at, id,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
