package repository

import (
	"context"

	domain "github.com/salonhub/salon-api/internal/domain/service"
	"github.com/salonhub/salon-api/internal/models"
	"github.com/salonhub/salon-api/internal/schema"
	"github.com/salonhub/salon-api/internal/store"
)

type ServiceRepository struct {
	store *store.Store
}

func NewServiceRepository(s *store.Store) *ServiceRepository {
	return &ServiceRepository{store: s}
}

var _ domain.Repository = (*ServiceRepository)(nil)

func (r *ServiceRepository) List(ctx context.Context, sort string) ([]models.Service, error) {
	if sort == "" {
		sort = "name asc"
	}
	return store.SelectAll[models.Service](ctx, r.store, schema.Services, store.Query{OrderBy: sort})
}

func (r *ServiceRepository) Get(ctx context.Context, id int64) (*models.Service, error) {
	s, err := store.SelectByID[models.Service](ctx, r.store, schema.Services, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, store.ErrNotFound
	}
	return s, nil
}

func (r *ServiceRepository) Create(ctx context.Context, s *models.Service) (*models.Service, error) {
	created, err := store.Insert[models.Service](ctx, r.store, schema.Services, store.Fields{
		"name":        s.Name,
		"description": s.Description,
		"price":       s.Price,
		"duration":    s.Duration,
	})
	if err != nil {
		return nil, err
	}
	if created == nil {
		return nil, store.ErrNotInserted
	}
	return created, nil
}

func (r *ServiceRepository) Update(ctx context.Context, id int64, p domain.Patch) (*models.Service, error) {
	updated, err := store.Update[models.Service](ctx, r.store, schema.Services, id, store.Fields{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"duration":    p.Duration,
	})
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, store.ErrNotFound
	}
	return updated, nil
}

func (r *ServiceRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.store.Delete(ctx, schema.Services, id)
	return err
}
