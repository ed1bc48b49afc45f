package service

import (
	"context"

	"github.com/salonhub/salon-api/internal/models"
)

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Name        *string
	Description *string
	Price       *float64
	Duration    *int
}

type Repository interface {
	List(ctx context.Context, sort string) ([]models.Service, error)
	Get(ctx context.Context, id int64) (*models.Service, error)
	Create(ctx context.Context, s *models.Service) (*models.Service, error)
	Update(ctx context.Context, id int64, p Patch) (*models.Service, error)
	Delete(ctx context.Context, id int64) error
}
