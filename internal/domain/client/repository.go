package client

import (
	"context"
	"time"

	"github.com/salonhub/salon-api/internal/models"
)

type ListFilter struct {
	Search string
	Sort   string
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Name  *string
	Phone *string
	Email *string
}

type Repository interface {
	Count(ctx context.Context, f ListFilter) (int64, error)
	Find(ctx context.Context, f ListFilter, limit, offset int) ([]models.Client, error)
	Get(ctx context.Context, id int64) (*models.Client, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, c *models.Client) (*models.Client, error)
	Update(ctx context.Context, id int64, p Patch) (*models.Client, error)
	Delete(ctx context.Context, id int64) error

	// RecordVisit bumps total_visits and sets last_visit to at.
	RecordVisit(ctx context.Context, id int64, at time.Time) error
}
