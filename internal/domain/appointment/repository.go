package appointment

import (
	"context"
	"time"

	"github.com/salonhub/salon-api/internal/models"
)

// ListFilter narrows an appointment listing. Zero values mean "any".
type ListFilter struct {
	Status   string
	Date     string
	Search   string
	Sort     string
	ClientID *int64
}

// Patch carries a partial update; nil fields are left untouched.
type Patch struct {
	Service  *string
	Date     *string
	Time     *string
	Name     *string
	Phone    *string
	ClientID *int64
	Status   *string
}

func (p Patch) Empty() bool {
	return p.Service == nil && p.Date == nil && p.Time == nil &&
		p.Name == nil && p.Phone == nil && p.ClientID == nil && p.Status == nil
}

type Repository interface {
	Count(ctx context.Context, f ListFilter) (int64, error)
	Find(ctx context.Context, f ListFilter, limit, offset int) ([]models.Appointment, error)

	// Get returns store.ErrNotFound when the id does not exist.
	Get(ctx context.Context, id int64) (*models.Appointment, error)
	Create(ctx context.Context, ap *models.Appointment) (*models.Appointment, error)
	Update(ctx context.Context, id int64, p Patch) (*models.Appointment, error)
	// Transition sets the status to `to` only while the record is still in
	// `from`. It reports false when no row was in that state.
	Transition(ctx context.Context, id int64, from, to Status) (bool, error)
	Delete(ctx context.Context, id int64) error
}

// Clients is the slice of the client repository appointments depend on.
type Clients interface {
	Exists(ctx context.Context, id int64) (bool, error)
	RecordVisit(ctx context.Context, id int64, at time.Time) error
}
