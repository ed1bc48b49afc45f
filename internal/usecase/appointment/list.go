package appointment

import (
	"context"

	domain "github.com/salonhub/salon-api/internal/domain/appointment"
	"github.com/salonhub/salon-api/internal/models"
	"github.com/salonhub/salon-api/internal/pagination"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

// Execute returns one page of appointments. page and limit must already be
// normalized (page >= 1, limit >= 1).
func (uc *ListAppointments) Execute(
	ctx context.Context,
	f domain.ListFilter,
	page, limit int,
) (pagination.Page[models.Appointment], error) {

	total, err := uc.repo.Count(ctx, f)
	if err != nil {
		return pagination.Page[models.Appointment]{}, err
	}

	w := pagination.Paginate(total, page, limit)

	items, err := uc.repo.Find(ctx, f, limit, w.Offset)
	if err != nil {
		return pagination.Page[models.Appointment]{}, err
	}

	return pagination.NewPage(items, total, page, limit), nil
}

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id int64) (*models.Appointment, error) {
	return uc.repo.Get(ctx, id)
}
