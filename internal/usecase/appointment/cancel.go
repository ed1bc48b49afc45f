package appointment

import (
	"context"

	"github.com/salonhub/salon-api/internal/audit"
	domain "github.com/salonhub/salon-api/internal/domain/appointment"
	"github.com/salonhub/salon-api/internal/httperr"
	"github.com/salonhub/salon-api/internal/models"
)

type CancelAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	id int64,
) (*models.Appointment, error) {

	ap, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.Cancel(ap); err != nil {
		return nil, err
	}

	// só um chamador concorrente vence a transição
	ok, err := uc.repo.Transition(ctx, id, domain.StatusPending, domain.Status(ap.Status))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidState)
	}

	ap, err = uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
