package appointment

import (
	"context"

	"github.com/salonhub/salon-api/internal/audit"
	domain "github.com/salonhub/salon-api/internal/domain/appointment"
	"github.com/salonhub/salon-api/internal/httperr"
	"github.com/salonhub/salon-api/internal/models"
)

type UpdateAppointment struct {
	repo    domain.Repository
	clients domain.Clients
	audit   *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	clients domain.Clients,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:    repo,
		clients: clients,
		audit:   audit,
	}
}

// Execute applies a partial update. An empty patch returns the current record.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	id int64,
	p domain.Patch,
) (*models.Appointment, error) {

	if err := validateDateTime(p.Date, p.Time); err != nil {
		return nil, err
	}

	if p.Status != nil && !domain.Status(*p.Status).IsValid() {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidStatus)
	}

	if err := checkClient(ctx, uc.clients, p.ClientID); err != nil {
		return nil, err
	}

	ap, err := uc.repo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	if !p.Empty() {
		uc.audit.Dispatch(audit.Event{
			Action:   "appointment_updated",
			Entity:   "appointment",
			EntityID: &ap.ID,
		})
	}

	return ap, nil
}
