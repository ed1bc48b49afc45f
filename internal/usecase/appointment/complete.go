package appointment

import (
	"context"

	"github.com/salonhub/salon-api/internal/audit"
	domain "github.com/salonhub/salon-api/internal/domain/appointment"
	"github.com/salonhub/salon-api/internal/httperr"
	"github.com/salonhub/salon-api/internal/logging"
	"github.com/salonhub/salon-api/internal/models"
	"github.com/salonhub/salon-api/internal/timezone"
)

type CompleteAppointment struct {
	repo    domain.Repository
	clients domain.Clients
	audit   *audit.Dispatcher
	clock   timezone.Clock
}

func NewCompleteAppointment(
	repo domain.Repository,
	clients domain.Clients,
	audit *audit.Dispatcher,
	clock timezone.Clock,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:    repo,
		clients: clients,
		audit:   audit,
		clock:   clock,
	}
}

// Execute marks a pending appointment as completed and records the visit on
// the linked client, if any.
func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	id int64,
) (*models.Appointment, error) {

	ap, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := domain.Complete(ap); err != nil {
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

	if ap.ClientID != nil {
		// visita é informativa, não desfaz a conclusão
		if err := uc.clients.RecordVisit(ctx, *ap.ClientID, uc.clock.Now()); err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("client_id", *ap.ClientID).Msg("failed to record client visit")
		}
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_completed",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
