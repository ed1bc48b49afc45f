package appointment

import (
	"context"
	"time"

	"github.com/salonhub/salon-api/internal/audit"
	domain "github.com/salonhub/salon-api/internal/domain/appointment"
	"github.com/salonhub/salon-api/internal/httperr"
	"github.com/salonhub/salon-api/internal/models"
	"github.com/salonhub/salon-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Service  string
	Date     string
	Time     string
	Name     string
	Phone    string
	ClientID *int64
	Status   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo    domain.Repository
	clients domain.Clients
	audit   *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	clients domain.Clients,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		clients: clients,
		audit:   audit,
	}
}

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	if err := validateDateTime(&in.Date, &in.Time); err != nil {
		return nil, err
	}

	status := domain.InitialStatus()
	if in.Status != "" {
		status = domain.Status(in.Status)
		if !status.IsValid() {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidStatus)
		}
	}

	if err := checkClient(ctx, uc.clients, in.ClientID); err != nil {
		return nil, err
	}

	ap, err := uc.repo.Create(ctx, &models.Appointment{
		Service:  in.Service,
		Date:     in.Date,
		Time:     in.Time,
		Name:     in.Name,
		Phone:    in.Phone,
		ClientID: in.ClientID,
		Status:   string(status),
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"service": ap.Service,
			"date":    ap.Date,
			"time":    ap.Time,
		},
	})

	return ap, nil
}

// --------------------------------------------------
// helpers
// --------------------------------------------------

// validateDateTime rejects impossible calendar values such as 2024-02-30.
// Nil pointers are skipped.
func validateDateTime(date, hour *string) error {
	if date != nil {
		if _, err := time.Parse(timezone.DateLayout, *date); err != nil {
			return httperr.ErrBusiness(httperr.CodeInvalidDateTime)
		}
	}
	if hour != nil {
		if _, err := time.Parse(timezone.TimeLayout, *hour); err != nil {
			return httperr.ErrBusiness(httperr.CodeInvalidDateTime)
		}
	}
	return nil
}

func checkClient(ctx context.Context, clients domain.Clients, id *int64) error {
	if id == nil {
		return nil
	}
	ok, err := clients.Exists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	return nil
}
