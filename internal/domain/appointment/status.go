package appointment

import "github.com/salonhub/salon-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// ===============================
// Validations
// ===============================

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness(httperr.CodeInvalidState)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
