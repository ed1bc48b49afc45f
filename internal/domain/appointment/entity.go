package appointment

import "github.com/salonhub/salon-api/internal/models"

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCancelled)
	return nil
}

func Complete(ap *models.Appointment) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}
	ap.Status = string(StatusCompleted)
	return nil
}
