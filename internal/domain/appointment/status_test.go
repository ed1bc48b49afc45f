package appointment

import (
	"testing"

	"github.com/salonhub/salon-api/internal/httperr"
	"github.com/salonhub/salon-api/internal/models"
)

func TestTransitions(t *testing.T) {
	tests := []struct {
		from       Status
		completeOK bool
		cancelOK   bool
	}{
		{StatusPending, true, true},
		{StatusCompleted, false, false},
		{StatusCancelled, false, false},
	}

	for _, tt := range tests {
		ap := &models.Appointment{Status: string(tt.from)}
		err := Complete(ap)
		if (err == nil) != tt.completeOK {
			t.Errorf("Complete from %s: err = %v", tt.from, err)
		}
		if err != nil && !httperr.IsBusiness(err, "invalid_state") {
			t.Errorf("expected invalid_state, got %v", err)
		}
		if err == nil && ap.Status != string(StatusCompleted) {
			t.Errorf("expected completed, got %s", ap.Status)
		}

		ap = &models.Appointment{Status: string(tt.from)}
		if err := Cancel(ap); (err == nil) != tt.cancelOK {
			t.Errorf("Cancel from %s: err = %v", tt.from, err)
		}
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusCompleted, StatusCancelled} {
		if !s.IsValid() {
			t.Errorf("expected %s to be valid", s)
		}
	}
	if Status("scheduled").IsValid() {
		t.Error("expected scheduled to be invalid")
	}
}

func TestPatchEmpty(t *testing.T) {
	if !(Patch{}).Empty() {
		t.Error("expected zero patch to be empty")
	}
	s := "completed"
	if (Patch{Status: &s}).Empty() {
		t.Error("expected patch with status to be non-empty")
	}
}
