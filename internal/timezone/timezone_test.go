package timezone

import (
	"testing"
	"time"
)

func TestLocation_FallsBack(t *testing.T) {
	if got := Location("Not/AZone").String(); got != DefaultTimezone {
		t.Errorf("expected %s, got %s", DefaultTimezone, got)
	}
	if got := Location("UTC").String(); got != "UTC" {
		t.Errorf("expected UTC, got %s", got)
	}
}

func TestClock_Fixed(t *testing.T) {
	at := time.Date(2024, 3, 15, 23, 30, 0, 0, time.UTC)
	c := Fixed(at)

	if !c.Now().Equal(at) {
		t.Errorf("expected %v, got %v", at, c.Now())
	}
	if c.Today() != "2024-03-15" {
		t.Errorf("expected 2024-03-15, got %s", c.Today())
	}
}
