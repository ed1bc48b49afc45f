package report

import (
	"reflect"
	"testing"
	"time"
)

func TestGrowthRate(t *testing.T) {
	tests := []struct {
		current, previous, want float64
	}{
		{0, 0, 0},
		{500, 0, 0},
		{150, 100, 50},
		{50, 100, -50},
	}
	for _, tt := range tests {
		if got := GrowthRate(tt.current, tt.previous); got != tt.want {
			t.Errorf("GrowthRate(%v, %v) = %v, want %v", tt.current, tt.previous, got, tt.want)
		}
	}
}

func TestOccupationRate(t *testing.T) {
	if got := OccupationRate(120, 30, 8); got != 50 {
		t.Errorf("expected 50, got %v", got)
	}
	if got := OccupationRate(1000, 7, 8); got != 100 {
		t.Errorf("expected cap at 100, got %v", got)
	}
	if got := OccupationRate(10, 0, 8); got != 0 {
		t.Errorf("expected 0 for empty window, got %v", got)
	}
}

func TestRecurrenceSplit(t *testing.T) {
	tests := []struct {
		counts        []int64
		wantRecurring int
		wantNew       int
	}{
		{nil, 0, 100},
		{[]int64{2, 1}, 50, 50},
		{[]int64{1, 1, 1}, 0, 100},
		{[]int64{3, 2, 5}, 100, 0},
		{[]int64{2, 1, 1}, 33, 67},
	}
	for _, tt := range tests {
		r, n := RecurrenceSplit(tt.counts)
		if r != tt.wantRecurring || n != tt.wantNew {
			t.Errorf("RecurrenceSplit(%v) = (%d, %d), want (%d, %d)",
				tt.counts, r, n, tt.wantRecurring, tt.wantNew)
		}
	}
}

func TestMonthBuckets(t *testing.T) {
	start := time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC)

	want := []string{"2023-12", "2024-01", "2024-02"}
	if got := monthBuckets(start, end); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	same := monthBuckets(end, end)
	if len(same) != 1 || same[0] != "2024-02" {
		t.Errorf("expected single bucket, got %v", same)
	}
}

func TestMonthLabel(t *testing.T) {
	if got := monthLabel("2024-02"); got != "Fev" {
		t.Errorf("expected Fev, got %s", got)
	}
	if got := monthLabel("2024-12"); got != "Dez" {
		t.Errorf("expected Dez, got %s", got)
	}
}

func TestParseTimeFrame(t *testing.T) {
	for in, days := range map[string]int{"": 30, "week": 7, "month": 30, "quarter": 90, "year": 365} {
		tf, err := ParseTimeFrame(in)
		if err != nil {
			t.Fatalf("ParseTimeFrame(%q) error: %v", in, err)
		}
		if tf.Days() != days {
			t.Errorf("ParseTimeFrame(%q).Days() = %d, want %d", in, tf.Days(), days)
		}
	}
	if _, err := ParseTimeFrame("decade"); err == nil {
		t.Error("expected error for unknown time frame")
	}
	if _, err := ParseMetric("profit"); err == nil {
		t.Error("expected error for unknown metric")
	}
}

func TestPreviousMonth(t *testing.T) {
	first, last := previousMonth(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC))
	if dateString(first) != "2024-02-01" || dateString(last) != "2024-02-29" {
		t.Errorf("unexpected window %s..%s", dateString(first), dateString(last))
	}

	first, last = previousMonth(time.Date(2024, 1, 5, 10, 0, 0, 0, time.UTC))
	if dateString(first) != "2023-12-01" || dateString(last) != "2023-12-31" {
		t.Errorf("unexpected window %s..%s", dateString(first), dateString(last))
	}
}
