package report

import (
	"fmt"
	"time"

	"github.com/salonhub/salon-api/internal/timezone"
)

// TimeFrame is a named window ending now.
type TimeFrame string

const (
	Week    TimeFrame = "week"
	Month   TimeFrame = "month"
	Quarter TimeFrame = "quarter"
	Year    TimeFrame = "year"
)

var timeFrameDays = map[TimeFrame]int{
	Week:    7,
	Month:   30,
	Quarter: 90,
	Year:    365,
}

// ParseTimeFrame accepts week, month, quarter or year. Empty means month.
func ParseTimeFrame(s string) (TimeFrame, error) {
	if s == "" {
		return Month, nil
	}
	tf := TimeFrame(s)
	if _, ok := timeFrameDays[tf]; !ok {
		return "", fmt.Errorf("unknown time frame %q", s)
	}
	return tf, nil
}

func (tf TimeFrame) Days() int {
	return timeFrameDays[tf]
}

// Start returns the first instant of the window ending at now.
func (tf TimeFrame) Start(now time.Time) time.Time {
	return now.AddDate(0, 0, -tf.Days())
}

// Metric selects what a summary measures.
type Metric string

const (
	MetricRevenue      Metric = "revenue"
	MetricAppointments Metric = "appointments"
)

// ParseMetric accepts revenue or appointments. Empty means revenue.
func ParseMetric(s string) (Metric, error) {
	switch Metric(s) {
	case "":
		return MetricRevenue, nil
	case MetricRevenue, MetricAppointments:
		return Metric(s), nil
	}
	return "", fmt.Errorf("unknown report type %q", s)
}

var monthNames = [12]string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}

// monthBuckets lists every calendar month (YYYY-MM) overlapping [start, end].
func monthBuckets(start, end time.Time) []string {
	cur := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, start.Location())
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, start.Location())

	var out []string
	for !cur.After(last) {
		out = append(out, cur.Format("2006-01"))
		cur = cur.AddDate(0, 1, 0)
	}
	return out
}

// monthLabel turns YYYY-MM into its short Portuguese month name.
func monthLabel(period string) string {
	t, err := time.Parse("2006-01", period)
	if err != nil {
		return period
	}
	return monthNames[t.Month()-1]
}

func dateString(t time.Time) string {
	return t.Format(timezone.DateLayout)
}
