// Package report computes the dashboard aggregates. Report methods never
// fail: a query error is logged and counted, and a default payload is
// returned instead.
package report

import (
	"context"
	"time"

	"github.com/salonhub/salon-api/internal/logging"
	"github.com/salonhub/salon-api/internal/metrics"
	"github.com/salonhub/salon-api/internal/models"
	"github.com/salonhub/salon-api/internal/schema"
	"github.com/salonhub/salon-api/internal/store"
	"github.com/salonhub/salon-api/internal/timezone"
)

const (
	statusCompleted = "completed"
	topServices     = 5

	labelRecurring = "Recorrentes"
	labelNew       = "Novos"
)

// Entry is one point of a chart series.
type Entry struct {
	Name   string  `json:"name"`
	Period string  `json:"period,omitempty"`
	Valor  float64 `json:"valor"`
}

type Summary struct {
	Total          float64 `json:"total"`
	GrowthRate     float64 `json:"growth_rate"`
	AvgValue       float64 `json:"avg_value"`
	OccupationRate float64 `json:"occupation_rate"`
}

type DashboardStats struct {
	TodayAppointments   int64   `json:"todayAppointments"`
	PendingAppointments int64   `json:"pendingAppointments"`
	TotalClients        int64   `json:"totalClients"`
	Revenue             float64 `json:"revenue"`
}

type Service struct {
	store       *store.Store
	clock       timezone.Clock
	slotsPerDay int
}

func NewService(s *store.Store, clock timezone.Clock, slotsPerDay int) *Service {
	return &Service{store: s, clock: clock, slotsPerDay: slotsPerDay}
}

// ======================================================
// SQL
// ======================================================

const (
	revenueByMonthSQL = `SELECT SUBSTR(a.date, 1, 7) AS period, COALESCE(SUM(s.price), 0) AS value
FROM appointments a
JOIN services s ON a.service = s.name
WHERE a.status = ? AND a.date >= ?
GROUP BY SUBSTR(a.date, 1, 7)
ORDER BY period`

	appointmentsByMonthSQL = `SELECT SUBSTR(date, 1, 7) AS period, COUNT(*) AS value
FROM appointments
WHERE date >= ?
GROUP BY SUBSTR(date, 1, 7)
ORDER BY period`

	topServicesSQL = `SELECT a.service AS name, COUNT(*) AS total
FROM appointments a
JOIN services s ON a.service = s.name
GROUP BY a.service
ORDER BY total DESC, a.service ASC
LIMIT ?`

	appointmentsPerClientSQL = `SELECT client_id, COUNT(*) AS appointments
FROM appointments
WHERE client_id IS NOT NULL
GROUP BY client_id`

	revenueSinceSQL = `SELECT COALESCE(SUM(s.price), 0)
FROM appointments a
JOIN services s ON a.service = s.name
WHERE a.status = ? AND a.date >= ?`

	revenueWindowSQL = `SELECT COALESCE(SUM(s.price), 0)
FROM appointments a
JOIN services s ON a.service = s.name
WHERE a.status = ? AND a.date >= ? AND a.date < ?`

	revenueAvgSQL = `SELECT COALESCE(AVG(s.price), 0)
FROM appointments a
JOIN services s ON a.service = s.name
WHERE a.status = ? AND a.date >= ?`

	avgPerClientSQL = `SELECT COALESCE(AVG(c.appointments), 0)
FROM (
	SELECT client_id, COUNT(*) AS appointments
	FROM appointments
	WHERE date >= ?
	GROUP BY client_id
) c`

	revenueBetweenSQL = `SELECT COALESCE(SUM(s.price), 0)
FROM appointments a
JOIN services s ON a.service = s.name
WHERE a.status = ? AND a.date BETWEEN ? AND ?`
)

type periodRow struct {
	Period string
	Value  float64
}

type clientCountRow struct {
	ClientID     int64
	Appointments int64
}

type serviceCountRow struct {
	Name  string
	Total int64
}

// ======================================================
// SERIES
// ======================================================

// Revenue sums completed appointment prices per month of the time frame.
func (s *Service) Revenue(ctx context.Context, tf TimeFrame) []Entry {
	return s.monthly(ctx, "revenue", tf, revenueByMonthSQL, true)
}

// Appointments counts appointments per month of the time frame.
func (s *Service) Appointments(ctx context.Context, tf TimeFrame) []Entry {
	return s.monthly(ctx, "appointments", tf, appointmentsByMonthSQL, false)
}

func (s *Service) monthly(ctx context.Context, name string, tf TimeFrame, query string, completedOnly bool) []Entry {
	now := s.clock.Now()
	start := tf.Start(now)

	args := []any{dateString(start)}
	if completedOnly {
		args = append([]any{statusCompleted}, args...)
	}

	var rows []periodRow
	if err := s.store.Raw(ctx, "report_"+name, &rows, query, args...); err != nil {
		s.fallback(ctx, name, err)
		rows = nil
	}

	return fillBuckets(monthBuckets(start, lastPeriod(now, rows)), rows)
}

// lastPeriod is the later of now and the latest month present in rows, so
// bookings ahead of today keep their bucket.
func lastPeriod(now time.Time, rows []periodRow) time.Time {
	last := now
	for _, r := range rows {
		t, err := time.ParseInLocation("2006-01", r.Period, now.Location())
		if err == nil && t.After(last) {
			last = t
		}
	}
	return last
}

// fillBuckets emits one entry per bucket, zero when no row matched.
func fillBuckets(buckets []string, rows []periodRow) []Entry {
	values := make(map[string]float64, len(rows))
	for _, r := range rows {
		values[r.Period] = r.Value
	}

	out := make([]Entry, len(buckets))
	for i, b := range buckets {
		out[i] = Entry{Name: monthLabel(b), Period: b, Valor: values[b]}
	}
	return out
}

// Services returns the most booked services of all time. With no bookings
// it lists known services at zero instead.
func (s *Service) Services(ctx context.Context) []Entry {
	var rows []serviceCountRow
	if err := s.store.Raw(ctx, "report_services", &rows, topServicesSQL, topServices); err != nil {
		s.fallback(ctx, "services", err)
		return []Entry{}
	}

	out := make([]Entry, 0, len(rows))
	for _, r := range rows {
		out = append(out, Entry{Name: r.Name, Valor: float64(r.Total)})
	}
	if len(out) > 0 {
		return out
	}

	known, err := store.SelectAll[models.Service](ctx, s.store, schema.Services, store.Query{
		OrderBy: "name asc",
		Limit:   topServices,
	})
	if err != nil {
		s.fallback(ctx, "services", err)
		return []Entry{}
	}
	for _, svc := range known {
		out = append(out, Entry{Name: svc.Name})
	}
	return out
}

// Clients splits clients with linked appointments into recurring and new.
func (s *Service) Clients(ctx context.Context) []Entry {
	split := func(recurring, fresh int) []Entry {
		return []Entry{
			{Name: labelRecurring, Valor: float64(recurring)},
			{Name: labelNew, Valor: float64(fresh)},
		}
	}

	total, err := s.store.Count(ctx, schema.Clients, nil, nil)
	if err != nil {
		s.fallback(ctx, "clients", err)
		return split(RecurrenceSplit(nil))
	}
	if total == 0 {
		return split(RecurrenceSplit(nil))
	}

	var rows []clientCountRow
	if err := s.store.Raw(ctx, "report_clients", &rows, appointmentsPerClientSQL); err != nil {
		s.fallback(ctx, "clients", err)
		return split(RecurrenceSplit(nil))
	}

	counts := make([]int64, len(rows))
	for i, r := range rows {
		counts[i] = r.Appointments
	}
	return split(RecurrenceSplit(counts))
}

// ======================================================
// SUMMARY
// ======================================================

// Summary compares the current window with the preceding one of equal length.
func (s *Service) Summary(ctx context.Context, metric Metric, tf TimeFrame) Summary {
	sum, err := s.summary(ctx, metric, tf)
	if err != nil {
		s.fallback(ctx, "summary", err)
		return Summary{}
	}
	return sum
}

func (s *Service) summary(ctx context.Context, metric Metric, tf TimeFrame) (Summary, error) {
	now := s.clock.Now()
	curStart := dateString(tf.Start(now))
	prevStart := dateString(tf.Start(tf.Start(now)))

	var current, previous, avg float64

	switch metric {
	case MetricAppointments:
		cur, err := s.store.Count(ctx, schema.Appointments, []store.Condition{
			store.Where("date", ">=", curStart),
		}, nil)
		if err != nil {
			return Summary{}, err
		}
		prev, err := s.store.Count(ctx, schema.Appointments, []store.Condition{
			store.Where("date", ">=", prevStart),
			store.Where("date", "<", curStart),
		}, nil)
		if err != nil {
			return Summary{}, err
		}
		if err := s.store.Raw(ctx, "report_summary", &avg, avgPerClientSQL, curStart); err != nil {
			return Summary{}, err
		}
		current, previous = float64(cur), float64(prev)

	default:
		if err := s.store.Raw(ctx, "report_summary", &current, revenueSinceSQL, statusCompleted, curStart); err != nil {
			return Summary{}, err
		}
		if err := s.store.Raw(ctx, "report_summary", &previous, revenueWindowSQL, statusCompleted, prevStart, curStart); err != nil {
			return Summary{}, err
		}
		if err := s.store.Raw(ctx, "report_summary", &avg, revenueAvgSQL, statusCompleted, curStart); err != nil {
			return Summary{}, err
		}
	}

	booked, err := s.store.Count(ctx, schema.Appointments, []store.Condition{
		store.Where("date", ">=", curStart),
	}, nil)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Total:          current,
		GrowthRate:     GrowthRate(current, previous),
		AvgValue:       avg,
		OccupationRate: OccupationRate(booked, tf.Days(), s.slotsPerDay),
	}, nil
}

// ======================================================
// DASHBOARD
// ======================================================

// Dashboard returns the headline counters. Unlike the reports it reports
// query errors to the caller.
func (s *Service) Dashboard(ctx context.Context) (DashboardStats, error) {
	now := s.clock.Now()

	today, err := s.store.Count(ctx, schema.Appointments, []store.Condition{
		store.Eq("date", dateString(now)),
	}, nil)
	if err != nil {
		return DashboardStats{}, err
	}

	pending, err := s.store.Count(ctx, schema.Appointments, []store.Condition{
		store.Eq("status", "pending"),
	}, nil)
	if err != nil {
		return DashboardStats{}, err
	}

	clients, err := s.store.Count(ctx, schema.Clients, nil, nil)
	if err != nil {
		return DashboardStats{}, err
	}

	first, last := previousMonth(now)
	var revenue float64
	if err := s.store.Raw(ctx, "report_dashboard", &revenue, revenueBetweenSQL,
		statusCompleted, dateString(first), dateString(last)); err != nil {
		return DashboardStats{}, err
	}

	return DashboardStats{
		TodayAppointments:   today,
		PendingAppointments: pending,
		TotalClients:        clients,
		Revenue:             round2(revenue),
	}, nil
}

// previousMonth returns the first and last day of the calendar month before now.
func previousMonth(now time.Time) (time.Time, time.Time) {
	firstOfThis := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	last := firstOfThis.AddDate(0, 0, -1)
	first := time.Date(last.Year(), last.Month(), 1, 0, 0, 0, 0, now.Location())
	return first, last
}

func (s *Service) fallback(ctx context.Context, report string, err error) {
	metrics.RecordReportFallback(report)
	logging.Ctx(ctx).Error().Err(err).Str("report", report).Msg("report query failed, serving default")
}
