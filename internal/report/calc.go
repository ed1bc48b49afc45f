package report

import "math"

// GrowthRate is the percent change from previous to current. A zero
// previous total yields 0.
func GrowthRate(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}

// OccupationRate is the share of assumed slots filled, capped at 100.
func OccupationRate(appointments int64, days, slotsPerDay int) float64 {
	slots := days * slotsPerDay
	if slots <= 0 {
		return 0
	}
	return math.Min(100, float64(appointments)/float64(slots)*100)
}

// RecurrenceSplit takes per-client appointment counts and returns the
// recurring and new percentages, summing to 100. Clients with two or more
// appointments are recurring. No clients gives 0/100.
func RecurrenceSplit(counts []int64) (recurring, fresh int) {
	if len(counts) == 0 {
		return 0, 100
	}

	var n int
	for _, c := range counts {
		if c > 1 {
			n++
		}
	}

	recurring = int(math.RoundToEven(float64(n) / float64(len(counts)) * 100))
	return recurring, 100 - recurring
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
