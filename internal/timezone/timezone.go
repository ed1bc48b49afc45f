package timezone

import "time"

const (
	DefaultTimezone = "America/Sao_Paulo"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Clock anchors "now" in the salon's timezone. Reports and dashboard stats
// compute their windows from it.
type Clock struct {
	loc   *time.Location
	fixed *time.Time
}

func NewClock(tz string) Clock {
	return Clock{loc: Location(tz)}
}

// Fixed returns a clock frozen at t, for tests.
func Fixed(t time.Time) Clock {
	return Clock{loc: t.Location(), fixed: &t}
}

func (c Clock) Now() time.Time {
	if c.fixed != nil {
		return *c.fixed
	}
	if c.loc == nil {
		return time.Now()
	}
	return time.Now().In(c.loc)
}

// Today returns the current date as YYYY-MM-DD.
func (c Clock) Today() string {
	return c.Now().Format(DateLayout)
}

func (c Clock) Location() *time.Location {
	if c.loc == nil {
		return time.Local
	}
	return c.loc
}
