package models

import (
	"fmt"
	"time"
)

// Period is a calendar month. Budgets and alerts are scoped to one period.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// CurrentPeriod returns the period containing the current UTC time.
func CurrentPeriod() Period {
	return PeriodOf(time.Now().UTC())
}

// ParsePeriod parses a "YYYY-MM" string.
func ParsePeriod(s string) (Period, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return Period{}, fmt.Errorf("%w: invalid period %q, expected YYYY-MM", ErrValidation, s)
	}
	return PeriodOf(t), nil
}

// IsZero reports whether p is the zero Period.
func (p Period) IsZero() bool {
	return p.Year == 0 && p.Month == 0
}

// OrCurrent returns p, or the current period if p is zero.
func (p Period) OrCurrent() Period {
	if p.IsZero() {
		return CurrentPeriod()
	}
	return p
}

// Contains reports whether the calendar date d falls within p.
func (p Period) Contains(d time.Time) bool {
	return d.Year() == p.Year && d.Month() == p.Month
}

// Start returns the first day of the period at UTC midnight.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End returns the first day of the following period.
func (p Period) End() time.Time {
	return p.Start().AddDate(0, 1, 0)
}

func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}
