package domain

import (
	"fmt"
	"time"
)

// Period identifies one monthly recurrence cycle, e.g. "2024-02".
// It is the identity of an occurrence together with the account ID.
type Period struct {
	Year  int
	Month time.Month
}

// PeriodOf returns the period the given date falls in.
func PeriodOf(t time.Time) Period {
	return Period{Year: t.Year(), Month: t.Month()}
}

// ParsePeriod parses a "YYYY-MM" key.
func ParsePeriod(key string) (Period, error) {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, key)
	}

	return Period{Year: t.Year(), Month: t.Month()}, nil
}

// Key returns the canonical "YYYY-MM" form.
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Next returns the following calendar month, rolling the year over December.
func (p Period) Next() Period {
	if p.Month == time.December {
		return Period{Year: p.Year + 1, Month: time.January}
	}

	return Period{Year: p.Year, Month: p.Month + 1}
}

// Compare returns -1, 0 or 1 ordering periods chronologically.
func (p Period) Compare(other Period) int {
	switch {
	case p.Year != other.Year:
		if p.Year < other.Year {
			return -1
		}
		return 1
	case p.Month != other.Month:
		if p.Month < other.Month {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Before reports whether p precedes other.
func (p Period) Before(other Period) bool {
	return p.Compare(other) < 0
}

// After reports whether p follows other.
func (p Period) After(other Period) bool {
	return p.Compare(other) > 0
}

// Start returns midnight UTC on the first day of the period.
func (p Period) Start() time.Time {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC)
}

// Days returns the number of days in the period's month.
func (p Period) Days() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
