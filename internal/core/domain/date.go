// internal/core/domain/date.go
package domain

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of the expiration date metafield.
const DateLayout = "2006-01-02"

// Date is a calendar date with no time component, as stored in a
// product's expiration metafield.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseDate parses a YYYY-MM-DD metafield value.
func ParseDate(value string) (Date, error) {
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		return Date{}, fmt.Errorf("invalid expiration date %q: %w", value, err)
	}
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Midnight returns the start of the calendar day in loc.
func (d Date) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Cutoff returns the instant after which a product carrying this date is
// considered expired: midnight of the date in loc, pulled back by
// hourOffset hours. Both the cutoff and the "now" it is compared against
// must use the same reference zone or day boundaries drift across DST
// transitions.
func (d Date) Cutoff(hourOffset int, loc *time.Location) time.Time {
	return d.Midnight(loc).Add(-time.Duration(hourOffset) * time.Hour)
}

// Expired reports whether now has reached the cutoff.
func (d Date) Expired(now time.Time, hourOffset int, loc *time.Location) bool {
	return !now.Before(d.Cutoff(hourOffset, loc))
}
