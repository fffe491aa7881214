// internal/domain/subscription/frequency.go
package subscription

import (
	"strings"
	"time"
)

// Frequency is the unit an interval is expressed in.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyMonthly Frequency = "monthly"
)

// unit bundles the date arithmetic used for one frequency.
type unit struct {
	// offset returns the signed number of units between the epoch and date.
	offset func(date time.Time) int
	// advance moves date forward by n units.
	advance func(date time.Time, n int) time.Time
	noun    string
}

var units = map[Frequency]unit{
	FrequencyDaily: {
		offset:  func(date time.Time) int { return DayDifference(date, epoch) },
		advance: AddDays,
		noun:    "day",
	},
	FrequencyMonthly: {
		offset:  monthsSinceEpoch,
		advance: AddMonths,
		noun:    "month",
	},
}

// Valid reports whether f is one of the supported frequencies.
func (f Frequency) Valid() bool {
	_, ok := units[f]
	return ok
}

func (f Frequency) String() string {
	return string(f)
}

func (f Frequency) unit() (unit, error) {
	u, ok := units[f]
	if !ok {
		return unit{}, unsupportedFrequencyError(f)
	}
	return u, nil
}

// ParseFrequency converts a textual frequency into a Frequency.
// An empty string yields FrequencyDaily.
func ParseFrequency(s string) (Frequency, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return FrequencyDaily, nil
	}
	f := Frequency(s)
	if !f.Valid() {
		return "", unsupportedFrequencyError(f)
	}
	return f, nil
}
