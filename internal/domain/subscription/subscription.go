// internal/domain/subscription/subscription.go
package subscription

import (
	"fmt"
	"time"
)

// epoch is the reference date every residue is computed against.
var epoch = time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)

// Epoch returns the reference date residues are anchored at.
func Epoch() time.Time {
	return epoch
}

// Subscription describes a recurring processing schedule. Every processing
// date shares the same residue: its offset from the epoch, in units of the
// frequency, modulo the interval.
//
// A Subscription is not safe for concurrent mutation.
type Subscription struct {
	interval  int
	startDate time.Time
	frequency Frequency
	unit      unit
	residue   int
}

// Option configures optional Subscription fields.
type Option func(*Subscription)

// WithFrequency sets the unit of the interval. The default is FrequencyDaily.
func WithFrequency(f Frequency) Option {
	return func(s *Subscription) {
		s.frequency = f
	}
}

// Params holds named construction parameters. Zero values fall back to the
// defaults (FrequencyDaily) where one exists.
type Params struct {
	Interval  int
	StartDate time.Time
	Frequency Frequency
}

// New creates a Subscription and computes its residue.
func New(interval int, startDate time.Time, opts ...Option) (*Subscription, error) {
	s := &Subscription{frequency: FrequencyDaily}
	for _, opt := range opts {
		opt(s)
	}

	u, err := s.frequency.unit()
	if err != nil {
		return nil, err
	}
	if err := validateInterval(interval); err != nil {
		return nil, err
	}
	if err := validateStartDate(startDate); err != nil {
		return nil, err
	}

	s.unit = u
	s.interval = interval
	s.startDate = DateOf(startDate)
	s.computeResidue()
	return s, nil
}

// NewFromParams creates a Subscription from p.
func NewFromParams(p Params) (*Subscription, error) {
	var opts []Option
	if p.Frequency != "" {
		opts = append(opts, WithFrequency(p.Frequency))
	}
	return New(p.Interval, p.StartDate, opts...)
}

func (s *Subscription) Interval() int        { return s.interval }
func (s *Subscription) StartDate() time.Time { return s.startDate }
func (s *Subscription) Frequency() Frequency { return s.frequency }

// Residue returns the residue class shared by all processing dates.
func (s *Subscription) Residue() int { return s.residue }

// SetInterval changes the interval and recomputes the residue.
func (s *Subscription) SetInterval(interval int) error {
	if err := validateInterval(interval); err != nil {
		return err
	}
	s.interval = interval
	s.computeResidue()
	return nil
}

// SetStartDate changes the start date and recomputes the residue.
func (s *Subscription) SetStartDate(startDate time.Time) error {
	if err := validateStartDate(startDate); err != nil {
		return err
	}
	s.startDate = DateOf(startDate)
	s.computeResidue()
	return nil
}

// SetFrequency only accepts the frequency the subscription was created with;
// the frequency is fixed at construction.
func (s *Subscription) SetFrequency(f Frequency) error {
	if !f.Valid() {
		return unsupportedFrequencyError(f)
	}
	if f != s.frequency {
		return fmt.Errorf("%w: have %s, got %s", ErrFrequencyImmutable, s.frequency, f)
	}
	return nil
}

// ProcessOn reports whether date is a processing date.
func (s *Subscription) ProcessOn(date time.Time) bool {
	return s.residueForDate(date) == s.residue
}

// NextProcessingDate returns the earliest processing date on or after from.
func (s *Subscription) NextProcessingDate(from time.Time) time.Time {
	delta := mod(s.residue-s.residueForDate(from), s.interval)
	return s.unit.advance(from, delta)
}

// NextNProcessingDates returns the n earliest processing dates on or after
// from, in ascending order.
func (s *Subscription) NextNProcessingDates(n int, from time.Time) ([]time.Time, error) {
	if n < 0 {
		return nil, invalidArgumentError("date count must not be negative, got %d", n)
	}

	dates := make([]time.Time, 0, n)
	if n == 0 {
		return dates, nil
	}
	first := s.NextProcessingDate(from)
	for i := 0; i < n; i++ {
		// advance from first each time so month clamping never accumulates
		dates = append(dates, s.unit.advance(first, i*s.interval))
	}
	return dates, nil
}

func (s *Subscription) String() string {
	noun := s.unit.noun
	if s.interval != 1 {
		noun += "s"
	}
	return fmt.Sprintf("every %d %s from %s (residue %d)",
		s.interval, noun, s.startDate.Format(time.DateOnly), s.residue)
}

func (s *Subscription) residueForDate(date time.Time) int {
	return mod(s.unit.offset(date), s.interval)
}

func (s *Subscription) computeResidue() {
	s.residue = s.residueForDate(s.startDate)
}

// mod is the mathematical modulo: the result is always in [0, m).
func mod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

func validateInterval(interval int) error {
	if interval <= 0 {
		return invalidArgumentError("interval must be positive, got %d", interval)
	}
	return nil
}

func validateStartDate(startDate time.Time) error {
	if startDate.IsZero() {
		return invalidArgumentError("start date is required")
	}
	return nil
}
