package scheduler

import (
	"fmt"
	"time"

	"subscription_processing/internal/domain/subscription"

	"github.com/robfig/cron/v3"
)

const day = 24 * time.Hour

// ResidueSchedule fires on the processing dates of a subscription, offset
// into the day by a fixed duration. It satisfies cron.Schedule, so a host
// can hand it to cron.Cron.Schedule.
type ResidueSchedule struct {
	sub    *subscription.Subscription
	offset time.Duration
}

var _ cron.Schedule = (*ResidueSchedule)(nil)

// NewResidueSchedule wraps sub. offset is the time of day (UTC) the schedule
// fires at and must be within [0, 24h).
func NewResidueSchedule(sub *subscription.Subscription, offset time.Duration) (*ResidueSchedule, error) {
	if sub == nil {
		return nil, fmt.Errorf("%w: subscription is nil", subscription.ErrInvalidArgument)
	}
	if offset < 0 || offset >= day {
		return nil, fmt.Errorf("%w: offset %s is outside of a day", subscription.ErrInvalidArgument, offset)
	}
	return &ResidueSchedule{sub: sub, offset: offset}, nil
}

// Next returns the first activation time strictly after t.
func (s *ResidueSchedule) Next(t time.Time) time.Time {
	t = t.UTC()
	today := subscription.DateOf(t)
	if fire := today.Add(s.offset); fire.After(t) && s.sub.ProcessOn(today) {
		return fire
	}
	// today's slot is either taken or not a processing date
	next := s.sub.NextProcessingDate(subscription.AddDays(today, 1))
	return next.Add(s.offset)
}

// NextOccurrences returns the next n activation times of schedule after from.
func NextOccurrences(schedule cron.Schedule, from time.Time, n int) []time.Time {
	if n <= 0 {
		return []time.Time{}
	}
	times := make([]time.Time, 0, n)
	next := from
	for i := 0; i < n; i++ {
		next = schedule.Next(next)
		times = append(times, next)
	}
	return times
}
