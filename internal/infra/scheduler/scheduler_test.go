package scheduler

import (
	"testing"
	"time"

	"subscription_processing/internal/domain/subscription"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func days(n int) time.Time { return subscription.AddDays(subscription.Epoch(), n) }

func newSchedule(t *testing.T, interval int, start time.Time, offset time.Duration, opts ...subscription.Option) *ResidueSchedule {
	t.Helper()
	sub, err := subscription.New(interval, start, opts...)
	require.NoError(t, err)
	s, err := NewResidueSchedule(sub, offset)
	require.NoError(t, err)
	return s
}

func TestNewResidueScheduleValidation(t *testing.T) {
	t.Parallel()

	sub, err := subscription.New(7, days(0))
	require.NoError(t, err)

	_, err = NewResidueSchedule(nil, 0)
	assert.ErrorIs(t, err, subscription.ErrInvalidArgument)

	_, err = NewResidueSchedule(sub, -time.Minute)
	assert.ErrorIs(t, err, subscription.ErrInvalidArgument)

	_, err = NewResidueSchedule(sub, 24*time.Hour)
	assert.ErrorIs(t, err, subscription.ErrInvalidArgument)
}

func TestResidueScheduleNext(t *testing.T) {
	t.Parallel()

	nineAM := 9 * time.Hour
	weekly := newSchedule(t, 7, days(3), nineAM)

	testCases := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"processing day before offset", days(3).Add(8 * time.Hour), days(3).Add(nineAM)},
		{"processing day at offset", days(3).Add(nineAM), days(10).Add(nineAM)},
		{"processing day after offset", days(3).Add(10 * time.Hour), days(10).Add(nineAM)},
		{"day before processing", days(9).Add(23 * time.Hour), days(10).Add(nineAM)},
		{"non processing day", days(5), days(10).Add(nineAM)},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, weekly.Next(tc.from))
		})
	}
}

func TestResidueScheduleNextMidnight(t *testing.T) {
	t.Parallel()

	s := newSchedule(t, 2, days(0), 0)
	assert.Equal(t, days(2), s.Next(days(0)))
	assert.Equal(t, days(2), s.Next(days(1)))
	assert.Equal(t, days(4), s.Next(days(2)))
}

func TestResidueScheduleMonthly(t *testing.T) {
	t.Parallel()

	s := newSchedule(t, 3, subscription.AddMonths(subscription.Epoch(), 1), time.Hour,
		subscription.WithFrequency(subscription.FrequencyMonthly))

	// a monthly subscription processes on every day of a matching month
	from := time.Date(2014, time.February, 10, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2014, time.February, 11, 1, 0, 0, 0, time.UTC), s.Next(from))

	from = time.Date(2014, time.February, 28, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2014, time.May, 1, 1, 0, 0, 0, time.UTC), s.Next(from))
}

func TestResidueScheduleConvertsToUTC(t *testing.T) {
	t.Parallel()

	s := newSchedule(t, 7, days(3), 0)
	loc := time.FixedZone("UTC+3", 3*60*60)
	// still 2014-01-03 in UTC
	from := time.Date(2014, time.January, 4, 1, 0, 0, 0, loc)
	assert.Equal(t, days(3), s.Next(from))

	from = time.Date(2014, time.January, 5, 1, 0, 0, 0, loc)
	assert.Equal(t, days(10), s.Next(from))
}

func TestNextOccurrences(t *testing.T) {
	t.Parallel()

	s := newSchedule(t, 7, days(31), 6*time.Hour)
	got := NextOccurrences(s, days(32), 3)
	assert.Equal(t, []time.Time{
		days(38).Add(6 * time.Hour),
		days(45).Add(6 * time.Hour),
		days(52).Add(6 * time.Hour),
	}, got)

	assert.Empty(t, NextOccurrences(s, days(32), 0))
}

func TestNextOccurrencesCronSchedule(t *testing.T) {
	t.Parallel()

	schedule, err := cron.ParseStandard("0 10 15 * *")
	require.NoError(t, err)

	from := time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)
	got := NextOccurrences(schedule, from, 2)
	require.Len(t, got, 2)
	assert.WithinDuration(t, time.Date(2014, time.January, 15, 10, 0, 0, 0, time.UTC), got[0], 0)
	assert.WithinDuration(t, time.Date(2014, time.February, 15, 10, 0, 0, 0, time.UTC), got[1], 0)
}

func TestResidueScheduleWithCronEngine(t *testing.T) {
	t.Parallel()

	s := newSchedule(t, 7, days(0), 0)
	engine := cron.New(cron.WithLocation(time.UTC))
	id := engine.Schedule(s, cron.FuncJob(func() {}))
	entry := engine.Entry(id)
	assert.Equal(t, s, entry.Schedule)
}
