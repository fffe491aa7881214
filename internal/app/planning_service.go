// internal/app/planning_service.go
package app

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"subscription_processing/internal/domain/subscription"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

// Custom application-level errors for the planning service
var ErrDuplicateSubscription = fmt.Errorf("subscription with this name is already registered")
var ErrSubscriptionNotFound = fmt.Errorf("subscription not found")

// AgendaEntry is one upcoming processing date of a named subscription.
type AgendaEntry struct {
	Name string
	Date time.Time
}

// PlanningService answers processing questions for a set of named
// subscriptions. It only reads the subscriptions it holds; callers mutating
// a registered subscription must not do so concurrently with queries.
type PlanningService struct {
	subscriptions map[string]*subscription.Subscription
	logger        logrus.FieldLogger
}

func NewPlanningService(logger logrus.FieldLogger) *PlanningService {
	return &PlanningService{
		subscriptions: make(map[string]*subscription.Subscription),
		logger:        logger,
	}
}

// Register adds sub under name.
func (s *PlanningService) Register(name string, sub *subscription.Subscription) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: subscription name is empty", subscription.ErrInvalidArgument)
	}
	if sub == nil {
		return fmt.Errorf("%w: subscription %q is nil", subscription.ErrInvalidArgument, name)
	}
	if _, exists := s.subscriptions[name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateSubscription, name)
	}

	s.subscriptions[name] = sub
	s.logger.WithFields(logrus.Fields{
		"subscription": name,
		"frequency":    sub.Frequency(),
		"interval":     sub.Interval(),
		"residue":      sub.Residue(),
	}).Debug("Subscription registered")
	return nil
}

// Get returns the subscription registered under name.
func (s *PlanningService) Get(name string) (*subscription.Subscription, error) {
	sub, ok := s.subscriptions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSubscriptionNotFound, name)
	}
	return sub, nil
}

// Names returns the registered subscription names in ascending order.
func (s *PlanningService) Names() []string {
	names := lo.Keys(s.subscriptions)
	slices.Sort(names)
	return names
}

// DueOn returns the names of the subscriptions processing on date, sorted.
func (s *PlanningService) DueOn(date time.Time) []string {
	due := lo.Filter(s.Names(), func(name string, _ int) bool {
		return s.subscriptions[name].ProcessOn(date)
	})
	s.logger.WithFields(logrus.Fields{
		"date": subscription.DateOf(date).Format(time.DateOnly),
		"due":  len(due),
	}).Debug("Computed due subscriptions")
	return due
}

// Agenda merges the next n processing dates of every registered subscription
// into a single list ordered by date, then by name.
func (s *PlanningService) Agenda(from time.Time, n int) ([]AgendaEntry, error) {
	if n < 0 {
		return nil, fmt.Errorf("%w: date count must not be negative, got %d", subscription.ErrInvalidArgument, n)
	}

	agenda := make([]AgendaEntry, 0, n*len(s.subscriptions))
	for _, name := range s.Names() {
		dates, err := s.subscriptions[name].NextNProcessingDates(n, from)
		if err != nil {
			return nil, fmt.Errorf("failed to compute processing dates for %q: %w", name, err)
		}
		agenda = append(agenda, lo.Map(dates, func(date time.Time, _ int) AgendaEntry {
			return AgendaEntry{Name: name, Date: date}
		})...)
	}

	// names are already sorted, a stable sort keeps them ordered within a date
	slices.SortStableFunc(agenda, func(a, b AgendaEntry) int {
		return a.Date.Compare(b.Date)
	})
	return agenda, nil
}
