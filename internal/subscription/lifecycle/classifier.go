// Package lifecycle derives a subscription's status, days remaining and
// elapsed progress from its dates and a reference instant.
package lifecycle

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"
)

// DefaultRenewalWindowDays is the number of days before the end date during
// which an active subscription is reported as upcoming.
const DefaultRenewalWindowDays = 30

const secondsPerDay = 24 * 60 * 60

var ErrInvalidRenewalWindow = errors.New("invalid_renewal_window")

// Config configures a Classifier.
type Config struct {
	RenewalWindowDays int
	// Location anchors calendar dates and "today". Nil means UTC.
	Location *time.Location
}

func DefaultConfig() Config {
	return Config{
		RenewalWindowDays: DefaultRenewalWindowDays,
		Location:          time.UTC,
	}
}

// Classifier is immutable and safe for concurrent use.
type Classifier struct {
	window int
	loc    *time.Location
}

func New(cfg Config) (*Classifier, error) {
	if cfg.RenewalWindowDays < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRenewalWindow, cfg.RenewalWindowDays)
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	return &Classifier{window: cfg.RenewalWindowDays, loc: loc}, nil
}

// RenewalWindowDays reports the configured renewal window.
func (c *Classifier) RenewalWindowDays() int { return c.window }

// Location reports the zone used for calendar dates.
func (c *Classifier) Location() *time.Location { return c.loc }

// Classify annotates sub with its lifecycle fields as of now.
func (c *Classifier) Classify(sub domain.Subscription, now time.Time) (domain.Annotated, error) {
	start, err := domain.ParseDate("start_date", sub.StartDate, c.loc)
	if err != nil {
		return domain.Annotated{}, err
	}
	end, err := domain.ParseDate("end_date", sub.EndDate, c.loc)
	if err != nil {
		return domain.Annotated{}, err
	}

	now = now.In(c.loc)
	days := DaysBetween(now, end)
	status := c.status(days)

	return domain.Annotated{
		Subscription:  sub,
		Start:         start,
		End:           end,
		Status:        status,
		DaysRemaining: days,
		Progress:      Progress(start, end, now, status),
	}, nil
}

// status expects days to be the signed calendar distance from today to the
// end date. The end date itself is still covered.
func (c *Classifier) status(days int) domain.Status {
	switch {
	case days < 0:
		return domain.StatusExpired
	case days <= c.window:
		return domain.StatusUpcoming
	default:
		return domain.StatusActive
	}
}

// ClassifyAll classifies every record, skipping the ones that fail. The
// returned errors are *domain.RecordError values in input order.
func (c *Classifier) ClassifyAll(subs []domain.Subscription, now time.Time) ([]domain.Annotated, []error) {
	out := make([]domain.Annotated, 0, len(subs))
	var errs []error
	for _, sub := range subs {
		annotated, err := c.Classify(sub, now)
		if err != nil {
			errs = append(errs, &domain.RecordError{ID: sub.ID, Err: err})
			continue
		}
		out = append(out, annotated)
	}
	return out, errs
}

// ClassifyAllStrict classifies every record and stops at the first failure.
func (c *Classifier) ClassifyAllStrict(subs []domain.Subscription, now time.Time) ([]domain.Annotated, error) {
	out := make([]domain.Annotated, 0, len(subs))
	for _, sub := range subs {
		annotated, err := c.Classify(sub, now)
		if err != nil {
			return nil, &domain.RecordError{ID: sub.ID, Err: err}
		}
		out = append(out, annotated)
	}
	return out, nil
}

// DaysBetween returns the signed number of calendar days from the date of
// from to the date of to, each read in its own location.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int((b.Unix() - a.Unix()) / secondsPerDay)
}

// Progress returns the elapsed share of [start, end] at now as a percentage
// in [0, 100]. Expired and zero-length intervals are complete.
func Progress(start, end, now time.Time, status domain.Status) int {
	if status == domain.StatusExpired {
		return 100
	}
	total := end.Unix() - start.Unix()
	if total == 0 {
		return 100
	}
	elapsed := float64(now.Unix()-start.Unix()) + float64(now.Nanosecond()-start.Nanosecond())/1e9
	pct := math.Floor(elapsed / float64(total) * 100)
	switch {
	case math.IsNaN(pct) || pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return int(pct)
	}
}
