package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/revolt-software-bot/client-service-dashboard/internal/clock"
	"github.com/revolt-software-bot/client-service-dashboard/internal/config"
	"github.com/revolt-software-bot/client-service-dashboard/internal/observability/logger"
	"github.com/revolt-software-bot/client-service-dashboard/internal/observability/metrics"
	subscriptiondomain "github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"
	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/lifecycle"
	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/query"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// named is implemented by sources that report a label for metrics.
type named interface {
	Name() string
}

type Service struct {
	log *zap.Logger

	source    subscriptiondomain.Source
	clock     clock.Clock
	lifecycle *config.LifecycleConfigHolder
	metrics   *metrics.Metrics
}

type ServiceParam struct {
	fx.In

	Source    subscriptiondomain.Source
	Clock     clock.Clock
	Lifecycle *config.LifecycleConfigHolder
	Log       *zap.Logger
	Metrics   *metrics.Metrics `optional:"true"`
}

func NewService(p ServiceParam) subscriptiondomain.Service {
	return &Service{
		log: p.Log.Named("subscription.service"),

		source:    p.Source,
		clock:     p.Clock,
		lifecycle: p.Lifecycle,
		metrics:   p.Metrics,
	}
}

// snapshot is one classification pass over the source.
type snapshot struct {
	settings    config.Lifecycle
	annotated   []subscriptiondomain.Annotated
	skipped     []string
	generatedAt time.Time
}

// Classify implements domain.Service.
func (s *Service) Classify(ctx context.Context) ([]subscriptiondomain.Annotated, error) {
	snap, err := s.classify(ctx)
	if err != nil {
		return nil, err
	}
	return snap.annotated, nil
}

// List implements domain.Service.
func (s *Service) List(ctx context.Context, req subscriptiondomain.ListRequest) (subscriptiondomain.ListResponse, error) {
	params := subscriptiondomain.QueryParams{SearchText: req.SearchText}
	if req.Status != "" {
		status, err := subscriptiondomain.ParseStatus(req.Status)
		if err != nil {
			return subscriptiondomain.ListResponse{}, err
		}
		params = params.WithStatus(status)
	}

	snap, err := s.classify(ctx)
	if err != nil {
		return subscriptiondomain.ListResponse{}, err
	}
	params.SortKey, err = resolveSortKey(req.SortKey, snap.settings)
	if err != nil {
		return subscriptiondomain.ListResponse{}, err
	}

	items, err := query.New(snap.settings.Language).Query(snap.annotated, params)
	if err != nil {
		return subscriptiondomain.ListResponse{}, err
	}
	s.metrics.RecordQuery(ctx, string(params.SortKey))

	return subscriptiondomain.ListResponse{
		Subscriptions: items,
		Skipped:       snap.skipped,
		GeneratedAt:   snap.generatedAt,
	}, nil
}

// Overview implements domain.Service.
func (s *Service) Overview(ctx context.Context, req subscriptiondomain.OverviewRequest) (subscriptiondomain.OverviewResponse, error) {
	snap, err := s.classify(ctx)
	if err != nil {
		return subscriptiondomain.OverviewResponse{}, err
	}
	key, err := resolveSortKey(req.SortKey, snap.settings)
	if err != nil {
		return subscriptiondomain.OverviewResponse{}, err
	}

	view, err := query.New(snap.settings.Language).Tabs(snap.annotated, req.SearchText, key)
	if err != nil {
		return subscriptiondomain.OverviewResponse{}, err
	}
	s.metrics.RecordQuery(ctx, string(key))

	return subscriptiondomain.OverviewResponse{
		Summary: query.PartitionByStatus(snap.annotated).Counts(),
		Tabs: []subscriptiondomain.Tab{
			newTab(subscriptiondomain.TabAll, view.All),
			newTab(string(subscriptiondomain.StatusActive), view.Active),
			newTab(string(subscriptiondomain.StatusUpcoming), view.Upcoming),
			newTab(string(subscriptiondomain.StatusExpired), view.Expired),
		},
		Skipped:     snap.skipped,
		GeneratedAt: snap.generatedAt,
	}, nil
}

func (s *Service) classify(ctx context.Context) (snapshot, error) {
	settings := s.lifecycle.Get()
	classifier, err := lifecycle.New(lifecycle.Config{
		RenewalWindowDays: settings.RenewalWindowDays,
		Location:          settings.Location,
	})
	if err != nil {
		return snapshot{}, err
	}

	started := time.Now()
	subs, err := s.source.List(ctx)
	s.metrics.RecordSourceLoad(ctx, sourceName(s.source), time.Since(started))
	if err != nil {
		return snapshot{}, fmt.Errorf("load subscriptions: %w", err)
	}

	now := s.clock.Now()
	snap := snapshot{settings: settings, generatedAt: now}
	log := logger.WithContext(ctx, s.log)

	if settings.FailFast() {
		snap.annotated, err = classifier.ClassifyAllStrict(subs, now)
		if err != nil {
			s.metrics.RecordClassifyError(ctx, errorReason(err))
			log.Warn("classification aborted", zap.Error(err))
			return snapshot{}, err
		}
	} else {
		var errs []error
		snap.annotated, errs = classifier.ClassifyAll(subs, now)
		for _, recErr := range errs {
			var rec *subscriptiondomain.RecordError
			if errors.As(recErr, &rec) {
				snap.skipped = append(snap.skipped, rec.ID)
			}
			s.metrics.RecordClassifyError(ctx, errorReason(recErr))
			log.Warn("subscription skipped", zap.Error(recErr))
		}
	}

	parts := query.PartitionByStatus(snap.annotated)
	for _, status := range subscriptiondomain.Statuses {
		s.metrics.RecordClassified(ctx, string(status), len(parts.Get(status)))
	}
	log.Debug("subscriptions classified",
		zap.Int("total", len(snap.annotated)),
		zap.Int("skipped", len(snap.skipped)),
		zap.Time("now", now),
	)
	return snap, nil
}

func resolveSortKey(raw string, settings config.Lifecycle) (subscriptiondomain.SortKey, error) {
	if raw == "" {
		return settings.SortKey, nil
	}
	return subscriptiondomain.ParseSortKey(raw)
}

func newTab(name string, items []subscriptiondomain.Annotated) subscriptiondomain.Tab {
	return subscriptiondomain.Tab{Name: name, Count: len(items), Subscriptions: items}
}

func sourceName(src subscriptiondomain.Source) string {
	if n, ok := src.(named); ok {
		return n.Name()
	}
	return "custom"
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, subscriptiondomain.ErrInvalidDate):
		return "invalid_date"
	default:
		return "unknown"
	}
}
