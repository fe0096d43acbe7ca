package report

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/revolt-software-bot/client-service-dashboard/internal/observability/logger"
	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Options selects what a report run prints. A non-empty Status prints a
// single list instead of the dashboard.
type Options struct {
	SearchText string
	SortKey    string
	Status     string
}

type Summary struct {
	Total            int `json:"total"`
	Active           int `json:"active"`
	UpcomingRenewals int `json:"upcoming_renewals"`
	Expired          int `json:"expired"`
}

type TabReport struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Cards []Card `json:"subscriptions"`
}

// Dashboard mirrors the portal landing page: summary cards followed by the
// searchable tabs.
type Dashboard struct {
	RunID       string      `json:"run_id,omitempty"`
	GeneratedAt time.Time   `json:"generated_at"`
	Summary     Summary     `json:"summary"`
	Tabs        []TabReport `json:"tabs"`
	Skipped     []string    `json:"skipped,omitempty"`
}

type Listing struct {
	RunID       string    `json:"run_id,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
	Status      string    `json:"status"`
	Count       int       `json:"count"`
	Cards       []Card    `json:"subscriptions"`
	Skipped     []string  `json:"skipped,omitempty"`
}

type Runner struct {
	svc domain.Service
	log *zap.Logger
}

type RunnerParam struct {
	fx.In

	Service domain.Service
	Log     *zap.Logger
}

func NewRunner(p RunnerParam) *Runner {
	return &Runner{svc: p.Service, log: p.Log.Named("report")}
}

// Run builds the report selected by opts and writes it to w as indented JSON.
func (r *Runner) Run(ctx context.Context, opts Options, w io.Writer) error {
	log := logger.WithContext(ctx, r.log)

	var out any
	if opts.Status != "" {
		listing, err := r.listing(ctx, opts)
		if err != nil {
			return err
		}
		out = listing
	} else {
		dashboard, err := r.dashboard(ctx, opts)
		if err != nil {
			return err
		}
		out = dashboard
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return err
	}
	log.Info("report written",
		zap.String("search", opts.SearchText),
		zap.String("sort", opts.SortKey),
		zap.String("status", opts.Status),
	)
	return nil
}

func (r *Runner) listing(ctx context.Context, opts Options) (Listing, error) {
	resp, err := r.svc.List(ctx, domain.ListRequest{
		SearchText: opts.SearchText,
		SortKey:    opts.SortKey,
		Status:     opts.Status,
	})
	if err != nil {
		return Listing{}, err
	}
	cards := NewCards(resp.Subscriptions)
	return Listing{
		RunID:       logger.RunIDFromContext(ctx),
		GeneratedAt: resp.GeneratedAt,
		Status:      opts.Status,
		Count:       len(cards),
		Cards:       cards,
		Skipped:     resp.Skipped,
	}, nil
}

func (r *Runner) dashboard(ctx context.Context, opts Options) (Dashboard, error) {
	resp, err := r.svc.Overview(ctx, domain.OverviewRequest{
		SearchText: opts.SearchText,
		SortKey:    opts.SortKey,
	})
	if err != nil {
		return Dashboard{}, err
	}

	tabs := make([]TabReport, 0, len(resp.Tabs))
	for _, tab := range resp.Tabs {
		tabs = append(tabs, TabReport{Name: tab.Name, Count: tab.Count, Cards: NewCards(tab.Subscriptions)})
	}
	return Dashboard{
		RunID:       logger.RunIDFromContext(ctx),
		GeneratedAt: resp.GeneratedAt,
		Summary: Summary{
			Total:            resp.Summary.All,
			Active:           resp.Summary.Active,
			UpcomingRenewals: resp.Summary.Upcoming,
			Expired:          resp.Summary.Expired,
		},
		Tabs:    tabs,
		Skipped: resp.Skipped,
	}, nil
}

var Module = fx.Module("report",
	fx.Provide(NewRunner),
)
