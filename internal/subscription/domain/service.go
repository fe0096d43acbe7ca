package domain

import (
	"context"
	"time"
)

// TabAll names the unpartitioned tab of an overview.
const TabAll = "all"

type ListRequest struct {
	SearchText string
	SortKey    string
	Status     string
}

type ListResponse struct {
	Subscriptions []Annotated `json:"subscriptions"`
	Skipped       []string    `json:"skipped,omitempty"`
	GeneratedAt   time.Time   `json:"generated_at"`
}

type OverviewRequest struct {
	SearchText string
	SortKey    string
}

// Tab is one filtered and sorted view of an overview.
type Tab struct {
	Name          string      `json:"name"`
	Count         int         `json:"count"`
	Subscriptions []Annotated `json:"subscriptions"`
}

// OverviewResponse carries the summary counts over all subscriptions and
// the tabs filtered by the request's search text.
type OverviewResponse struct {
	Summary     Counts    `json:"summary"`
	Tabs        []Tab     `json:"tabs"`
	Skipped     []string  `json:"skipped,omitempty"`
	GeneratedAt time.Time `json:"generated_at"`
}

type Service interface {
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	Overview(ctx context.Context, req OverviewRequest) (OverviewResponse, error)
	Classify(ctx context.Context) ([]Annotated, error)
}
