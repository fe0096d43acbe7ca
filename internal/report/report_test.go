package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/revolt-software-bot/client-service-dashboard/internal/observability/logger"
	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, req domain.ListRequest) (domain.ListResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.ListResponse), args.Error(1)
}

func (m *mockService) Overview(ctx context.Context, req domain.OverviewRequest) (domain.OverviewResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(domain.OverviewResponse), args.Error(1)
}

func (m *mockService) Classify(ctx context.Context) ([]domain.Annotated, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]domain.Annotated)
	return items, args.Error(1)
}

func annotated(id string, status domain.Status, days int) domain.Annotated {
	return domain.Annotated{
		Subscription: domain.Subscription{
			ID:    id,
			Name:  "Sub " + id,
			Price: decimal.RequireFromString("19.5"),
		},
		Start:         time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		End:           time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Status:        status,
		DaysRemaining: days,
	}
}

func TestBadge(t *testing.T) {
	cases := []struct {
		name string
		in   domain.Annotated
		want string
	}{
		{"active", annotated("1", domain.StatusActive, 90), "Active"},
		{"upcoming", annotated("2", domain.StatusUpcoming, 12), "Renew in 12 days"},
		{"ends today", annotated("3", domain.StatusUpcoming, 0), "Renew in 0 days"},
		{"expired", annotated("4", domain.StatusExpired, -8), "Expired 8 days ago"},
		{"unknown", annotated("5", domain.Status("paused"), 1), "Unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Badge(tc.in))
		})
	}
}

func TestNewCard(t *testing.T) {
	card := NewCard(annotated("1", domain.StatusActive, 90))
	assert.Equal(t, "19.50", card.Price)
	assert.Equal(t, "2026-01-01", card.StartDate)
	assert.Equal(t, "2026-12-31", card.EndDate)
	assert.NotNil(t, NewCards(nil))
}

func TestRun_Dashboard(t *testing.T) {
	svc := &mockService{}
	now := time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC)
	svc.On("Overview", mock.Anything, domain.OverviewRequest{SearchText: "sub", SortKey: "price"}).Return(domain.OverviewResponse{
		Summary: domain.Counts{All: 2, Active: 1, Expired: 1},
		Tabs: []domain.Tab{
			{Name: domain.TabAll, Count: 2, Subscriptions: []domain.Annotated{annotated("1", domain.StatusActive, 90), annotated("2", domain.StatusExpired, -3)}},
			{Name: "active", Count: 1, Subscriptions: []domain.Annotated{annotated("1", domain.StatusActive, 90)}},
		},
		GeneratedAt: now,
	}, nil)

	r := NewRunner(RunnerParam{Service: svc, Log: zap.NewNop()})
	var buf bytes.Buffer
	ctx := logger.WithRunID(context.Background(), "run-42")
	require.NoError(t, r.Run(ctx, Options{SearchText: "sub", SortKey: "price"}, &buf))

	var got Dashboard
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "run-42", got.RunID)
	assert.Equal(t, Summary{Total: 2, Active: 1, Expired: 1}, got.Summary)
	require.Len(t, got.Tabs, 2)
	assert.Equal(t, "Expired 3 days ago", got.Tabs[0].Cards[1].Badge)
	assert.True(t, now.Equal(got.GeneratedAt))
	svc.AssertExpectations(t)
}

func TestRun_Listing(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, domain.ListRequest{Status: "upcoming"}).Return(domain.ListResponse{
		Subscriptions: []domain.Annotated{annotated("2", domain.StatusUpcoming, 5)},
		Skipped:       []string{"bad"},
	}, nil)

	r := NewRunner(RunnerParam{Service: svc, Log: zap.NewNop()})
	var buf bytes.Buffer
	require.NoError(t, r.Run(context.Background(), Options{Status: "upcoming"}, &buf))

	var got Listing
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 1, got.Count)
	assert.Equal(t, "Renew in 5 days", got.Cards[0].Badge)
	assert.Equal(t, []string{"bad"}, got.Skipped)
	assert.Empty(t, got.RunID)
}

func TestRun_Error(t *testing.T) {
	svc := &mockService{}
	svc.On("List", mock.Anything, mock.Anything).Return(domain.ListResponse{}, &domain.InvalidParameterError{Name: "status", Value: "x"})

	r := NewRunner(RunnerParam{Service: svc, Log: zap.NewNop()})
	var buf bytes.Buffer
	err := r.Run(context.Background(), Options{Status: "x"}, &buf)
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
	assert.Zero(t, buf.Len())
}
