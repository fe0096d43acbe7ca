package repository

import (
	"context"
	"time"

	"github.com/revolt-software-bot/client-service-dashboard/internal/clock"
	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"
	"github.com/shopspring/decimal"
)

// DemoSource serves the sample portfolio shown on a fresh portal, dated
// relative to the clock's current day.
type DemoSource struct {
	clock clock.Clock
}

func NewDemoSource(clk clock.Clock) *DemoSource {
	return &DemoSource{clock: clk}
}

func (s *DemoSource) Name() string { return "demo" }

func (s *DemoSource) List(ctx context.Context) ([]domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return DemoSubscriptions(s.clock.Now()), nil
}

type demoEntry struct {
	id, name, description string
	startOffset           int
	endOffset             int
	price                 string
}

var demoPortfolio = []demoEntry{
	{"sub-1", "Website Maintenance - Basic", "Monthly website maintenance including updates, backups, and security checks", -180, 185, "49.99"},
	{"sub-2", "Website Maintenance - Premium", "Premium website maintenance with priority support and performance optimization", -90, 15, "99.99"},
	{"sub-3", "Mobile App Support", "Technical support and updates for mobile applications", -365, -5, "149.99"},
	{"sub-4", "E-commerce Platform License", "Yearly license for e-commerce platform with all features", -30, 335, "299.99"},
	{"sub-5", "SEO Services", "Monthly search engine optimization services", -25, 5, "199.99"},
	{"sub-6", "Email Marketing Tool", "Access to premium email marketing software", -180, -15, "79.99"},
	{"sub-7", "Cloud Storage - 1TB", "1TB of cloud storage for website assets and backups", -45, 320, "59.99"},
}

// DemoSubscriptions builds the sample portfolio around the calendar day of today.
func DemoSubscriptions(today time.Time) []domain.Subscription {
	out := make([]domain.Subscription, 0, len(demoPortfolio))
	for _, e := range demoPortfolio {
		out = append(out, domain.Subscription{
			ID:          e.id,
			Name:        e.name,
			Description: e.description,
			StartDate:   domain.FormatDate(today.AddDate(0, 0, e.startOffset)),
			EndDate:     domain.FormatDate(today.AddDate(0, 0, e.endOffset)),
			Price:       decimal.RequireFromString(e.price),
		})
	}
	return out
}
