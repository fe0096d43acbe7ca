package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FixtureSource reads subscription records from a YAML file of the form
//
//	subscriptions:
//	  - id: sub-1
//	    name: Website Maintenance - Basic
//	    startDate: 2026-04-17
//	    endDate: 2027-04-17
//	    price: 49.99
//
// Any status key in the file is ignored.
type FixtureSource struct {
	path string
}

func NewFixtureSource(path string) *FixtureSource {
	return &FixtureSource{path: path}
}

func (s *FixtureSource) Name() string { return "fixture" }

type fixtureFile struct {
	Subscriptions []fixtureRecord `yaml:"subscriptions"`
}

type fixtureRecord struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	StartDate   string `yaml:"startDate"`
	EndDate     string `yaml:"endDate"`
	Price       string `yaml:"price"`
}

func (s *FixtureSource) List(ctx context.Context) ([]domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSourceNotFound, s.path)
		}
		return nil, err
	}
	return ParseFixture(raw)
}

// ParseFixture decodes a YAML fixture document.
func ParseFixture(raw []byte) ([]domain.Subscription, error) {
	var file fixtureFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Subscriptions))
	out := make([]domain.Subscription, 0, len(file.Subscriptions))
	for _, r := range file.Subscriptions {
		id := strings.TrimSpace(r.ID)
		if id == "" {
			return nil, domain.ErrMissingID
		}
		if _, dup := seen[id]; dup {
			return nil, &domain.RecordError{ID: id, Err: domain.ErrDuplicateID}
		}
		seen[id] = struct{}{}

		price, err := parsePrice(r.Price)
		if err != nil {
			return nil, &domain.RecordError{ID: id, Err: err}
		}
		sub := domain.Subscription{
			ID:          id,
			Name:        r.Name,
			Description: r.Description,
			StartDate:   r.StartDate,
			EndDate:     r.EndDate,
			Price:       price,
		}
		if err := validate(sub); err != nil {
			return nil, err
		}
		out = append(out, sub)
	}
	return out, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrInvalidPrice, err)
	}
	return price, nil
}
