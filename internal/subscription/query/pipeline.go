// Package query filters, orders and partitions classified subscriptions.
//
// Every function returns a fresh slice and leaves its input untouched.
package query

import (
	"slices"
	"strings"

	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Pipeline holds the collation language used to order names. Collators are
// built per call, so a Pipeline is safe for concurrent use.
type Pipeline struct {
	lang language.Tag
}

func New(lang language.Tag) *Pipeline {
	return &Pipeline{lang: lang}
}

// Language reports the collation language.
func (p *Pipeline) Language() language.Tag { return p.lang }

// Query restricts subs to params.StatusFilter when set, keeps the records
// whose name or description contains params.SearchText, and orders the
// result by params.SortKey. An empty SortKey sorts by name.
func (p *Pipeline) Query(subs []domain.Annotated, params domain.QueryParams) ([]domain.Annotated, error) {
	key, err := sortKey(params.SortKey)
	if err != nil {
		return nil, err
	}
	if params.StatusFilter != nil && !params.StatusFilter.Valid() {
		return nil, &domain.InvalidParameterError{Name: "status", Value: string(*params.StatusFilter)}
	}

	scoped := subs
	if params.StatusFilter != nil {
		scoped = ByStatus(subs, *params.StatusFilter)
	}
	return p.sort(Filter(scoped, params.SearchText), key), nil
}

// Sort returns a stably ordered copy of subs.
func (p *Pipeline) Sort(subs []domain.Annotated, key domain.SortKey) ([]domain.Annotated, error) {
	k, err := sortKey(key)
	if err != nil {
		return nil, err
	}
	return p.sort(slices.Clone(subs), k), nil
}

func (p *Pipeline) sort(out []domain.Annotated, key domain.SortKey) []domain.Annotated {
	if out == nil {
		out = []domain.Annotated{}
	}
	switch key {
	case domain.SortByName:
		c := collate.New(p.lang)
		slices.SortStableFunc(out, func(a, b domain.Annotated) int {
			return c.CompareString(a.Name, b.Name)
		})
	case domain.SortByEndDate:
		slices.SortStableFunc(out, func(a, b domain.Annotated) int {
			return a.End.Compare(b.End)
		})
	case domain.SortByPrice:
		slices.SortStableFunc(out, func(a, b domain.Annotated) int {
			return a.Price.Cmp(b.Price)
		})
	}
	return out
}

func sortKey(key domain.SortKey) (domain.SortKey, error) {
	if key == "" {
		return domain.SortByName, nil
	}
	if !key.Valid() {
		return "", &domain.InvalidParameterError{Name: "sort_key", Value: string(key)}
	}
	return key, nil
}

// Filter keeps the subscriptions whose name or description contains
// searchText, ignoring case. An empty searchText keeps everything.
func Filter(subs []domain.Annotated, searchText string) []domain.Annotated {
	out := make([]domain.Annotated, 0, len(subs))
	if searchText == "" {
		return append(out, subs...)
	}

	fold := cases.Fold()
	needle := fold.String(searchText)
	for _, sub := range subs {
		if strings.Contains(fold.String(sub.Name), needle) ||
			strings.Contains(fold.String(sub.Description), needle) {
			out = append(out, sub)
		}
	}
	return out
}

// ByStatus keeps the subscriptions classified as status, in input order.
func ByStatus(subs []domain.Annotated, status domain.Status) []domain.Annotated {
	out := make([]domain.Annotated, 0, len(subs))
	for _, sub := range subs {
		if sub.Status == status {
			out = append(out, sub)
		}
	}
	return out
}

// PartitionByStatus groups subs by status, preserving input order within
// each group. Records with an unrecognized status are left out.
func PartitionByStatus(subs []domain.Annotated) domain.Partition {
	p := domain.Partition{
		Active:   []domain.Annotated{},
		Upcoming: []domain.Annotated{},
		Expired:  []domain.Annotated{},
	}
	for _, sub := range subs {
		switch sub.Status {
		case domain.StatusActive:
			p.Active = append(p.Active, sub)
		case domain.StatusUpcoming:
			p.Upcoming = append(p.Upcoming, sub)
		case domain.StatusExpired:
			p.Expired = append(p.Expired, sub)
		}
	}
	return p
}
