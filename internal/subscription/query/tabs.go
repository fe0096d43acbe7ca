package query

import "github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"

// TabView is the same search and ordering applied to every status tab.
type TabView struct {
	All      []domain.Annotated
	Active   []domain.Annotated
	Upcoming []domain.Annotated
	Expired  []domain.Annotated
}

// Tabs filters and sorts subs once and splits the result by status. Since the
// sort is stable this matches querying each partition on its own.
func (p *Pipeline) Tabs(subs []domain.Annotated, searchText string, key domain.SortKey) (TabView, error) {
	all, err := p.Query(subs, domain.QueryParams{SearchText: searchText, SortKey: key})
	if err != nil {
		return TabView{}, err
	}
	parts := PartitionByStatus(all)
	return TabView{
		All:      all,
		Active:   parts.Active,
		Upcoming: parts.Upcoming,
		Expired:  parts.Expired,
	}, nil
}
