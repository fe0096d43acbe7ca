package domain

import "strings"

// SortKey selects the ordering applied by the query pipeline.
type SortKey string

const (
	SortByName    SortKey = "name"
	SortByEndDate SortKey = "endDate"
	SortByPrice   SortKey = "price"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortByName, SortByEndDate, SortByPrice:
		return true
	default:
		return false
	}
}

// ParseSortKey maps a caller-supplied key to a SortKey. An empty key selects
// SortByName.
func ParseSortKey(raw string) (SortKey, error) {
	switch strings.TrimSpace(raw) {
	case "", "name":
		return SortByName, nil
	case "endDate", "end_date", "date":
		return SortByEndDate, nil
	case "price":
		return SortByPrice, nil
	default:
		return "", &InvalidParameterError{Name: "sort_key", Value: raw}
	}
}

// ParseStatus maps a caller-supplied status name to a Status.
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !status.Valid() {
		return "", &InvalidParameterError{Name: "status", Value: raw}
	}
	return status, nil
}

// QueryParams configures a query over classified subscriptions.
type QueryParams struct {
	SearchText   string
	SortKey      SortKey
	StatusFilter *Status
}

// WithStatus returns a copy of p restricted to status.
func (p QueryParams) WithStatus(status Status) QueryParams {
	p.StatusFilter = &status
	return p
}
