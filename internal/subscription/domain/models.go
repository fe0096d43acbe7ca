// Package domain contains the subscription records and the derived lifecycle view.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO 8601 calendar date layout used by subscription records.
const DateLayout = "2006-01-02"

// Status is the derived lifecycle state of a subscription.
type Status string

const (
	StatusActive   Status = "active"
	StatusUpcoming Status = "upcoming"
	StatusExpired  Status = "expired"
)

// Statuses lists every status in partition order.
var Statuses = []Status{StatusActive, StatusUpcoming, StatusExpired}

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusUpcoming, StatusExpired:
		return true
	default:
		return false
	}
}

func (s Status) String() string { return string(s) }

// Subscription is a raw record supplied by a Source. It carries no status:
// the lifecycle state is always derived from the dates.
type Subscription struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description" yaml:"description"`
	StartDate   string          `json:"start_date" yaml:"startDate"`
	EndDate     string          `json:"end_date" yaml:"endDate"`
	Price       decimal.Decimal `json:"price" yaml:"price"`
}

// Annotated is a Subscription classified against a reference instant.
type Annotated struct {
	Subscription

	Start         time.Time `json:"-"`
	End           time.Time `json:"-"`
	Status        Status    `json:"status"`
	DaysRemaining int       `json:"days_remaining"`
	Progress      int       `json:"progress"`
}

// Partition groups classified subscriptions by status.
type Partition struct {
	Active   []Annotated `json:"active"`
	Upcoming []Annotated `json:"upcoming"`
	Expired  []Annotated `json:"expired"`
}

// Counts summarizes a Partition.
type Counts struct {
	All      int `json:"all"`
	Active   int `json:"active"`
	Upcoming int `json:"upcoming"`
	Expired  int `json:"expired"`
}

func (p Partition) Counts() Counts {
	return Counts{
		All:      len(p.Active) + len(p.Upcoming) + len(p.Expired),
		Active:   len(p.Active),
		Upcoming: len(p.Upcoming),
		Expired:  len(p.Expired),
	}
}

// Get returns the partition slice for status.
func (p Partition) Get(status Status) []Annotated {
	switch status {
	case StatusActive:
		return p.Active
	case StatusUpcoming:
		return p.Upcoming
	case StatusExpired:
		return p.Expired
	default:
		return nil
	}
}
