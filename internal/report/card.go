package report

import (
	"fmt"

	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"
)

// Card is the printable view of one classified subscription.
type Card struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Description   string        `json:"description,omitempty"`
	StartDate     string        `json:"start_date"`
	EndDate       string        `json:"end_date"`
	Price         string        `json:"price"`
	Status        domain.Status `json:"status"`
	Badge         string        `json:"badge"`
	DaysRemaining int           `json:"days_remaining"`
	Progress      int           `json:"progress"`
}

// Badge renders the status line shown on a subscription card.
func Badge(a domain.Annotated) string {
	switch a.Status {
	case domain.StatusUpcoming:
		return fmt.Sprintf("Renew in %d days", a.DaysRemaining)
	case domain.StatusExpired:
		return fmt.Sprintf("Expired %d days ago", -a.DaysRemaining)
	case domain.StatusActive:
		return "Active"
	default:
		return "Unknown"
	}
}

func NewCard(a domain.Annotated) Card {
	return Card{
		ID:            a.ID,
		Name:          a.Name,
		Description:   a.Description,
		StartDate:     domain.FormatDate(a.Start),
		EndDate:       domain.FormatDate(a.End),
		Price:         a.Price.StringFixed(2),
		Status:        a.Status,
		Badge:         Badge(a),
		DaysRemaining: a.DaysRemaining,
		Progress:      a.Progress,
	}
}

func NewCards(items []domain.Annotated) []Card {
	out := make([]Card, 0, len(items))
	for _, item := range items {
		out = append(out, NewCard(item))
	}
	return out
}
