package repository

import (
	"strings"
	"time"

	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"
	"github.com/shopspring/decimal"
)

// Record is the persisted form of a subscription. Status is derived on read
// and never stored.
type Record struct {
	ID          string          `gorm:"primaryKey;type:varchar(64)"`
	Name        string          `gorm:"type:text;not null"`
	Description string          `gorm:"type:text;not null;default:''"`
	StartDate   time.Time       `gorm:"type:date;not null"`
	EndDate     time.Time       `gorm:"type:date;not null"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName sets the database table name.
func (Record) TableName() string { return "subscriptions" }

func (r Record) toDomain() domain.Subscription {
	return domain.Subscription{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		StartDate:   domain.FormatDate(r.StartDate),
		EndDate:     domain.FormatDate(r.EndDate),
		Price:       r.Price,
	}
}

func recordFromDomain(sub domain.Subscription) (Record, error) {
	if err := validate(sub); err != nil {
		return Record{}, err
	}
	start, err := domain.ParseDate("start_date", sub.StartDate, time.UTC)
	if err != nil {
		return Record{}, err
	}
	end, err := domain.ParseDate("end_date", sub.EndDate, time.UTC)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:          strings.TrimSpace(sub.ID),
		Name:        sub.Name,
		Description: sub.Description,
		StartDate:   start,
		EndDate:     end,
		Price:       sub.Price,
	}, nil
}

func validate(sub domain.Subscription) error {
	if strings.TrimSpace(sub.ID) == "" {
		return domain.ErrMissingID
	}
	if sub.Price.IsNegative() {
		return &domain.RecordError{ID: sub.ID, Err: domain.ErrInvalidPrice}
	}
	return nil
}
