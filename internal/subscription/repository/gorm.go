package repository

import (
	"context"
	"fmt"

	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/domain"
	"github.com/revolt-software-bot/client-service-dashboard/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSource reads subscription records from the subscriptions table.
type GormSource struct {
	db *gorm.DB
}

func NewGormSource(conn *gorm.DB) *GormSource {
	return &GormSource{db: conn}
}

func (s *GormSource) Name() string { return "database" }

func (s *GormSource) List(ctx context.Context) ([]domain.Subscription, error) {
	var records []Record
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	out := make([]domain.Subscription, 0, len(records))
	for _, r := range records {
		out = append(out, r.toDomain())
	}
	return out, nil
}

// Upsert writes subs in one transaction, replacing rows with the same id.
func (s *GormSource) Upsert(ctx context.Context, subs []domain.Subscription) error {
	if len(subs) == 0 {
		return nil
	}

	records := make([]Record, 0, len(subs))
	for _, sub := range subs {
		r, err := recordFromDomain(sub)
		if err != nil {
			return err
		}
		records = append(records, r)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "description", "start_date", "end_date", "price", "updated_at"}),
		}).Create(&records).Error
	})
}

// InsertMissing inserts the records whose id is not stored yet and reports
// how many were written.
func (s *GormSource) InsertMissing(ctx context.Context, subs []domain.Subscription) (int, error) {
	inserted := 0
	for _, sub := range subs {
		r, err := recordFromDomain(sub)
		if err != nil {
			return inserted, err
		}
		if err := s.db.WithContext(ctx).Create(&r).Error; err != nil {
			if db.IsDuplicateKeyErr(err) {
				continue
			}
			return inserted, fmt.Errorf("insert subscription %q: %w", r.ID, err)
		}
		inserted++
	}
	return inserted, nil
}

// Migrate creates the subscriptions table through gorm.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(&Record{})
}
