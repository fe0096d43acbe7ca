package seed

import (
	"context"
	"errors"
	"time"

	"github.com/revolt-software-bot/client-service-dashboard/internal/subscription/repository"
	"gorm.io/gorm"
)

// EnsureDemoSubscriptions stores the demo portfolio anchored at today. Rows
// that already exist are left untouched.
func EnsureDemoSubscriptions(ctx context.Context, db *gorm.DB, today time.Time) (int, error) {
	if db == nil {
		return 0, errors.New("seed database handle is required")
	}
	return repository.NewGormSource(db).InsertMissing(ctx, repository.DemoSubscriptions(today))
}
