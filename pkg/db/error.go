package db

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// Driver messages for unique violations: PostgreSQL 23505, MySQL 1062,
// SQLite 2067.
var duplicateKeyMessages = []string{
	"duplicate key value violates unique constraint",
	"Error 1062",
	"UNIQUE constraint failed",
}

// IsDuplicateKeyErr reports whether err is a unique constraint violation.
func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	for _, m := range duplicateKeyMessages {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
