package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a row does not exist, including the case
	// where it exists but the query's authorization predicate excluded it.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when an insert or update hits a unique index.
	ErrDuplicate = errors.New("duplicate record")
)

// Page describes result-set paging. From is an offset in result items snapped
// down to a whole page boundary: offset = floor(from/size)*size. Size <= 0
// means no paging at all (return every matching row, sorted).
type Page struct {
	From int64
	Size int
}

func (p Page) apply(q *gorm.DB) *gorm.DB {
	if p.Size <= 0 {
		return q
	}
	pageIndex := p.From / int64(p.Size)
	return q.Offset(int(pageIndex) * p.Size).Limit(p.Size)
}

// Migrate creates or updates the schema for every table the repositories own.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&itemModel{},
		&bookingModel{},
		&requestModel{},
		&commentModel{},
	)
}

func translateError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// isUniqueViolation matches the postgres unique-violation code and the sqlite
// message, so both backends surface duplicates the same way.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
