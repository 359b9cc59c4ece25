package repository

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Common repository errors
var (
	// ErrNotFound is matched by every NotFoundError
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write collides with a unique constraint
	ErrConflict = errors.New("conflict")
)

// NotFoundError names the kind of entity that is missing and the keys that were looked up.
type NotFoundError struct {
	Entity string
	Keys   []int64
}

func NewNotFoundError(entity string, keys ...int64) *NotFoundError {
	return &NotFoundError{Entity: entity, Keys: keys}
}

func (e *NotFoundError) Error() string {
	if len(e.Keys) == 1 {
		return fmt.Sprintf("%s (%d) was not found", e.Entity, e.Keys[0])
	}
	ids := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		ids[i] = fmt.Sprint(k)
	}
	return fmt.Sprintf("%s not found: %s", e.Entity, strings.Join(ids, ", "))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsUniqueViolationError reports whether err comes from a unique index,
// whichever driver produced it.
func IsUniqueViolationError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}
	// sqlite: "constraint failed: UNIQUE constraint failed: tags.name (2067)"
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
