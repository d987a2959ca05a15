package persistence

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a record does not exist or is soft-deleted.
	ErrNotFound = errors.New("record not found")
	// ErrNoFreeSlot is returned by ServerStore.Reserve when the server is full or not active.
	ErrNoFreeSlot = errors.New("server has no free slot")
	// ErrConflict is returned when a unique constraint (live domain, template slug) is violated.
	ErrConflict = errors.New("record conflicts with an existing one")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
