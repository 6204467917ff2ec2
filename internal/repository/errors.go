package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrKeyConflict is returned when an insert hits a unique constraint,
	// typically because another session took the same max+1 key first.
	ErrKeyConflict = errors.New("key conflict")
	// ErrNoSeatsLeft is returned when a seat increment finds the instance full.
	ErrNoSeatsLeft = errors.New("no available seats")
)

const uniqueViolation = "23505"

// isUniqueViolation checks if the error is a PostgreSQL unique violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
