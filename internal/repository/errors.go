package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgExclusionViolation  = "23P01"
	pgCheckViolation      = "23514"
	pgForeignKeyViolation = "23503"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isSlotConflict reports whether err comes from the bookings uniqueness or
// overlap constraints.
func isSlotConflict(err error) bool {
	switch pgCode(err) {
	case pgUniqueViolation, pgExclusionViolation:
		return true
	}
	return false
}
