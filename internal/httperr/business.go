package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// exclusion_violation
const pgExclusionViolation = "23P01"

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// CodeOf returns the business code carried by err, or "" for any other error.
func CodeOf(err error) string {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// IsExclusionConflict reports whether err comes from the appointments
// no-overlap constraint in Postgres.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgExclusionViolation
	}
	return false
}
