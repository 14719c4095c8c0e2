package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
	codeNumericRange    = "22003"
)

// isUniqueViolation verifica si un error es una violación de constraint único.
func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == codeUniqueViolation
}

// isCheckViolation verifica si un error es una violación de CHECK (ej. quantity >= 0).
func isCheckViolation(err error) bool {
	return pgErrorCode(err) == codeCheckViolation
}

// isNumericOutOfRange verifica si el valor excede la precisión de la columna NUMERIC.
func isNumericOutOfRange(err error) bool {
	return pgErrorCode(err) == codeNumericRange
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
