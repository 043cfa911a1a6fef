package postgres

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/marketplace-identity/internal/domain"
)

// Códigos SQLSTATE relevantes.
const (
	codeUniqueViolation  = "23505"
	codeNotNullViolation = "23502"
	codeCheckViolation   = "23514"
	codeStringTooLong    = "22001"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == codeUniqueViolation
	}
	return strings.Contains(err.Error(), codeUniqueViolation)
}

// translateError traduce errores de PostgreSQL a errores de dominio.
// La unicidad del email es la garantía autoritativa frente a registros concurrentes.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domain.Wrap(domain.ErrDuplicateEmail, err, "email already registered")
	}
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case codeNotNullViolation:
		return domain.Wrap(domain.ErrValidation, err, "Validation Error: "+pgErr.ColumnName+": cannot be blank")
	case codeCheckViolation:
		return domain.Wrap(domain.ErrValidation, err, "Validation Error: "+constraintField(pgErr.ConstraintName)+": must be a valid value")
	case codeStringTooLong:
		return domain.Wrap(domain.ErrValidation, err, "Validation Error: value too long")
	}
	return err
}

// constraintField deriva el campo de un constraint "accounts_<campo>_check".
func constraintField(constraint string) string {
	field := strings.TrimPrefix(constraint, "accounts_")
	field = strings.TrimSuffix(field, "_check")
	if field == "" {
		return constraint
	}
	return field
}
