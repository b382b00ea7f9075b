package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation 23505.
func isUniqueViolation(err error) bool { return pgCode(err) == "23505" }

// isForeignKeyViolation 23503: referencia inexistente o fila aún referenciada.
func isForeignKeyViolation(err error) bool { return pgCode(err) == "23503" }

// isCheckViolation 23514 (ej. stock negativo).
func isCheckViolation(err error) bool { return pgCode(err) == "23514" }
