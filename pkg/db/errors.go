package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint violation,
// optionally scoped to a specific constraint name. Understands both the pgx
// and pq drivers plus sqlite's message form used in tests.
func IsUniqueViolation(err error, constraint string) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return constraint == "" || pgErr.ConstraintName == constraint
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return constraint == "" || pqErr.Constraint == constraint
	}

	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") {
		if constraint == "" {
			return true
		}
		// sqlite reports "table.column"; our constraints are named ux_<table>_<column>.
		normalized := strings.ReplaceAll(msg, ".", "_")
		return strings.Contains(normalized, strings.TrimPrefix(constraint, "ux_"))
	}
	return false
}
