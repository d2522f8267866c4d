package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// Dump renders err with every postgres driver detail it carries. Meant for
// logs only, never for responses.
func Dump(err error) string {
	if err == nil {
		return "<nil>"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "error: %v", err)

	var pgErr *pgconn.PgError
	if stderrors.As(err, &pgErr) {
		fmt.Fprintf(&b, "\npgconn: code=%s severity=%s message=%s detail=%s constraint=%s table=%s",
			pgErr.Code, pgErr.Severity, pgErr.Message, pgErr.Detail, pgErr.ConstraintName, pgErr.TableName)
	}

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		fmt.Fprintf(&b, "\npq: code=%s severity=%s message=%s detail=%s constraint=%s table=%s",
			pqErr.Code, pqErr.Severity, pqErr.Message, pqErr.Detail, pqErr.Constraint, pqErr.Table)
	}

	if coded := As(err); coded != nil && len(coded.details) > 0 {
		fmt.Fprintf(&b, "\ndetails: %v", coded.details)
	}

	return b.String()
}
