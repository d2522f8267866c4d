package middleware

import (
	"fmt"
	"net/http"

	"github.com/modabuy/storefront-backend/api/responses"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

// Recoverer converts handler panics into 500 responses instead of tearing
// down the connection.
func Recoverer(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					if rec == http.ErrAbortHandler {
						panic(rec)
					}
					err := fmt.Errorf("panic: %v", rec)
					responses.WriteError(w, r, logg,
						pkgerrors.Wrap(pkgerrors.CodeInternal, "panic recovered", err))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
