package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/modabuy/storefront-backend/pkg/logger"
)

const requestIDHeader = "X-Request-Id"

// RequestID takes the inbound request id or mints one, echoes it on the
// response and binds it to the context logger.
func RequestID(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(requestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}

			w.Header().Set(requestIDHeader, requestID)

			ctx := WithRequestID(r.Context(), requestID)
			ctx = logg.WithRequestID(ctx, requestID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
