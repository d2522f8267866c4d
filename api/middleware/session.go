package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/modabuy/storefront-backend/api/responses"
	"github.com/modabuy/storefront-backend/pkg/auth/session"
	"github.com/modabuy/storefront-backend/pkg/config"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

// SessionResolver maps a session token to a user id.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}

// Session gates a subtree on a valid session cookie. A missing cookie is a
// 400 and short-circuits before any store lookup; an unknown or expired
// token is a 401.
func Session(cfg config.SessionConfig, resolver SessionResolver, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cfg.CookieName)
			if err != nil || cookie.Value == "" {
				responses.WriteError(w, r, logg,
					pkgerrors.New(pkgerrors.CodeValidation, "missing session id"))
				return
			}

			userID, err := resolver.Resolve(r.Context(), cookie.Value)
			if err != nil {
				if errors.Is(err, session.ErrSessionNotFound) {
					responses.WriteError(w, r, logg,
						pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid session"))
					return
				}
				responses.WriteError(w, r, logg,
					pkgerrors.Wrap(pkgerrors.CodeDependency, "session store unavailable", err))
				return
			}

			ctx := WithUserID(r.Context(), userID)
			ctx = logg.WithUserID(ctx, userID.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
