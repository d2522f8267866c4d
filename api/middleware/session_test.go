package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modabuy/storefront-backend/pkg/auth/session"
	"github.com/modabuy/storefront-backend/pkg/config"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

type stubResolver struct {
	userID uuid.UUID
	err    error
	calls  int
}

func (s *stubResolver) Resolve(_ context.Context, _ string) (uuid.UUID, error) {
	s.calls++
	return s.userID, s.err
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func runSession(t *testing.T, resolver *stubResolver, cookie *http.Cookie) (*httptest.ResponseRecorder, *uuid.UUID) {
	t.Helper()

	cfg := config.SessionConfig{CookieName: "session_id"}
	var seenUserID *uuid.UUID
	handler := Session(cfg, resolver, testLogger())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id, ok := UserIDFromContext(r.Context()); ok {
			seenUserID = &id
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seenUserID
}

func TestMissingCookieIs400AndSkipsResolver(t *testing.T) {
	resolver := &stubResolver{}

	rec, seen := runSession(t, resolver, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, seen)
	// The gate must fail before touching the session store.
	assert.Zero(t, resolver.calls)
}

func TestEmptyCookieIs400(t *testing.T) {
	resolver := &stubResolver{}

	rec, _ := runSession(t, resolver, &http.Cookie{Name: "session_id", Value: ""})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, resolver.calls)
}

func TestUnknownTokenIs401(t *testing.T) {
	resolver := &stubResolver{err: session.ErrSessionNotFound}

	rec, seen := runSession(t, resolver, &http.Cookie{Name: "session_id", Value: "stale"})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Nil(t, seen)
	assert.Equal(t, 1, resolver.calls)
}

func TestStoreFailureIs503(t *testing.T) {
	resolver := &stubResolver{err: errors.New("connection refused")}

	rec, _ := runSession(t, resolver, &http.Cookie{Name: "session_id", Value: "t"})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestValidTokenSetsUserID(t *testing.T) {
	userID := uuid.New()
	resolver := &stubResolver{userID: userID}

	rec, seen := runSession(t, resolver, &http.Cookie{Name: "session_id", Value: "good"})

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, userID, *seen)
}
