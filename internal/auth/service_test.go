package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modabuy/storefront-backend/models"
	pkgauth "github.com/modabuy/storefront-backend/pkg/auth"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

type stubUserFinder struct {
	users map[string]*models.User
}

func (s *stubUserFinder) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	return user, nil
}

type stubSessionManager struct {
	created []uuid.UUID
	revoked []string
}

func (s *stubSessionManager) Create(_ context.Context, userID uuid.UUID) (string, error) {
	s.created = append(s.created, userID)
	return "token-1", nil
}

func (s *stubSessionManager) Revoke(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.Disabled})
}

func TestLoginSuccess(t *testing.T) {
	hash, err := pkgauth.HashPassword("hunter2")
	require.NoError(t, err)

	userID := uuid.New()
	users := &stubUserFinder{users: map[string]*models.User{
		"kim@example.com": {ID: userID, Email: "kim@example.com", PasswordHash: hash},
	}}
	sessions := &stubSessionManager{}
	svc := NewService(users, sessions, testLogger())

	token, user, err := svc.Login(context.Background(), "kim@example.com", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
	assert.Equal(t, userID, user.ID)
	require.Len(t, sessions.created, 1)
	assert.Equal(t, userID, sessions.created[0])
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := pkgauth.HashPassword("hunter2")
	require.NoError(t, err)

	users := &stubUserFinder{users: map[string]*models.User{
		"kim@example.com": {ID: uuid.New(), PasswordHash: hash},
	}}
	sessions := &stubSessionManager{}
	svc := NewService(users, sessions, testLogger())

	_, _, err = svc.Login(context.Background(), "kim@example.com", "wrong")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
	assert.Empty(t, sessions.created)
}

func TestLoginUnknownEmailMapsToUnauthorized(t *testing.T) {
	svc := NewService(&stubUserFinder{users: map[string]*models.User{}}, &stubSessionManager{}, testLogger())

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "x")
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.CodeOf(err))
}

func TestLogout(t *testing.T) {
	sessions := &stubSessionManager{}
	svc := NewService(&stubUserFinder{}, sessions, testLogger())

	require.NoError(t, svc.Logout(context.Background(), "token-9"))
	assert.Equal(t, []string{"token-9"}, sessions.revoked)
}
