package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/modabuy/storefront-backend/models"
	"github.com/modabuy/storefront-backend/pkg/auth"
	pkgerrors "github.com/modabuy/storefront-backend/pkg/errors"
	"github.com/modabuy/storefront-backend/pkg/logger"
)

type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type sessionManager interface {
	Create(ctx context.Context, userID uuid.UUID) (string, error)
	Revoke(ctx context.Context, token string) error
}

type Service interface {
	// Login verifies credentials and mints a session token.
	Login(ctx context.Context, email, password string) (string, *models.User, error)
	// Logout revokes the session token. Unknown tokens are a no-op.
	Logout(ctx context.Context, token string) error
}

type service struct {
	users    userFinder
	sessions sessionManager
	logg     *logger.Logger
}

func NewService(users userFinder, sessions sessionManager, logg *logger.Logger) Service {
	if users == nil {
		panic("auth: user finder is required")
	}
	if sessions == nil {
		panic("auth: session manager is required")
	}
	if logg == nil {
		panic("auth: logger is required")
	}
	return &service{users: users, sessions: sessions, logg: logg}
}

func (s *service) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Unknown email and wrong password are indistinguishable to callers.
		if pkgerrors.CodeOf(err) == pkgerrors.CodeNotFound {
			return "", nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return "", nil, err
	}

	if err := auth.VerifyPassword(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return "", nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return "", nil, err
	}

	token, err := s.sessions.Create(ctx, user.ID)
	if err != nil {
		return "", nil, err
	}

	s.logg.Info(s.logg.WithUserID(ctx, user.ID.String()), "user logged in")
	return token, user, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}
