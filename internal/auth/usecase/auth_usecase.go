package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/bitmarket/contentgate/internal/auth/domain"
	"github.com/bitmarket/contentgate/internal/errors"
)

type authUseCase struct {
	sessionRepo  SessionRepository
	tokenService TokenService
	logger       *slog.Logger
	now          func() time.Time
}

// NewAuthUseCase creates a new AuthUseCase.
func NewAuthUseCase(
	sessionRepo SessionRepository,
	tokenService TokenService,
	logger *slog.Logger,
) AuthUseCase {
	return &authUseCase{
		sessionRepo:  sessionRepo,
		tokenService: tokenService,
		logger:       logger,
		now:          time.Now,
	}
}

// Authenticate resolves the session for a plain bearer token. It returns
// domain.ErrSessionExpired when the session exists but has lapsed, and an
// unauthorized error when no session matches.
func (u *authUseCase) Authenticate(
	ctx context.Context,
	plainToken string,
) (*domain.Session, error) {
	if plainToken == "" {
		return nil, errors.Wrap(errors.ErrUnauthorized, "missing bearer token")
	}

	tokenHash := u.tokenService.HashToken(plainToken)

	session, err := u.sessionRepo.GetByTokenHash(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return nil, errors.Wrap(errors.ErrUnauthorized, "invalid bearer token")
		}
		return nil, errors.Wrap(err, "failed to authenticate session")
	}

	if session.IsExpired(u.now()) {
		u.logger.InfoContext(ctx, "rejected expired session",
			slog.String("session_id", session.ID.String()),
		)
		return nil, domain.ErrSessionExpired
	}

	return session, nil
}
