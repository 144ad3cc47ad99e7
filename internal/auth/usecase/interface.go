// Package usecase implements session validation for incoming requests.
package usecase

import (
	"context"

	"github.com/bitmarket/contentgate/internal/auth/domain"
)

// SessionRepository defines data access for sessions.
type SessionRepository interface {
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error)
}

// TokenService hashes bearer tokens for session lookup.
type TokenService interface {
	HashToken(plainToken string) string
}

// AuthUseCase validates bearer tokens against stored sessions.
type AuthUseCase interface {
	Authenticate(ctx context.Context, plainToken string) (*domain.Session, error)
}
