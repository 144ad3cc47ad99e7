// Package domain defines the session models used to authenticate storefront
// requests. Sessions are issued by the storefront's authentication
// collaborator at login; this service only validates the bearer token
// against them.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/bitmarket/contentgate/internal/errors"
)

// Session represents an authenticated storefront session.
type Session struct {
	// ID is the unique identifier of the session.
	ID uuid.UUID
	// UserID is the authenticated user.
	UserID uuid.UUID
	// TokenHash is the SHA-256 hash of the bearer token. The plain token is
	// never stored.
	TokenHash string
	// ExpiresAt is when the session lapses.
	ExpiresAt time.Time
	// CreatedAt is the UTC timestamp when the session was issued.
	CreatedAt time.Time
}

// IsExpired reports whether the session has lapsed at the given time.
func (s *Session) IsExpired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// Session errors.
var (
	// ErrSessionNotFound indicates no session matches the presented token.
	ErrSessionNotFound = errors.Wrap(errors.ErrNotFound, "session not found")

	// ErrSessionExpired indicates the session exists but has lapsed.
	ErrSessionExpired = errors.Wrap(errors.ErrUnauthorized, "session expired")
)
