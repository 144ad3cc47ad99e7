// Package repository provides read-only data access for sessions. Sessions
// are written by the storefront's authentication collaborator; this service
// only resolves them during bearer token validation.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bitmarket/contentgate/internal/auth/domain"
	apperrors "github.com/bitmarket/contentgate/internal/errors"
)

// PostgreSQLSessionRepository handles session lookups for PostgreSQL.
type PostgreSQLSessionRepository struct {
	db *sql.DB
}

// NewPostgreSQLSessionRepository creates a new PostgreSQLSessionRepository.
func NewPostgreSQLSessionRepository(db *sql.DB) *PostgreSQLSessionRepository {
	return &PostgreSQLSessionRepository{
		db: db,
	}
}

// GetByTokenHash retrieves a session by the hash of its bearer token.
func (r *PostgreSQLSessionRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*domain.Session, error) {
	var session domain.Session

	query := `SELECT id, user_id, token_hash, expires_at, created_at
			  FROM sessions WHERE token_hash = $1`

	err := r.db.QueryRowContext(ctx, query, tokenHash).Scan(
		&session.ID,
		&session.UserID,
		&session.TokenHash,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get session by token hash")
	}

	return &session, nil
}
