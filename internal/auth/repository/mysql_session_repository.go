package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/bitmarket/contentgate/internal/auth/domain"
	apperrors "github.com/bitmarket/contentgate/internal/errors"
)

// MySQLSessionRepository handles session lookups for MySQL.
type MySQLSessionRepository struct {
	db *sql.DB
}

// NewMySQLSessionRepository creates a new MySQLSessionRepository.
func NewMySQLSessionRepository(db *sql.DB) *MySQLSessionRepository {
	return &MySQLSessionRepository{
		db: db,
	}
}

// GetByTokenHash retrieves a session by the hash of its bearer token.
func (r *MySQLSessionRepository) GetByTokenHash(
	ctx context.Context,
	tokenHash string,
) (*domain.Session, error) {
	var session domain.Session

	query := `SELECT id, user_id, token_hash, expires_at, created_at
			  FROM sessions WHERE token_hash = ?`

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
