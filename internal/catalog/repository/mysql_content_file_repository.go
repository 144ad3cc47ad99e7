package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/bitmarket/contentgate/internal/catalog/domain"
	apperrors "github.com/bitmarket/contentgate/internal/errors"
)

// MySQLContentFileRepository handles content file lookups for MySQL.
type MySQLContentFileRepository struct {
	db *sql.DB
}

// NewMySQLContentFileRepository creates a new MySQLContentFileRepository.
func NewMySQLContentFileRepository(db *sql.DB) *MySQLContentFileRepository {
	return &MySQLContentFileRepository{
		db: db,
	}
}

// GetByID retrieves a content file by its identifier.
func (r *MySQLContentFileRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ContentFile, error) {
	var file domain.ContentFile

	query := `SELECT id, product_id, name, content_type, external_link, requires_license,
			  size_bytes, created_at, updated_at
			  FROM content_files WHERE id = ?`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&file.ID,
		&file.ProductID,
		&file.Name,
		&file.ContentType,
		&file.ExternalLink,
		&file.RequiresLicense,
		&file.SizeBytes,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrContentFileNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get content file by id")
	}

	return &file, nil
}
