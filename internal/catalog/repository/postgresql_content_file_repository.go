// Package repository provides read-only data access for catalog content
// files. Content files are written by the catalog management collaborator;
// this service only resolves them for access requests.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/bitmarket/contentgate/internal/catalog/domain"
	apperrors "github.com/bitmarket/contentgate/internal/errors"
)

// PostgreSQLContentFileRepository handles content file lookups for PostgreSQL.
type PostgreSQLContentFileRepository struct {
	db *sql.DB
}

// NewPostgreSQLContentFileRepository creates a new PostgreSQLContentFileRepository.
func NewPostgreSQLContentFileRepository(db *sql.DB) *PostgreSQLContentFileRepository {
	return &PostgreSQLContentFileRepository{
		db: db,
	}
}

// GetByID retrieves a content file by its identifier.
func (r *PostgreSQLContentFileRepository) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.ContentFile, error) {
	var file domain.ContentFile

	query := `SELECT id, product_id, name, content_type, external_link, requires_license,
			  size_bytes, created_at, updated_at
			  FROM content_files WHERE id = $1`

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
