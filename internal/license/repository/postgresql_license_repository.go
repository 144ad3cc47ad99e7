// Package repository provides read-only data access for license records.
// Licenses are written by the order-fulfillment pipeline; this service only
// queries them to answer entitlement checks.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	apperrors "github.com/bitmarket/contentgate/internal/errors"
	"github.com/bitmarket/contentgate/internal/license/domain"
)

// PostgreSQLLicenseRepository handles license lookups for PostgreSQL.
type PostgreSQLLicenseRepository struct {
	db *sql.DB
}

// NewPostgreSQLLicenseRepository creates a new PostgreSQLLicenseRepository.
func NewPostgreSQLLicenseRepository(db *sql.DB) *PostgreSQLLicenseRepository {
	return &PostgreSQLLicenseRepository{
		db: db,
	}
}

// ListByUserAndProduct retrieves all licenses a user holds for a product,
// regardless of status; the license gate applies validity rules.
func (r *PostgreSQLLicenseRepository) ListByUserAndProduct(
	ctx context.Context,
	userID, productID uuid.UUID,
) ([]*domain.License, error) {
	query := `SELECT id, user_id, product_id, status, expires_at, created_at, updated_at
			  FROM licenses WHERE user_id = $1 AND product_id = $2`

	rows, err := r.db.QueryContext(ctx, query, userID, productID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list licenses")
	}
	defer func() { _ = rows.Close() }()

	var licenses []*domain.License
	for rows.Next() {
		var license domain.License
		if err := rows.Scan(
			&license.ID,
			&license.UserID,
			&license.ProductID,
			&license.Status,
			&license.ExpiresAt,
			&license.CreatedAt,
			&license.UpdatedAt,
		); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan license")
		}
		licenses = append(licenses, &license)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to iterate licenses")
	}

	return licenses, nil
}
