// Package usecase implements the license gate: the entitlement decision for
// a (user, product) pair based on the raw license set.
package usecase

import (
	"context"

	"github.com/google/uuid"

	licenseDomain "github.com/bitmarket/contentgate/internal/license/domain"
)

// LicenseRepository defines the read-only interface for license lookups.
type LicenseRepository interface {
	ListByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) ([]*licenseDomain.License, error)
}

// LicenseUseCase decides whether a user currently holds entitlement to a
// product's content.
type LicenseUseCase interface {
	HasAccess(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}
