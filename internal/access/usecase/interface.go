// Package usecase implements the access orchestrator: the single decision
// pipeline that turns an authenticated mint request into a signed access
// grant or a precise denial.
package usecase

import (
	"context"

	"github.com/google/uuid"

	accessDomain "github.com/bitmarket/contentgate/internal/access/domain"
	catalogDomain "github.com/bitmarket/contentgate/internal/catalog/domain"
	"github.com/bitmarket/contentgate/internal/ratelimit"
)

// ContentFileRepository defines the read-only interface for catalog lookups.
type ContentFileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*catalogDomain.ContentFile, error)
}

// LicenseChecker decides whether a user holds entitlement to a product.
type LicenseChecker interface {
	HasAccess(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

// DownloadLimiter enforces the per-user mint quota.
type DownloadLimiter interface {
	CheckAndConsume(subject string) ratelimit.Decision
}

// AccessUseCase orchestrates content access grants.
type AccessUseCase interface {
	Grant(ctx context.Context, userID uuid.UUID, productFileID string) (*accessDomain.Grant, error)
}
