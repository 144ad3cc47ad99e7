package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/bitmarket/contentgate/internal/errors"
)

// licenseUseCase implements LicenseUseCase over a license repository.
type licenseUseCase struct {
	licenseRepo LicenseRepository
	now         func() time.Time
}

// NewLicenseUseCase creates the license gate.
func NewLicenseUseCase(licenseRepo LicenseRepository) (LicenseUseCase, error) {
	if licenseRepo == nil {
		return nil, apperrors.Wrap(apperrors.ErrConfiguration, "license repository is required")
	}
	return &licenseUseCase{
		licenseRepo: licenseRepo,
		now:         time.Now,
	}, nil
}

// HasAccess reports whether the user holds at least one license that grants
// access to the product right now. The first granting license short-circuits
// the scan. A repository miss is simply "no access", not an error.
func (u *licenseUseCase) HasAccess(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	licenses, err := u.licenseRepo.ListByUserAndProduct(ctx, userID, productID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return false, nil
		}
		return false, apperrors.Wrap(err, "failed to list licenses")
	}

	now := u.now().UTC()
	for _, license := range licenses {
		if license.Grants(now) {
			return true, nil
		}
	}

	return false, nil
}
