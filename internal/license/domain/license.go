// Package domain defines the license models consumed by the content delivery
// core. Licenses are created by the order-fulfillment collaborator at
// purchase time and mutated by renewal and cancellation flows outside this
// service; it only reads them.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/bitmarket/contentgate/internal/errors"
)

// Status is the lifecycle state of a license.
type Status string

// License statuses.
const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusSuspended Status = "suspended"
	StatusCancelled Status = "cancelled"
)

// License grants a specific user access to a specific product's content,
// optionally time-bounded.
type License struct {
	// ID is the unique identifier of the license.
	ID uuid.UUID
	// UserID is the owning user.
	UserID uuid.UUID
	// ProductID is the product this license grants access to. A license is
	// scoped to exactly one product.
	ProductID uuid.UUID
	// Status is the lifecycle state set by fulfillment and renewal flows.
	Status Status
	// ExpiresAt is when the license lapses. Nil means lifetime access.
	ExpiresAt *time.Time
	// CreatedAt is the UTC timestamp when the license was issued.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last status change.
	UpdatedAt time.Time
}

// Grants reports whether this license grants access at the given time.
// Expiry always wins over status: an active license with a past ExpiresAt
// does not grant access. A license with no ExpiresAt is lifetime access
// regardless of age.
func (l *License) Grants(now time.Time) bool {
	if l.Status != StatusActive {
		return false
	}
	if l.ExpiresAt != nil && !l.ExpiresAt.After(now) {
		return false
	}
	return true
}

// ErrLicenseNotFound indicates no license exists for the requested lookup.
var ErrLicenseNotFound = errors.Wrap(errors.ErrNotFound, "license not found")
