// Package domain defines errors and constants for signed access URL handling.
package domain

import (
	"github.com/bitmarket/contentgate/internal/errors"
)

// Signed URL verification errors.
var (
	// ErrLinkExpired indicates the signed URL is past its expiry timestamp.
	// Checked before the signature so expired links fail without touching
	// the HMAC computation.
	ErrLinkExpired = errors.Wrap(errors.ErrGone, "link expired")

	// ErrSignatureInvalid indicates the signature does not match the
	// recomputed digest for the presented tuple.
	ErrSignatureInvalid = errors.Wrap(errors.ErrForbidden, "invalid signature")

	// ErrWeakSecret indicates the configured signing secret is below the
	// minimum length floor.
	ErrWeakSecret = errors.Wrap(errors.ErrConfiguration, "signing secret must be at least 32 characters")
)

// MinSecretLength is the minimum-entropy floor for the HMAC signing key.
const MinSecretLength = 32
