// Package domain defines the access grant model: the result of a successful
// mint request, carrying the signed short-lived URLs a buyer uses to reach
// purchased content.
package domain

import (
	"time"

	"github.com/bitmarket/contentgate/internal/errors"
)

// Grant content types as exposed to clients.
const (
	GrantTypeDocument = "document"
	GrantTypeVideo    = "video"
)

// Grant is a signed, short-lived access decision for one content file.
type Grant struct {
	// ContentType is "document" or "video".
	ContentType string
	// AccessURL is the signed URL on this service that verifies and redirects
	// to the external provider.
	AccessURL string
	// EmbedURL is the provider embed URL. Only set for videos.
	EmbedURL string
	// FileName is the sanitized download file name. Only set for documents.
	FileName string
	// Title is the content title. Only set for videos.
	Title string
	// VideoID is the canonical provider video id. Only set for videos.
	VideoID string
	// ExpiresAt is when the signed URL stops verifying.
	ExpiresAt time.Time
}

// Access errors.
var (
	// ErrDocumentNotConfigured indicates the catalog entry has no usable
	// document link yet. This is a catalog state, not a client failure.
	ErrDocumentNotConfigured = errors.New("document not configured")

	// ErrVideoNotConfigured indicates the catalog entry has no usable video
	// link yet.
	ErrVideoNotConfigured = errors.New("video not configured")

	// ErrLicenseRequired indicates the user holds no valid license for the
	// product owning the requested file.
	ErrLicenseRequired = errors.Wrap(errors.ErrForbidden, "valid license required")

	// ErrDownloadLimitExceeded indicates the user hit the per-window mint
	// quota.
	ErrDownloadLimitExceeded = errors.Wrap(errors.ErrRateLimited, "download limit exceeded")
)
