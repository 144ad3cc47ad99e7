// Package domain defines the catalog models consumed by the content delivery
// core. Content files are created and maintained by the catalog management
// collaborator; this service only reads them.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContentType is the closed set of servable content type tags.
type ContentType string

// Supported content types.
const (
	ContentTypePDF   ContentType = "pdf"
	ContentTypeDocx  ContentType = "docx"
	ContentTypeVideo ContentType = "video"
	ContentTypeFile  ContentType = "file"
)

// Family is the document/video split that determines which parser, expiry
// window, and redirect target apply.
type Family string

// Content families.
const (
	FamilyDocument Family = "document"
	FamilyVideo    Family = "video"
)

// Family maps a content type to its content family. The boolean is false for
// content types outside the closed set, which signals a catalog
// data-integrity problem rather than a client error.
func (c ContentType) Family() (Family, bool) {
	switch c {
	case ContentTypePDF, ContentTypeDocx, ContentTypeFile:
		return FamilyDocument, true
	case ContentTypeVideo:
		return FamilyVideo, true
	default:
		return "", false
	}
}

// ContentFile represents a purchasable file or video attached to a product.
type ContentFile struct {
	// ID is the unique identifier of the content file.
	ID uuid.UUID
	// ProductID references the owning product.
	ProductID uuid.UUID
	// Name is the display name shown to buyers (also the download file name).
	Name string
	// ContentType tags the file as pdf, docx, video or generic file.
	ContentType ContentType
	// ExternalLink is the Google Drive or YouTube share link, depending on
	// content type. Nil when the catalog entry has not been configured yet.
	ExternalLink *string
	// RequiresLicense indicates whether access is gated on a valid license.
	RequiresLicense bool
	// SizeBytes is the reported size of the file (zero for videos).
	SizeBytes int64
	// CreatedAt is the UTC timestamp when the record was created.
	CreatedAt time.Time
	// UpdatedAt is the UTC timestamp of the last catalog update.
	UpdatedAt time.Time
}
