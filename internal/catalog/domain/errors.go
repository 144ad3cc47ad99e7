package domain

import (
	"github.com/bitmarket/contentgate/internal/errors"
)

// Catalog errors.
var (
	// ErrContentFileNotFound indicates a content file with the specified ID was not found.
	ErrContentFileNotFound = errors.Wrap(errors.ErrNotFound, "content file not found")

	// ErrInvalidLinkFormat indicates an external share link matched none of
	// the known patterns for its content family.
	ErrInvalidLinkFormat = errors.Wrap(errors.ErrInvalidInput, "invalid link format")
)
