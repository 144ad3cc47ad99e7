package dto

import (
	"time"

	accessDomain "github.com/bitmarket/contentgate/internal/access/domain"
)

// GrantAccessResponse is the mint response consumed by the storefront
// frontend. Grant fields sit flat at the top level next to success; the
// frontend reads response.accessUrl directly, with no envelope in between.
// An unconfigured catalog entry is reported with success=false and an error
// string rather than an HTTP error status. The signed URLs point at this
// service's redirect endpoints, never at the external provider directly.
type GrantAccessResponse struct {
	Success     bool      `json:"success"`
	ContentType string    `json:"contentType,omitempty"`
	AccessURL   string    `json:"accessUrl,omitempty"`
	EmbedURL    string    `json:"embedUrl,omitempty"`
	FileName    string    `json:"fileName,omitempty"`
	Title       string    `json:"title,omitempty"`
	VideoID     string    `json:"videoId,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt,omitzero"`
	Error       string    `json:"error,omitempty"`
}

// MapGrantToResponse converts a domain grant to an API response.
func MapGrantToResponse(grant *accessDomain.Grant) GrantAccessResponse {
	return GrantAccessResponse{
		Success:     true,
		ContentType: grant.ContentType,
		AccessURL:   grant.AccessURL,
		EmbedURL:    grant.EmbedURL,
		FileName:    grant.FileName,
		Title:       grant.Title,
		VideoID:     grant.VideoID,
		ExpiresAt:   grant.ExpiresAt,
	}
}
