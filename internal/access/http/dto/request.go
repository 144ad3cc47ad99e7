// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	customValidation "github.com/bitmarket/contentgate/internal/validation"
)

// GrantAccessRequest contains the parameters for minting a content access grant.
type GrantAccessRequest struct {
	ProductFileID string `json:"productFileId"`
}

// Validate checks if the grant access request is valid.
func (r *GrantAccessRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ProductFileID,
			validation.Required,
			customValidation.NotBlank,
		),
	)
}
