// Package service provides token handling for session authentication.
package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// TokenService hashes bearer tokens for session lookup.
type TokenService interface {
	HashToken(plainToken string) string
}

// tokenService implements TokenService using SHA-256 for token hashing.
type tokenService struct{}

// NewTokenService creates a new TokenService instance using SHA-256 for token hashing.
func NewTokenService() TokenService {
	return &tokenService{}
}

// HashToken hashes a plain text token using SHA-256.
// Returns the hash as a hexadecimal string.
func (t *tokenService) HashToken(plainToken string) string {
	hash := sha256.Sum256([]byte(plainToken))
	return hex.EncodeToString(hash[:])
}
