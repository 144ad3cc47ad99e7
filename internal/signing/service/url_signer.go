// Package service implements HMAC-based signing and verification of
// short-lived content access URLs. The signature binds a resource tuple to an
// expiry timestamp so redirect endpoints can verify access as pure
// computation, without any persisted token state.
package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	signingDomain "github.com/bitmarket/contentgate/internal/signing/domain"
)

// URLSigner signs and verifies content access tuples.
//
// Document and video tuples keep deliberately distinct, unparameterized
// shapes: the two redirect endpoints must independently reconstruct exactly
// the same byte string, and a unifying refactor risks breaking that symmetry
// silently. The wire contract is HMAC-SHA256 over "<id>:<name>:<expires>",
// lowercase hex, 64 characters; already-issued links must keep verifying
// until they expire naturally.
type URLSigner interface {
	SignDocument(fileID, fileName string, expiresAt int64) string
	VerifyDocument(fileID, fileName string, expiresAt int64, signature string) error
	SignVideo(videoID, title string, expiresAt int64) string
	VerifyVideo(videoID, title string, expiresAt int64, signature string) error
}

// urlSigner implements URLSigner with a configured secret.
type urlSigner struct {
	secret []byte
	now    func() time.Time
}

// NewURLSigner creates a URLSigner. Fails fast when the secret is below the
// minimum length floor; this is the HMAC key, not a password, but a short
// key invites trivial brute force.
func NewURLSigner(secret string) (URLSigner, error) {
	if len(secret) < signingDomain.MinSecretLength {
		return nil, signingDomain.ErrWeakSecret
	}
	return &urlSigner{
		secret: []byte(secret),
		now:    time.Now,
	}, nil
}

// SignDocument computes the signature for a (fileId, fileName, expiresAt) tuple.
func (s *urlSigner) SignDocument(fileID, fileName string, expiresAt int64) string {
	return s.digest(fileID, fileName, expiresAt)
}

// VerifyDocument checks expiry and signature for a document tuple.
// Expiry is checked first: an expired link fails with ErrLinkExpired before
// any HMAC work happens.
func (s *urlSigner) VerifyDocument(fileID, fileName string, expiresAt int64, signature string) error {
	if s.now().Unix() > expiresAt {
		return signingDomain.ErrLinkExpired
	}

	expected := s.digest(fileID, fileName, expiresAt)
	// Constant-time comparison. String equality short-circuits on the first
	// differing byte and leaks timing information about the digest.
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return signingDomain.ErrSignatureInvalid
	}

	return nil
}

// SignVideo computes the signature for a (videoId, title, expiresAt) tuple.
func (s *urlSigner) SignVideo(videoID, title string, expiresAt int64) string {
	return s.digest(videoID, title, expiresAt)
}

// VerifyVideo checks expiry and signature for a video tuple.
func (s *urlSigner) VerifyVideo(videoID, title string, expiresAt int64, signature string) error {
	if s.now().Unix() > expiresAt {
		return signingDomain.ErrLinkExpired
	}

	expected := s.digest(videoID, title, expiresAt)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return signingDomain.ErrSignatureInvalid
	}

	return nil
}

// digest computes HMAC-SHA256 over "<id>:<name>:<expires>" encoded as
// lowercase hex. This byte layout is the cross-version compatibility
// contract for issued links.
func (s *urlSigner) digest(id, name string, expiresAt int64) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%s:%s:%d", id, name, expiresAt)
	return hex.EncodeToString(mac.Sum(nil))
}
