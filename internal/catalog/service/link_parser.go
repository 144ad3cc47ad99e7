// Package service provides parsing of user-supplied share links into
// canonical external identifiers. Catalog editors paste Drive and YouTube
// links in whatever format their browser gave them; the parsers normalize
// them so signing and redirecting always work from the bare identifier.
package service

import (
	"regexp"
	"strings"

	catalogDomain "github.com/bitmarket/contentgate/internal/catalog/domain"
)

var (
	// drivePathPattern matches the /file/d/<id> form of a Drive share link.
	drivePathPattern = regexp.MustCompile(`/file/d/([a-zA-Z0-9_-]{20,})`)
	// driveQueryPattern matches the open?id=<id> form.
	driveQueryPattern = regexp.MustCompile(`[?&]id=([a-zA-Z0-9_-]{20,})`)
	// driveBareIDPattern matches a bare Drive file identifier.
	driveBareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{20,}$`)

	// youtubePathPatterns match the watch?v=, youtu.be/ and embed/ link forms.
	youtubePathPatterns = []*regexp.Regexp{
		regexp.MustCompile(`[?&]v=([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`youtu\.be/([a-zA-Z0-9_-]{11})`),
		regexp.MustCompile(`/embed/([a-zA-Z0-9_-]{11})`),
	}
	// youtubeBareIDPattern matches a bare 11-character video identifier.
	youtubeBareIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// ParseDriveLink extracts the canonical Google Drive file id from a share
// link. Patterns are tried in order: path-embedded id, query-parameter id,
// bare identifier. The first match wins.
func ParseDriveLink(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", catalogDomain.ErrInvalidLinkFormat
	}

	if m := drivePathPattern.FindStringSubmatch(trimmed); m != nil {
		return m[1], nil
	}
	if m := driveQueryPattern.FindStringSubmatch(trimmed); m != nil {
		return m[1], nil
	}
	if driveBareIDPattern.MatchString(trimmed) {
		return trimmed, nil
	}

	return "", catalogDomain.ErrInvalidLinkFormat
}

// ParseYouTubeLink extracts the canonical YouTube video id from a share
// link. Patterns are tried in order: watch?v=, youtu.be/, embed/, bare
// identifier. The first match wins.
func ParseYouTubeLink(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", catalogDomain.ErrInvalidLinkFormat
	}

	for _, pattern := range youtubePathPatterns {
		if m := pattern.FindStringSubmatch(trimmed); m != nil {
			return m[1], nil
		}
	}
	if youtubeBareIDPattern.MatchString(trimmed) {
		return trimmed, nil
	}

	return "", catalogDomain.ErrInvalidLinkFormat
}
