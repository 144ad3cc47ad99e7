package config

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/bitmarket/contentgate/internal/errors"
)

func validConfig() *Config {
	return &Config{
		SigningSecret:       "0123456789abcdef0123456789abcdef",
		MaxFileSizeBytes:    100 * 1024 * 1024,
		AllowedContentTypes: "pdf,docx,video,file",
		MaxDownloadsPerHour: 50,
		PublicBaseURL:       "https://store.example.com",
		MetricsNamespace:    "contentgate",
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, validConfig().Validate())
	})

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing signing secret", func(c *Config) { c.SigningSecret = "" }},
		{"short signing secret", func(c *Config) { c.SigningSecret = "too-short" }},
		{"padded signing secret", func(c *Config) { c.SigningSecret = " 0123456789abcdef0123456789abcdef " }},
		{"zero max file size", func(c *Config) { c.MaxFileSizeBytes = 0 }},
		{"no allowed content types", func(c *Config) { c.AllowedContentTypes = "" }},
		{"zero download ceiling", func(c *Config) { c.MaxDownloadsPerHour = 0 }},
		{"missing public base url", func(c *Config) { c.PublicBaseURL = "" }},
		{"padded metrics namespace", func(c *Config) { c.MetricsNamespace = " contentgate" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			assert.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		})
	}
}

func TestConfig_ContentTypeList(t *testing.T) {
	cfg := &Config{AllowedContentTypes: " pdf, docx ,,video "}
	assert.Equal(t, []string{"pdf", "docx", "video"}, cfg.ContentTypeList())
}

func TestConfig_GetGinMode(t *testing.T) {
	assert.Equal(t, "debug", (&Config{LogLevel: "debug"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: "info"}).GetGinMode())
	assert.Equal(t, "release", (&Config{LogLevel: ""}).GetGinMode())
}
