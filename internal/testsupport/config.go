// Package testsupport provides shared helpers for tests: temp-dir configs
// and pre-opened stores.
package testsupport

import (
	"path/filepath"
	"testing"

	"shelf/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}
	return &cfg
}

// WithOMDBKey sets the OMDb API key on the test config.
func WithOMDBKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.OMDB.APIKey = key
	}
}

// WithUPCKey sets the product-lookup API key on the test config.
func WithUPCKey(key string) ConfigOption {
	return func(cfg *config.Config) {
		cfg.UPC.APIKey = key
	}
}
