package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"shelf/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("OMDB_API_KEY", "")
	t.Setenv("UPC_API_KEY", "")

	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if exists {
		t.Fatal("expected exists=false for missing file")
	}
	if cfg.OMDB.BaseURL != "https://www.omdbapi.com/" {
		t.Fatalf("unexpected omdb base url: %q", cfg.OMDB.BaseURL)
	}
	if len(cfg.UPC.Endpoints) == 0 {
		t.Fatal("expected default endpoint candidates")
	}
	if cfg.Posters.TargetWidth != 300 || cfg.Posters.JPEGQuality != 70 {
		t.Fatalf("unexpected poster defaults: %#v", cfg.Posters)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %#v", cfg.Logging)
	}
}

func TestLoadParsesAndExpandsPaths(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"

[omdb]
api_key = "abc123"

[posters]
target_width = 240
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolvedPath, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !exists || resolvedPath != path {
		t.Fatalf("expected resolved path %q, got %q (exists=%v)", path, resolvedPath, exists)
	}
	if cfg.Paths.DataDir != filepath.Join(dir, "data") {
		t.Fatalf("unexpected data dir: %q", cfg.Paths.DataDir)
	}
	if cfg.OMDB.APIKey != "abc123" {
		t.Fatalf("unexpected api key: %q", cfg.OMDB.APIKey)
	}
	if cfg.Posters.TargetWidth != 240 {
		t.Fatalf("expected override honored, got %d", cfg.Posters.TargetWidth)
	}
	if cfg.Posters.JPEGQuality != 70 {
		t.Fatalf("expected unset field defaulted, got %d", cfg.Posters.JPEGQuality)
	}
}

func TestLoadTakesAPIKeysFromEnvironment(t *testing.T) {
	t.Setenv("OMDB_API_KEY", "from-env")
	t.Setenv("UPC_API_KEY", "  upc-env  ")

	cfg, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.OMDB.APIKey != "from-env" {
		t.Fatalf("expected env fallback, got %q", cfg.OMDB.APIKey)
	}
	if cfg.UPC.APIKey != "upc-env" {
		t.Fatalf("expected trimmed env fallback, got %q", cfg.UPC.APIKey)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{
			name:    "bad jpeg quality",
			content: "[posters]\njpeg_quality = 150\n",
		},
		{
			name:    "bad log format",
			content: "[logging]\nformat = \"xml\"\n",
		},
		{
			name:    "endpoint without slash",
			content: "[upc]\nendpoints = [\"lookup\"]\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			if _, _, _, err := config.Load(path); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestCreateSampleParsesBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}
	if _, _, exists, err := config.Load(path); err != nil || !exists {
		t.Fatalf("expected sample config to load, got exists=%v err=%v", exists, err)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	expanded, err := config.ExpandPath("~/shelf-test")
	if err != nil {
		t.Fatalf("ExpandPath failed: %v", err)
	}
	if expanded != filepath.Join(home, "shelf-test") {
		t.Fatalf("unexpected expansion: %q", expanded)
	}
}
