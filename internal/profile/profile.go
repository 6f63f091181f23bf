package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"shelf/internal/config"
)

const stateFileName = "profile"

// Profile identifies one isolated library and its on-disk layout.
type Profile struct {
	ID      string
	baseDir string
}

// Resolve returns the active profile. An explicit id (from the --profile
// flag) wins; otherwise the remembered id from the state file is used,
// minting and persisting a fresh UUID on first run.
func Resolve(cfg *config.Config, explicitID string) (*Profile, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}

	id := strings.TrimSpace(explicitID)
	if id == "" {
		var err error
		id, err = rememberedID(cfg.Paths.DataDir)
		if err != nil {
			return nil, err
		}
	}
	if strings.ContainsAny(id, `/\`) {
		return nil, fmt.Errorf("profile id %q must not contain path separators", id)
	}

	return &Profile{
		ID:      id,
		baseDir: filepath.Join(cfg.Paths.DataDir, "users", id),
	}, nil
}

func rememberedID(dataDir string) (string, error) {
	statePath := filepath.Join(dataDir, stateFileName)

	data, err := os.ReadFile(statePath)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("read profile state: %w", err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", fmt.Errorf("create data directory: %w", err)
	}
	if err := os.WriteFile(statePath, []byte(id+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write profile state: %w", err)
	}
	return id, nil
}

// Dir returns the profile's base directory, creating it on demand.
func (p *Profile) Dir() (string, error) {
	if err := os.MkdirAll(p.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("create profile directory: %w", err)
	}
	return p.baseDir, nil
}

// DBPath returns the profile's database location, ensuring the directory
// exists.
func (p *Profile) DBPath() (string, error) {
	dir, err := p.Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "shelf.db"), nil
}

// PostersDir returns the profile's poster cache directory, creating it on
// demand.
func (p *Profile) PostersDir() (string, error) {
	dir, err := p.Dir()
	if err != nil {
		return "", err
	}
	postersDir := filepath.Join(dir, "posters")
	if err := os.MkdirAll(postersDir, 0o755); err != nil {
		return "", fmt.Errorf("create posters directory: %w", err)
	}
	return postersDir, nil
}

// Lock acquires an exclusive file lock on the profile directory. The caller
// must Unlock it; a held lock means another shelf process owns the profile.
func (p *Profile) Lock() (*flock.Flock, error) {
	dir, err := p.Dir()
	if err != nil {
		return nil, err
	}
	lock := flock.New(filepath.Join(dir, "shelf.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire profile lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("profile %s is in use by another shelf process", p.ID)
	}
	return lock, nil
}
