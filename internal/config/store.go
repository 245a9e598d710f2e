package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/treehouse/internal/git"
	"github.com/raphi011/treehouse/internal/log"
	"github.com/raphi011/treehouse/internal/storage"
)

// ErrNotInRepo is returned when the working directory is not inside a git repository.
var ErrNotInRepo = errors.New("not in a git repository")

// Store loads and saves the per-repository config record.
type Store interface {
	// Load returns the config and the repository root it belongs to.
	Load(ctx context.Context) (Config, string, error)
	// Save writes cfg as the whole record for root.
	Save(ctx context.Context, root string, cfg Config) error
}

// FileStore keeps the record in FileName at the repository root.
type FileStore struct {
	// Dir is any directory inside the repository.
	Dir string
	// Global supplies defaults for a repository without a config file.
	Global Global
}

// Load resolves the repository root from Dir and reads its config.
// A missing file yields the global defaults. Load never writes.
func (s *FileStore) Load(ctx context.Context) (Config, string, error) {
	root, err := git.RepoRoot(ctx, s.Dir)
	if err != nil {
		return Config{}, "", fmt.Errorf("%w: %s", ErrNotInRepo, s.Dir)
	}
	cfg, err := ReadFile(filepath.Join(root, FileName), s.Global)
	if err != nil {
		return Config{}, "", err
	}
	return cfg, root, nil
}

// Save validates cfg and writes it atomically to root. A newly created file
// is added to the repository's info/exclude so it never shows as untracked;
// a file that already exists is left as the user keeps it.
func (s *FileStore) Save(ctx context.Context, root string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	cfg.Version = CurrentVersion
	if cfg.CopyFiles == nil {
		cfg.CopyFiles = []string{}
	}

	path := filepath.Join(root, FileName)
	_, statErr := os.Stat(path)
	if err := storage.SaveJSON(path, cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	if errors.Is(statErr, os.ErrNotExist) {
		if err := git.ExcludeLocal(ctx, root, "/"+FileName); err != nil {
			log.FromContext(ctx).Debug("exclude config file", "path", path, "error", err)
		}
	}
	return nil
}

// ReadFile reads a config file, returning global defaults if it does not exist.
func ReadFile(path string, global Global) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return global.Defaults(), nil
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data, global)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a config document of any supported version.
// Fields the document omits take their value from global.
func Parse(data []byte, global Global) (Config, error) {
	migrated, err := Migrate(data)
	if err != nil {
		return Config{}, err
	}

	cfg := global.Defaults()
	if err := json.Unmarshal(migrated, &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if cfg.CopyFiles == nil {
		cfg.CopyFiles = []string{}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

type storeKey struct{}

// WithStore returns a new context carrying s.
func WithStore(ctx context.Context, s Store) context.Context {
	return context.WithValue(ctx, storeKey{}, s)
}

// StoreFromContext returns the Store from ctx, or nil if none is stored.
func StoreFromContext(ctx context.Context) Store {
	if s, ok := ctx.Value(storeKey{}).(Store); ok {
		return s
	}
	return nil
}
