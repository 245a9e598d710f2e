package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// EnvGlobalConfig overrides the location of the global config file.
const EnvGlobalConfig = "TREEHOUSE_CONFIG"

// Global holds user-wide defaults from config.toml.
type Global struct {
	WorktreeFormat string   `toml:"worktree_format"`
	DefaultBranch  string   `toml:"default_branch"`
	CleanThreshold *int     `toml:"clean_threshold"`
	AutoClean      bool     `toml:"auto_clean"`
	CopyFiles      []string `toml:"copy_files"`
}

// DefaultGlobal returns the global config used when no file exists.
func DefaultGlobal() Global {
	threshold := DefaultCleanThreshold
	return Global{
		WorktreeFormat: DefaultWorktreeFormat,
		DefaultBranch:  DefaultBranch,
		CleanThreshold: &threshold,
	}
}

// Defaults returns the per-repository config a repository starts with.
func (g Global) Defaults() Config {
	cfg := Default()
	if g.WorktreeFormat != "" {
		cfg.WorktreeFormat = g.WorktreeFormat
	}
	if g.DefaultBranch != "" {
		cfg.DefaultBranch = g.DefaultBranch
	}
	if g.CleanThreshold != nil {
		cfg.CleanThreshold = *g.CleanThreshold
	}
	cfg.AutoClean = g.AutoClean
	if len(g.CopyFiles) > 0 {
		cfg.CopyFiles = append([]string{}, g.CopyFiles...)
	}
	return cfg
}

// GlobalPath returns the path of the global config file.
func GlobalPath() (string, error) {
	if p := os.Getenv(EnvGlobalConfig); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "treehouse", "config.toml"), nil
}

// LoadGlobal reads the global config file.
// Returns DefaultGlobal() if the file doesn't exist (no error).
func LoadGlobal() (Global, error) {
	path, err := GlobalPath()
	if err != nil {
		return DefaultGlobal(), nil
	}
	return LoadGlobalFrom(path)
}

// LoadGlobalFrom reads a global config file at path.
func LoadGlobalFrom(path string) (Global, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultGlobal(), nil
		}
		return DefaultGlobal(), fmt.Errorf("failed to read config file: %w", err)
	}

	g := DefaultGlobal()
	md, err := toml.Decode(string(data), &g)
	if err != nil {
		return DefaultGlobal(), fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return DefaultGlobal(), fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}

	if g.WorktreeFormat != "" {
		if err := ValidateFormat(g.WorktreeFormat); err != nil {
			return DefaultGlobal(), err
		}
	}
	if g.CleanThreshold != nil && *g.CleanThreshold < 0 {
		return DefaultGlobal(), fmt.Errorf("invalid clean_threshold %d: must be >= 0", *g.CleanThreshold)
	}
	for i, pat := range g.CopyFiles {
		if err := validateCopyPattern(pat); err != nil {
			return DefaultGlobal(), fmt.Errorf("copy_files[%d]: %w", i, err)
		}
	}
	return g, nil
}

const defaultGlobalConfig = `# treehouse global configuration
# Values here are the starting point for repositories without a .treehouse.json.

# Where new worktrees are created. Placeholders: {repo}, {branch}
#   "../{repo}-{branch}"          sibling of the repository (default)
#   "~/worktrees/{repo}/{branch}" under your home directory
#   ".worktrees/{branch}"         inside the repository
# worktree_format = "../{repo}-{branch}"

# Branch that is never auto-cleaned and that new branches start from.
# default_branch = "main"

# Remove worktrees that have not been touched for this many days
# when they have no uncommitted or unpushed work.
# clean_threshold = 7

# Offer to clean stale worktrees automatically, at most once a day.
# auto_clean = false

# Untracked files copied into every new worktree (glob patterns).
# copy_files = [".env", ".env.local"]
`

// InitGlobal creates a commented global config file.
// If force is true, overwrites an existing file.
// Returns the path to the created file.
func InitGlobal(force bool) (string, error) {
	path, err := GlobalPath()
	if err != nil {
		return "", err
	}

	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", errors.New("config file already exists: " + path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", err
	}
	if err := os.WriteFile(path, []byte(defaultGlobalConfig), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
