package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// FileName is the per-repository config file, stored at the repository root.
const FileName = ".treehouse.json"

// CurrentVersion is the schema version written by Save.
const CurrentVersion = 2

// Defaults applied when neither the repository nor the global config sets a value.
const (
	DefaultBranch         = "main"
	DefaultCleanThreshold = 7
	DefaultWorktreeFormat = "../{repo}-{branch}"
)

// Hooks lists shell commands run around worktree lifecycle events.
type Hooks struct {
	PostCreate []string `json:"postCreate,omitempty"`
	PreRemove  []string `json:"preRemove,omitempty"`
	PostRemove []string `json:"postRemove,omitempty"`
}

// Config is the per-repository configuration record.
type Config struct {
	Version        int      `json:"version"`
	DefaultBranch  string   `json:"defaultBranch"`
	WorktreeFormat string   `json:"worktreeFormat,omitempty"`
	CopyFiles      []string `json:"copyFiles"`
	Hooks          Hooks    `json:"hooks"`
	AutoClean      bool     `json:"autoClean"`
	CleanThreshold int      `json:"cleanThreshold"`
	// LastAutoCleanTime is Unix epoch milliseconds; nil means never run.
	LastAutoCleanTime *int64 `json:"lastAutoCleanTime,omitempty"`
}

// Default returns the built-in defaults.
func Default() Config {
	return Config{
		Version:        CurrentVersion,
		DefaultBranch:  DefaultBranch,
		WorktreeFormat: DefaultWorktreeFormat,
		CopyFiles:      []string{},
		CleanThreshold: DefaultCleanThreshold,
	}
}

// LastAutoClean returns the time of the last auto-clean run.
func (c *Config) LastAutoClean() (time.Time, bool) {
	if c.LastAutoCleanTime == nil {
		return time.Time{}, false
	}
	return time.UnixMilli(*c.LastAutoCleanTime), true
}

// SetLastAutoClean records t as the last auto-clean run.
func (c *Config) SetLastAutoClean(t time.Time) {
	ms := t.UnixMilli()
	c.LastAutoCleanTime = &ms
}

// Format returns the worktree path template, falling back to the default.
func (c *Config) Format() string {
	if c.WorktreeFormat == "" {
		return DefaultWorktreeFormat
	}
	return c.WorktreeFormat
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	var errs []error
	if c.CleanThreshold < 0 {
		errs = append(errs, fmt.Errorf("cleanThreshold must be >= 0, got %d", c.CleanThreshold))
	}
	if strings.TrimSpace(c.DefaultBranch) == "" {
		errs = append(errs, errors.New("defaultBranch must not be empty"))
	}
	if err := ValidateFormat(c.Format()); err != nil {
		errs = append(errs, err)
	}
	for i, pat := range c.CopyFiles {
		if err := validateCopyPattern(pat); err != nil {
			errs = append(errs, fmt.Errorf("copyFiles[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// ValidateFormat checks that a worktree path template names the branch.
func ValidateFormat(format string) error {
	if !strings.Contains(format, "{branch}") {
		return fmt.Errorf("worktreeFormat %q must contain {branch}", format)
	}
	return nil
}

func validateCopyPattern(pat string) error {
	if pat == "" {
		return errors.New("empty pattern")
	}
	if filepath.IsAbs(pat) {
		return fmt.Errorf("pattern %q must be relative to the worktree", pat)
	}
	for seg := range strings.SplitSeq(filepath.ToSlash(pat), "/") {
		if seg == ".." {
			return fmt.Errorf("pattern %q must not leave the worktree", pat)
		}
	}
	if _, err := filepath.Match(pat, ""); err != nil {
		return fmt.Errorf("pattern %q: %w", pat, err)
	}
	return nil
}
