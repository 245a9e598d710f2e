package git

import (
	"fmt"
	"path/filepath"
	"time"
)

// CreatedTime returns when the worktree at path was created, taken from its
// .git file (falling back to the directory). Platforms without a birth time
// report the modification time.
func CreatedTime(path string) (time.Time, error) {
	if t, err := getCreatedTime(filepath.Join(path, ".git")); err == nil {
		return t, nil
	}
	t, err := getCreatedTime(path)
	if err != nil {
		return time.Time{}, fmt.Errorf("creation time of %s: %w", path, err)
	}
	return t, nil
}

// AgeDays returns the whole days between created and now, never negative.
func AgeDays(created, now time.Time) int {
	d := now.Sub(created)
	if d < 0 {
		return 0
	}
	return int(d / (24 * time.Hour))
}

// WorktreeAgeDays returns the worktree's age in whole days relative to now.
func WorktreeAgeDays(path string, now time.Time) (int, error) {
	created, err := CreatedTime(path)
	if err != nil {
		return 0, err
	}
	return AgeDays(created, now), nil
}
