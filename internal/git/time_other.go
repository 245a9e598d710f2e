//go:build !darwin && !windows

package git

import (
	"os"
	"time"
)

// Linux and the BSDs expose no portable birth time through os.Stat.
// The .git file of a worktree is written once at creation, so its
// modification time stands in.
func getCreatedTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}
