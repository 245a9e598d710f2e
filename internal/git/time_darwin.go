//go:build darwin

package git

import (
	"os"
	"syscall"
	"time"
)

func getCreatedTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, err
	}

	if stat, ok := info.Sys().(*syscall.Stat_t); ok {
		birth := time.Unix(stat.Birthtimespec.Sec, stat.Birthtimespec.Nsec)
		// Birth time can't be backdated; a touched mtime older than it wins.
		if info.ModTime().Before(birth) {
			return info.ModTime(), nil
		}
		return birth, nil
	}

	return info.ModTime(), nil
}
