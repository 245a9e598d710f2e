//go:build windows

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

	if stat, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		created := time.Unix(0, stat.CreationTime.Nanoseconds())
		if info.ModTime().Before(created) {
			return info.ModTime(), nil
		}
		return created, nil
	}

	return info.ModTime(), nil
}
