// Package storage provides atomic file writes for treehouse's JSON files.
package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteAtomic writes data to path by writing a sibling temp file and
// renaming it over the target, so readers never see a partial file.
// The parent directory is created if needed.
func WriteAtomic(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, perm); err != nil {
		return err
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return err
	}
	return nil
}

// SaveJSON atomically writes data as indented JSON with a trailing newline.
func SaveJSON(path string, data any) error {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return err
	}
	return WriteAtomic(path, append(jsonData, '\n'), 0o644)
}
