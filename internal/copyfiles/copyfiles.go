// Package copyfiles copies untracked files, such as .env files, from an
// existing worktree into another.
//
// Patterns are globs relative to the source worktree. A matching directory
// is copied recursively, skipping any .git entry. Existing files in the
// target are kept unless force is set. Permission bits are preserved.
package copyfiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/raphi011/treehouse/internal/git"
	"github.com/raphi011/treehouse/internal/log"
)

// Result lists relative paths that were copied or skipped.
type Result struct {
	Copied  []string
	Skipped []string
}

// SourceWorktree picks the directory to copy from: the worktree on
// defaultBranch, else the repository root.
func SourceWorktree(worktrees []git.Worktree, defaultBranch, root, target string) string {
	for _, wt := range worktrees {
		if wt.Branch == defaultBranch && wt.Path != target && !wt.Bare {
			return wt.Path
		}
	}
	return root
}

// Copy copies everything matching patterns from sourceDir into targetDir.
// A pattern without matches is not an error.
func Copy(ctx context.Context, sourceDir, targetDir string, patterns []string, force bool) (Result, error) {
	l := log.FromContext(ctx)
	var res Result

	if filepath.Clean(sourceDir) == filepath.Clean(targetDir) {
		return res, errors.New("source and target are the same worktree")
	}

	for _, pat := range patterns {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		matches, err := filepath.Glob(filepath.Join(sourceDir, pat))
		if err != nil {
			return res, fmt.Errorf("pattern %q: %w", pat, err)
		}
		if len(matches) == 0 {
			l.Debug("copy: no match", "pattern", pat, "source", sourceDir)
			continue
		}
		for _, match := range matches {
			if err := copyTree(sourceDir, targetDir, match, force, &res); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

func copyTree(sourceDir, targetDir, root string, force bool, res *Result) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Name() == ".git" {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(sourceDir, path)
		if err != nil {
			return err
		}
		ok, err := CopyFile(path, filepath.Join(targetDir, rel), force)
		if err != nil {
			return fmt.Errorf("copy %s: %w", rel, err)
		}
		if ok {
			res.Copied = append(res.Copied, rel)
		} else {
			res.Skipped = append(res.Skipped, rel)
		}
		return nil
	})
}

// CopyFile copies src to dst, creating parent directories as needed.
// Without force an existing dst is left alone and CopyFile reports false.
// Symlinks are recreated, not followed.
func CopyFile(src, dst string, force bool) (bool, error) {
	info, err := os.Lstat(src)
	if err != nil {
		return false, err
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return false, err
	}

	if info.Mode()&os.ModeSymlink != 0 {
		return copySymlink(src, dst, force)
	}

	flags := os.O_CREATE | os.O_WRONLY | os.O_EXCL
	if force {
		flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC
	}
	dstFile, err := os.OpenFile(dst, flags, info.Mode().Perm())
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, err
	}
	defer dstFile.Close()

	srcFile, err := os.Open(src)
	if err != nil {
		os.Remove(dst)
		return false, err
	}
	defer srcFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		os.Remove(dst)
		return false, err
	}

	// OpenFile applies the umask; set the source bits exactly.
	if err := dstFile.Chmod(info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

func copySymlink(src, dst string, force bool) (bool, error) {
	target, err := os.Readlink(src)
	if err != nil {
		return false, err
	}
	if _, err := os.Lstat(dst); err == nil {
		if !force {
			return false, nil
		}
		if err := os.Remove(dst); err != nil {
			return false, err
		}
	}
	if err := os.Symlink(target, dst); err != nil {
		return false, err
	}
	return true, nil
}
