package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// RepoRoot returns the repository root for dir: the main working tree of a
// non-bare repository, or the git directory itself for a bare one.
// Works from the main working tree and from any linked worktree.
func RepoRoot(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--path-format=absolute", "--git-common-dir")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %v", err)
	}
	commonDir := filepath.Clean(strings.TrimSpace(string(output)))

	bare, err := outputGit(ctx, commonDir, "rev-parse", "--is-bare-repository")
	if err == nil && strings.TrimSpace(string(bare)) == "true" {
		return commonDir, nil
	}
	return filepath.Dir(commonDir), nil
}

// CurrentWorktree returns the top-level directory of the worktree containing dir.
func CurrentWorktree(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", fmt.Errorf("not inside a worktree: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// RepoName returns the repository name from the origin URL, falling back
// to the folder name of the repository root.
func RepoName(ctx context.Context, root string) string {
	output, err := outputGit(ctx, root, "remote", "get-url", "origin")
	if err == nil {
		if name := ExtractRepoNameFromURL(strings.TrimSpace(string(output))); name != "" {
			return name
		}
	}
	return strings.TrimSuffix(filepath.Base(root), ".git")
}

// ExtractRepoNameFromURL extracts the repository name from a git URL.
// Handles https, ssh and scp-like ("git@host:org/repo.git") forms.
func ExtractRepoNameFromURL(url string) string {
	url = strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")
	if i := strings.LastIndexAny(url, "/:"); i >= 0 {
		url = url[i+1:]
	}
	return url
}

// BranchExists checks if a local branch exists.
func BranchExists(ctx context.Context, dir, branch string) bool {
	return runGit(ctx, dir, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch) == nil
}

// RemoteBranchExists checks if origin/<branch> exists as a remote-tracking ref.
func RemoteBranchExists(ctx context.Context, dir, branch string) bool {
	return runGit(ctx, dir, "rev-parse", "--verify", "--quiet", "refs/remotes/origin/"+branch) == nil
}

// HasRemote reports whether a remote named origin is configured.
func HasRemote(ctx context.Context, dir string) bool {
	return runGit(ctx, dir, "remote", "get-url", "origin") == nil
}

// FetchBranch fetches a specific branch from origin.
func FetchBranch(ctx context.Context, dir, branch string) error {
	if err := runGit(ctx, dir, "fetch", "origin", branch, "--quiet"); err != nil {
		return fmt.Errorf("failed to fetch origin/%s: %v", branch, err)
	}
	return nil
}

// CurrentBranch returns the checked-out branch, or "" for a detached HEAD.
func CurrentBranch(ctx context.Context, dir string) (string, error) {
	output, err := outputGit(ctx, dir, "branch", "--show-current")
	if err != nil {
		return "", fmt.Errorf("failed to get branch: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// ExcludeLocal adds pattern to the repository's info/exclude file unless it
// is already listed. The file lives in the common git directory, so the
// entry applies to every worktree and is never committed.
func ExcludeLocal(ctx context.Context, dir, pattern string) error {
	output, err := outputGit(ctx, dir, "rev-parse", "--path-format=absolute", "--git-common-dir")
	if err != nil {
		return fmt.Errorf("not in a git repository: %v", err)
	}
	path := filepath.Join(strings.TrimSpace(string(output)), "info", "exclude")

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if slices.Contains(strings.Split(string(data), "\n"), pattern) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	line := pattern + "\n"
	if len(data) > 0 && !strings.HasSuffix(string(data), "\n") {
		line = "\n" + line
	}
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
