package git

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// resolveTempDir creates a temp directory and resolves macOS symlinks.
func resolveTempDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("failed to resolve symlinks for %s: %v", tmpDir, err)
	}
	return resolved
}

// configureTestRepo sets git user config and disables GPG signing.
func configureTestRepo(t *testing.T, repoPath string) {
	t.Helper()
	ctx := context.Background()
	for _, args := range [][]string{
		{"config", "user.email", "test@test.com"},
		{"config", "user.name", "Test User"},
		{"config", "commit.gpgsign", "false"},
	} {
		if err := runGit(ctx, repoPath, args...); err != nil {
			t.Fatalf("failed to run git %v: %v", args, err)
		}
	}
}

// commitFile writes name with content in dir and commits it.
func commitFile(t *testing.T, dir, name, content string) {
	t.Helper()
	ctx := context.Background()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if err := runGit(ctx, dir, "add", name); err != nil {
		t.Fatalf("failed to add file: %v", err)
	}
	if err := runGit(ctx, dir, "commit", "-m", "add "+name); err != nil {
		t.Fatalf("failed to commit: %v", err)
	}
}

// setupTestRepo creates a git repo with main branch, initial commit, and git config.
// Returns the resolved repo path.
func setupTestRepo(t *testing.T) string {
	t.Helper()
	tmpDir := resolveTempDir(t)
	repoPath := filepath.Join(tmpDir, "test-repo")

	if err := runGit(context.Background(), "", "init", "-b", "main", repoPath); err != nil {
		t.Fatalf("failed to init repo: %v", err)
	}
	configureTestRepo(t, repoPath)
	commitFile(t, repoPath, "README.md", "# test\n")

	return repoPath
}

// setupTestRepoWithOrigin creates a repo whose main branch is pushed to a
// bare origin. Returns (repoPath, originPath).
func setupTestRepoWithOrigin(t *testing.T) (string, string) {
	t.Helper()
	repoPath := setupTestRepo(t)
	originPath := filepath.Join(filepath.Dir(repoPath), "origin.git")

	ctx := context.Background()
	if err := runGit(ctx, "", "init", "--bare", "-b", "main", originPath); err != nil {
		t.Fatalf("failed to init origin: %v", err)
	}
	if err := runGit(ctx, repoPath, "remote", "add", "origin", originPath); err != nil {
		t.Fatalf("failed to add remote: %v", err)
	}
	if err := runGit(ctx, repoPath, "push", "-u", "origin", "main", "--quiet"); err != nil {
		t.Fatalf("failed to push: %v", err)
	}
	return repoPath, originPath
}
