//go:build integration

package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/raphi011/treehouse/internal/config"
)

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// setupTestRepo creates a git repo on main with an initial commit in
// dir/name, plus a bare origin in dir/origin/name.git that main is pushed to.
// Returns the absolute path to the repo (with symlinks resolved).
func setupTestRepo(t *testing.T, dir, name string) string {
	t.Helper()

	dir = resolvePath(t, dir)
	repoPath := filepath.Join(dir, name)
	originPath := filepath.Join(dir, "origin", name+".git")

	for _, d := range []string{repoPath, originPath} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", d, err)
		}
	}
	runGitCommand(t, originPath, "git", "init", "-q", "--bare", "-b", "main")

	cmds := [][]string{
		{"git", "init", "-q", "-b", "main"},
		{"git", "config", "user.email", "test@test.com"},
		{"git", "config", "user.name", "Test User"},
		{"git", "config", "commit.gpgsign", "false"},
	}
	for _, args := range cmds {
		runGitCommand(t, repoPath, args...)
	}

	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte("# "+name+"\n"), 0644); err != nil {
		t.Fatalf("failed to write README: %v", err)
	}

	cmds = [][]string{
		{"git", "add", "README.md"},
		{"git", "commit", "-q", "-m", "Initial commit"},
		{"git", "remote", "add", "origin", originPath},
		{"git", "push", "-q", "-u", "origin", "main"},
	}
	for _, args := range cmds {
		runGitCommand(t, repoPath, args...)
	}

	return repoPath
}

// addTestWorktree creates a worktree at worktreePath on a new branch.
func addTestWorktree(t *testing.T, repoPath, worktreePath, branch string) {
	t.Helper()
	runGitCommand(t, repoPath, "git", "worktree", "add", "-q", "-b", branch, worktreePath, "origin/main")
}

// backdate makes the worktree at path look days old.
func backdate(t *testing.T, path string, days int) {
	t.Helper()
	old := time.Now().Add(-time.Duration(days) * 24 * time.Hour)
	if err := os.Chtimes(filepath.Join(path, ".git"), old, old); err != nil {
		t.Fatalf("failed to backdate %s: %v", path, err)
	}
}

// makeDirty creates uncommitted changes in a worktree.
func makeDirty(t *testing.T, worktreePath string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(worktreePath, "dirty.txt"), []byte("uncommitted changes\n"), 0644); err != nil {
		t.Fatalf("failed to create dirty file: %v", err)
	}
}

// writeConfig writes .treehouse.json into the repository root.
func writeConfig(t *testing.T, repoPath string, cfg config.Config) {
	t.Helper()
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal config: %v", err)
	}
	if err := os.WriteFile(filepath.Join(repoPath, config.FileName), data, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
}

// readConfig reads .treehouse.json from the repository root.
func readConfig(t *testing.T, repoPath string) config.Config {
	t.Helper()
	cfg, err := config.ReadFile(filepath.Join(repoPath, config.FileName), config.DefaultGlobal())
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	return cfg
}

// assertExists fails if path does not exist.
func assertExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("%s should exist: %v", path, err)
	}
}

// assertNotExists fails if path exists.
func assertNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("%s should not exist", path)
	}
}

// runGitCommand runs a git command and returns output
func runGitCommand(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("failed to run %v: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}
