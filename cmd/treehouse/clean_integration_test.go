//go:build integration

package main

import (
	"encoding/json"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/raphi011/treehouse/internal/config"
)

// staleRepo creates a repo with three 10-day-old worktrees: "old" is clean,
// "dirty" has uncommitted changes and "ahead" has an unpushed commit.
func staleRepo(t *testing.T, name string) (repoPath string, worktrees map[string]string) {
	t.Helper()

	tmpDir := resolvePath(t, t.TempDir())
	repoPath = setupTestRepo(t, tmpDir, name)
	worktrees = map[string]string{}

	for _, b := range []string{"old", "dirty", "ahead"} {
		p := filepath.Join(tmpDir, name+"-"+b)
		addTestWorktree(t, repoPath, p, b)
		worktrees[b] = p
	}
	makeDirty(t, worktrees["dirty"])
	runGitCommand(t, worktrees["ahead"], "git", "commit", "-q", "--allow-empty", "-m", "local only")

	for _, p := range worktrees {
		backdate(t, p, 10)
	}
	return repoPath, worktrees
}

// TestClean_DryRun tests listing clean candidates.
//
// Scenario: User runs `treehouse clean --dry-run`
// Expected: Only the clean, pushed worktree is listed; nothing is removed
func TestClean_DryRun(t *testing.T) {
	t.Parallel()

	repoPath, wts := staleRepo(t, "dryrun")

	stdout, _, err := runTreehouse(t, repoPath, "clean", "--dry-run")
	if err != nil {
		t.Fatalf("clean --dry-run failed: %v", err)
	}
	if !strings.Contains(stdout, wts["old"]) {
		t.Errorf("dry run does not list %s:\n%s", wts["old"], stdout)
	}
	for _, b := range []string{"dirty", "ahead"} {
		if strings.Contains(stdout, wts[b]) {
			t.Errorf("dry run lists %s:\n%s", b, stdout)
		}
	}
	for _, p := range wts {
		assertExists(t, p)
	}
}

// TestClean_Yes tests removing stale worktrees without a prompt.
//
// Scenario: User runs `treehouse clean --yes`
// Expected: Only the clean worktree is removed; lastAutoCleanTime is untouched
func TestClean_Yes(t *testing.T) {
	t.Parallel()

	repoPath, wts := staleRepo(t, "cleanyes")

	if _, _, err := runTreehouse(t, repoPath, "clean", "--yes"); err != nil {
		t.Fatalf("clean --yes failed: %v", err)
	}

	assertNotExists(t, wts["old"])
	assertExists(t, wts["dirty"])
	assertExists(t, wts["ahead"])
	assertExists(t, repoPath)

	if cfg := readConfig(t, repoPath); cfg.LastAutoCleanTime != nil {
		t.Error("manual clean must not record lastAutoCleanTime")
	}
}

// TestClean_Threshold tests the --threshold override.
func TestClean_Threshold(t *testing.T) {
	t.Parallel()

	repoPath, wts := staleRepo(t, "threshold")

	stdout, _, err := runTreehouse(t, repoPath, "clean", "--dry-run", "--threshold", "30")
	if err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	if strings.Contains(stdout, wts["old"]) {
		t.Errorf("10-day-old worktree listed with threshold 30:\n%s", stdout)
	}
}

// TestClean_LockedSkipped tests that locked worktrees are never cleaned.
func TestClean_LockedSkipped(t *testing.T) {
	t.Parallel()

	repoPath, wts := staleRepo(t, "locked")

	if _, _, err := runTreehouse(t, repoPath, "lock", "old", "--reason", "keep"); err != nil {
		t.Fatalf("lock failed: %v", err)
	}
	if _, _, err := runTreehouse(t, repoPath, "clean", "--yes"); err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	assertExists(t, wts["old"])

	if _, _, err := runTreehouse(t, repoPath, "unlock", "old"); err != nil {
		t.Fatalf("unlock failed: %v", err)
	}
	if _, _, err := runTreehouse(t, repoPath, "clean", "--yes"); err != nil {
		t.Fatalf("clean failed: %v", err)
	}
	assertNotExists(t, wts["old"])
}

// TestClean_NeedsConfirmation tests that clean without a terminal needs --yes.
func TestClean_NeedsConfirmation(t *testing.T) {
	t.Parallel()

	repoPath, wts := staleRepo(t, "confirm")

	if _, _, err := runTreehouse(t, repoPath, "clean"); err == nil {
		t.Fatal("expected clean without --yes to fail without a terminal")
	}
	assertExists(t, wts["old"])
}

// TestAutoClean_AfterList tests the background auto-clean after `treehouse list`.
//
// Scenario: autoClean is enabled and a clean worktree is 10 days old
// Expected: list removes it and records the run; a second stale worktree
// created right after survives the 24h cooldown
func TestAutoClean_AfterList(t *testing.T) {
	t.Parallel()

	repoPath, wts := staleRepo(t, "auto")
	cfg := config.Default()
	cfg.AutoClean = true
	writeConfig(t, repoPath, cfg)

	before := time.Now()
	if _, _, err := runTreehouse(t, repoPath, "list"); err != nil {
		t.Fatalf("list failed: %v", err)
	}

	assertNotExists(t, wts["old"])
	assertExists(t, wts["dirty"])
	assertExists(t, wts["ahead"])

	last, ok := readConfig(t, repoPath).LastAutoClean()
	if !ok || last.Before(before.Truncate(time.Millisecond)) {
		t.Fatalf("lastAutoCleanTime = %v (set %v), want >= %v", last, ok, before)
	}

	second := filepath.Join(filepath.Dir(repoPath), "auto-second")
	addTestWorktree(t, repoPath, second, "second")
	backdate(t, second, 10)

	if _, _, err := runTreehouse(t, repoPath, "list"); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	assertExists(t, second)
}

// TestAutoClean_Disabled tests that nothing is removed while autoClean is off.
func TestAutoClean_Disabled(t *testing.T) {
	t.Parallel()

	repoPath, wts := staleRepo(t, "off")

	if _, _, err := runTreehouse(t, repoPath, "list"); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	assertExists(t, wts["old"])
	if cfg := readConfig(t, repoPath); cfg.LastAutoCleanTime != nil {
		t.Error("disabled auto-clean must not record a run")
	}
}

// TestList_JSON tests the machine-readable list output.
func TestList_JSON(t *testing.T) {
	t.Parallel()

	repoPath, wts := staleRepo(t, "listjson")

	stdout, _, err := runTreehouse(t, repoPath, "list", "--json")
	if err != nil {
		t.Fatalf("list --json failed: %v", err)
	}

	var entries []worktreeStatus
	if err := json.Unmarshal([]byte(stdout), &entries); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, stdout)
	}
	if len(entries) != 4 {
		t.Fatalf("got %d entries, want 4", len(entries))
	}

	states := map[string][]string{}
	for _, e := range entries {
		states[e.Path] = e.States
	}
	tests := []struct {
		path string
		want string
	}{
		{wts["old"], "stale"},
		{wts["dirty"], "dirty"},
		{wts["ahead"], "unpushed"},
	}
	for _, tt := range tests {
		if !slices.Contains(states[tt.path], tt.want) {
			t.Errorf("%s states = %v, want %s", tt.path, states[tt.path], tt.want)
		}
	}
	if slices.Contains(states[repoPath], "stale") {
		t.Error("main worktree must never be stale")
	}
}
