package resolve

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/raphi011/treehouse/internal/git"
)

var testWorktrees = []git.Worktree{
	{Path: "/src/app", Branch: "main", Main: true},
	{Path: "/src/app-feature-login", Branch: "feature/login"},
	{Path: "/src/app-feature-logout", Branch: "feature/logout"},
	{Path: "/src/app-hotfix", Branch: "hotfix-42"},
	{Path: "/src/app-detached", Head: "abc123"},
}

func TestWorktree(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		arg  string
		cwd  string
		want string
	}{
		{"exact branch", "feature/login", "/", "/src/app-feature-login"},
		{"absolute path", "/src/app-hotfix", "/", "/src/app-hotfix"},
		{"path with trailing slash", "/src/app-hotfix/", "/", "/src/app-hotfix"},
		{"relative path", "../app-hotfix", "/src/app", "/src/app-hotfix"},
		{"current directory", ".", "/src/app-feature-logout", "/src/app-feature-logout"},
		{"base name", "app-detached", "/", "/src/app-detached"},
		{"unique fuzzy", "htfx", "/", "/src/app-hotfix"},
		{"fuzzy on branch", "logout", "/", "/src/app-feature-logout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Worktree(testWorktrees, tt.arg, tt.cwd)
			if err != nil {
				t.Fatalf("Worktree(%q) failed: %v", tt.arg, err)
			}
			if got.Path != tt.want {
				t.Errorf("Worktree(%q) = %q, want %q", tt.arg, got.Path, tt.want)
			}
		})
	}
}

func TestWorktree_Ambiguous(t *testing.T) {
	t.Parallel()

	_, err := Worktree(testWorktrees, "feat", "/")
	if !errors.Is(err, ErrAmbiguous) {
		t.Fatalf("error = %v, want ErrAmbiguous", err)
	}
	for _, want := range []string{"feature/login", "feature/logout"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should list %q: %v", want, err)
		}
	}
}

func TestWorktree_NotFound(t *testing.T) {
	t.Parallel()

	for _, arg := range []string{"zzzz", "", "  "} {
		if _, err := Worktree(testWorktrees, arg, "/"); !errors.Is(err, ErrNotFound) {
			t.Errorf("Worktree(%q) error = %v, want ErrNotFound", arg, err)
		}
	}
}

func TestWorktree_SkipsBare(t *testing.T) {
	t.Parallel()

	wts := []git.Worktree{{Path: "/src/app.git", Bare: true}}
	if _, err := Worktree(wts, "/src/app.git", "/"); !errors.Is(err, ErrNotFound) {
		t.Errorf("bare entry should not resolve, got %v", err)
	}
}

func TestNames(t *testing.T) {
	t.Parallel()

	got := Names(append([]git.Worktree{{Path: "/x.git", Bare: true}}, testWorktrees...))
	want := []string{"main", "feature/login", "feature/logout", "hotfix-42", "app-detached"}
	if !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}
