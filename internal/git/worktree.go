package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Worktree is one entry of "git worktree list --porcelain".
type Worktree struct {
	Path       string `json:"path"`
	Branch     string `json:"branch,omitempty"` // empty for detached HEAD
	Head       string `json:"head,omitempty"`
	Bare       bool   `json:"bare,omitempty"`
	Main       bool   `json:"main,omitempty"` // primary working tree of a non-bare repo
	Locked     bool   `json:"locked,omitempty"`
	LockReason string `json:"lockReason,omitempty"`
	Prunable   bool   `json:"prunable,omitempty"`
}

// ListWorktrees returns all worktrees of the repository containing dir.
func ListWorktrees(ctx context.Context, dir string) ([]Worktree, error) {
	output, err := outputGit(ctx, dir, "worktree", "list", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to list worktrees: %v", err)
	}
	return ParseWorktreeList(string(output)), nil
}

// ParseWorktreeList parses porcelain output. Entries are separated by blank
// lines; the first non-bare entry is the main working tree.
func ParseWorktreeList(output string) []Worktree {
	var worktrees []Worktree
	var current *Worktree

	flush := func() {
		if current != nil && current.Path != "" {
			worktrees = append(worktrees, *current)
		}
		current = nil
	}

	for line := range strings.SplitSeq(output, "\n") {
		line = strings.TrimRight(line, "\r")
		key, value, _ := strings.Cut(line, " ")
		switch {
		case line == "":
			flush()
		case key == "worktree":
			flush()
			current = &Worktree{Path: value}
		case current == nil:
			continue
		case key == "HEAD":
			current.Head = value
		case key == "branch":
			current.Branch = strings.TrimPrefix(value, "refs/heads/")
		case key == "detached":
			current.Branch = ""
		case key == "bare":
			current.Bare = true
		case key == "locked":
			current.Locked = true
			current.LockReason = value
		case key == "prunable":
			current.Prunable = true
		}
	}
	flush()

	for i := range worktrees {
		if !worktrees[i].Bare {
			if i == 0 {
				worktrees[i].Main = true
			}
			break
		}
	}

	return worktrees
}

// FindWorktreeForBranch returns the worktree that has branch checked out.
func FindWorktreeForBranch(worktrees []Worktree, branch string) (Worktree, bool) {
	for _, wt := range worktrees {
		if !wt.Bare && wt.Branch == branch {
			return wt, true
		}
	}
	return Worktree{}, false
}

// ErrPathExists is returned when the target directory of a new worktree exists.
var ErrPathExists = errors.New("worktree path already exists")

// AddOptions configures AddWorktree.
type AddOptions struct {
	Path   string // target directory
	Branch string // branch to check out or create
	Base   string // start point for a new branch; empty means HEAD
	Detach bool   // create a detached worktree at Base (Branch is ignored)
}

// AddMode describes how AddWorktree obtained the branch.
type AddMode string

const (
	AddExisting AddMode = "existing" // local branch checked out
	AddTracking AddMode = "tracking" // new local branch tracking origin/<branch>
	AddNew      AddMode = "new"      // new branch from Base
	AddDetached AddMode = "detached"
)

// AddWorktree creates a worktree. An existing local branch is checked out;
// otherwise origin/<branch> is fetched and tracked if it exists; otherwise a
// new branch is created from opts.Base.
func AddWorktree(ctx context.Context, dir string, opts AddOptions) (AddMode, error) {
	if _, err := os.Stat(opts.Path); err == nil {
		return "", fmt.Errorf("%w: %s", ErrPathExists, opts.Path)
	}
	if err := os.MkdirAll(filepath.Dir(opts.Path), 0o755); err != nil {
		return "", err
	}

	if opts.Detach {
		args := []string{"worktree", "add", "--detach", opts.Path}
		if opts.Base != "" {
			args = append(args, opts.Base)
		}
		if err := runGit(ctx, dir, args...); err != nil {
			return "", fmt.Errorf("failed to create worktree: %v", err)
		}
		return AddDetached, nil
	}

	if BranchExists(ctx, dir, opts.Branch) {
		if err := runGit(ctx, dir, "worktree", "add", opts.Path, opts.Branch); err != nil {
			return "", fmt.Errorf("failed to create worktree: %v", err)
		}
		return AddExisting, nil
	}

	if HasRemote(ctx, dir) {
		// A missing remote branch is the common case for a new branch.
		if FetchBranch(ctx, dir, opts.Branch) == nil && RemoteBranchExists(ctx, dir, opts.Branch) {
			err := runGit(ctx, dir, "worktree", "add", "--track", "-b", opts.Branch, opts.Path, "origin/"+opts.Branch)
			if err != nil {
				return "", fmt.Errorf("failed to create worktree: %v", err)
			}
			return AddTracking, nil
		}
	}

	args := []string{"worktree", "add", "-b", opts.Branch, opts.Path}
	if opts.Base != "" {
		args = append(args, opts.Base)
	}
	if err := runGit(ctx, dir, args...); err != nil {
		return "", fmt.Errorf("failed to create worktree: %v", err)
	}
	return AddNew, nil
}

// RemoveWorktree removes a worktree and its administrative files.
// Without force, git refuses to remove a worktree with local changes.
func RemoveWorktree(ctx context.Context, dir, path string, force bool) error {
	args := []string{"worktree", "remove"}
	if force {
		args = append(args, "--force")
	}
	args = append(args, path)
	return runGit(ctx, dir, args...)
}

// LockWorktree locks a worktree so it is not pruned or removed.
func LockWorktree(ctx context.Context, dir, path, reason string) error {
	args := []string{"worktree", "lock"}
	if reason != "" {
		args = append(args, "--reason", reason)
	}
	return runGit(ctx, dir, append(args, path)...)
}

// UnlockWorktree unlocks a locked worktree.
func UnlockWorktree(ctx context.Context, dir, path string) error {
	return runGit(ctx, dir, "worktree", "unlock", path)
}

// PruneWorktrees prunes administrative files of worktrees whose directory is gone.
func PruneWorktrees(ctx context.Context, dir string) error {
	return runGit(ctx, dir, "worktree", "prune")
}
