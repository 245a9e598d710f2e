package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	gogit "github.com/go-git/go-git/v5"

	"github.com/raphi011/treehouse/internal/log"
)

// HasUncommittedChanges reports whether the worktree at path has modified,
// staged or untracked files. If the git CLI fails, go-git is consulted
// before giving up; an error means the state is unknown.
func HasUncommittedChanges(ctx context.Context, path string) (bool, error) {
	output, err := outputGit(ctx, path, "status", "--porcelain")
	if err == nil {
		return strings.TrimSpace(string(output)) != "", nil
	}

	log.FromContext(ctx).Debug("git status failed, trying go-git", "path", path, "error", err)
	dirty, goGitErr := isDirtyGoGit(path)
	if goGitErr != nil {
		return false, fmt.Errorf("status of %s: %v", path, err)
	}
	return dirty, nil
}

func isDirtyGoGit(path string) (bool, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return false, err
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return false, err
	}

	status, err := worktree.Status()
	if err != nil {
		return false, err
	}

	return !status.IsClean(), nil
}

// HasUpstream reports whether the branch checked out at path has an upstream.
func HasUpstream(ctx context.Context, path string) bool {
	return runGit(ctx, path, "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{upstream}") == nil
}

// HasUnpushedCommits reports whether HEAD at path has commits missing from
// its upstream. Without an upstream, any commit not reachable from a
// remote-tracking ref counts as unpushed.
func HasUnpushedCommits(ctx context.Context, path string) (bool, error) {
	var args []string
	if HasUpstream(ctx, path) {
		args = []string{"rev-list", "--count", "@{upstream}..HEAD"}
	} else {
		args = []string{"rev-list", "--count", "HEAD", "--not", "--remotes"}
	}

	output, err := outputGit(ctx, path, args...)
	if err != nil {
		return false, fmt.Errorf("unpushed commits of %s: %v", path, err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(output)))
	if err != nil {
		return false, fmt.Errorf("unpushed commits of %s: unexpected output %q", path, output)
	}
	return count > 0, nil
}
