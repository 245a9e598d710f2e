// Package worktree computes where new worktrees are created.
package worktree

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Layout places worktrees of one repository according to a path template.
//
// Template forms:
//   - "../{repo}-{branch}": sibling of the repository root
//   - "~/worktrees/{repo}/{branch}": under the home directory
//   - "/srv/wt/{repo}-{branch}": absolute
//   - ".worktrees/{branch}" or "./{branch}": nested in the repository root
type Layout struct {
	Root   string // repository root
	Repo   string // repository name
	Format string
}

// Path returns the directory for a worktree on branch.
func (l Layout) Path(branch string) string {
	return ResolvePath(l.Root, l.Repo, branch, l.Format)
}

// PathForPR returns the directory for a pull request checkout. The branch
// name is prefixed with pr-<number> so forks with the same head branch
// do not collide.
func (l Layout) PathForPR(number int, branch string) string {
	return l.Path("pr-" + strconv.Itoa(number) + "-" + branch)
}

// SanitizeBranch turns a branch name into a single path segment.
func SanitizeBranch(branch string) string {
	r := strings.NewReplacer("/", "-", "\\", "-", ":", "-")
	return r.Replace(branch)
}

// ResolvePath fills the template with repoName and branch and anchors the
// result at root.
func ResolvePath(root, repoName, branch, format string) string {
	path := strings.ReplaceAll(format, "{repo}", repoName)
	path = strings.ReplaceAll(path, "{branch}", SanitizeBranch(branch))

	switch {
	case strings.HasPrefix(path, "../"):
		return filepath.Join(filepath.Dir(root), path[3:])

	case strings.HasPrefix(path, "~/"):
		home, err := os.UserHomeDir()
		if err != nil || home == "" {
			// keep the ~ so the error message shows what was configured
			return path
		}
		return filepath.Join(home, path[2:])

	case filepath.IsAbs(path):
		return filepath.Clean(path)

	default:
		return filepath.Join(root, strings.TrimPrefix(path, "./"))
	}
}
