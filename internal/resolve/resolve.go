package resolve

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/treehouse/internal/git"
)

var (
	// ErrNotFound is returned when no worktree matches.
	ErrNotFound = errors.New("no worktree matches")
	// ErrAmbiguous is returned when a fuzzy query matches several worktrees.
	ErrAmbiguous = errors.New("ambiguous worktree")
)

// candidates implements fuzzy.Source over worktree names.
type candidates []git.Worktree

func (c candidates) String(i int) string { return name(c[i]) }

func (c candidates) Len() int { return len(c) }

// name is what a user is most likely to type for a worktree.
func name(wt git.Worktree) string {
	if wt.Branch != "" {
		return wt.Branch
	}
	return filepath.Base(wt.Path)
}

// Worktree resolves arg against worktrees. cwd anchors relative paths.
// The bare repository entry is never returned.
func Worktree(worktrees []git.Worktree, arg, cwd string) (git.Worktree, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return git.Worktree{}, fmt.Errorf("%w: empty name", ErrNotFound)
	}

	var pool candidates
	for _, wt := range worktrees {
		if !wt.Bare {
			pool = append(pool, wt)
		}
	}

	for _, wt := range pool {
		if wt.Branch == arg {
			return wt, nil
		}
	}

	path := arg
	if !filepath.IsAbs(path) {
		path = filepath.Join(cwd, path)
	}
	path = filepath.Clean(path)
	for _, wt := range pool {
		if filepath.Clean(wt.Path) == path {
			return wt, nil
		}
	}

	var byBase []git.Worktree
	for _, wt := range pool {
		if filepath.Base(wt.Path) == arg {
			byBase = append(byBase, wt)
		}
	}
	switch len(byBase) {
	case 1:
		return byBase[0], nil
	case 0:
	default:
		return git.Worktree{}, ambiguous(arg, byBase)
	}

	matches := fuzzy.FindFrom(arg, pool)
	switch len(matches) {
	case 0:
		return git.Worktree{}, fmt.Errorf("%w %q", ErrNotFound, arg)
	case 1:
		return pool[matches[0].Index], nil
	}
	found := make([]git.Worktree, len(matches))
	for i, m := range matches {
		found[i] = pool[m.Index]
	}
	return git.Worktree{}, ambiguous(arg, found)
}

func ambiguous(arg string, found []git.Worktree) error {
	names := make([]string, len(found))
	for i, wt := range found {
		names[i] = fmt.Sprintf("%s (%s)", name(wt), wt.Path)
	}
	return fmt.Errorf("%w %q, candidates:\n  %s", ErrAmbiguous, arg, strings.Join(names, "\n  "))
}

// Names returns the names completion should offer for worktrees.
func Names(worktrees []git.Worktree) []string {
	var names []string
	for _, wt := range worktrees {
		if !wt.Bare {
			names = append(names, name(wt))
		}
	}
	return names
}
