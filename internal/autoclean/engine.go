package autoclean

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/raphi011/treehouse/internal/config"
	"github.com/raphi011/treehouse/internal/git"
	"github.com/raphi011/treehouse/internal/log"
)

// Cooldown is the minimum interval between two automatic runs.
const Cooldown = 24 * time.Hour

// ErrNegativeThreshold is returned for a clean threshold below zero.
var ErrNegativeThreshold = errors.New("clean threshold must not be negative")

// Worktree is an inventory entry.
type Worktree = git.Worktree

// Candidate is a worktree that is safe to remove.
type Candidate struct {
	Worktree
	AgeDays        int
	HasUncommitted bool
	HasUnpushed    bool
}

// Inventory lists the worktrees of the repository.
type Inventory interface {
	ListWorktrees(ctx context.Context) ([]Worktree, error)
}

// AgeOracle reports whole days since a worktree was created.
type AgeOracle interface {
	WorktreeAgeDays(ctx context.Context, path string) (int, error)
}

// ChangeOracle reports work that removing a worktree would lose.
type ChangeOracle interface {
	HasUncommittedChanges(ctx context.Context, path string) (bool, error)
	HasUnpushedCommits(ctx context.Context, path string) (bool, error)
}

// Remover deletes a worktree and its administrative files.
type Remover interface {
	RemoveWorktree(ctx context.Context, path string, force bool) error
}

// Backend bundles the worktree collaborators. *git.Backend implements it.
type Backend interface {
	Inventory
	AgeOracle
	ChangeOracle
	Remover
}

// Prompter asks the user a question. ok is false when no answer could be
// read (no terminal, cancelled).
type Prompter interface {
	Line(ctx context.Context, message string) (answer string, ok bool)
}

// Engine runs auto-clean against injected collaborators.
type Engine struct {
	Store     config.Store
	Inventory Inventory
	Ages      AgeOracle
	Changes   ChangeOracle
	Remover   Remover
	Prompter  Prompter
	Now       func() time.Time

	// Keep lists worktree paths that are never cleaned, such as one the
	// calling command just created.
	Keep []string
}

// New returns an Engine using backend for all worktree queries.
func New(store config.Store, backend Backend, prompter Prompter) *Engine {
	return &Engine{
		Store:     store,
		Inventory: backend,
		Ages:      backend,
		Changes:   backend,
		Remover:   backend,
		Prompter:  prompter,
		Now:       time.Now,
	}
}

// ComputeCleanableSet returns the worktrees that may be removed, in
// inventory order. Protected and skipped entries never reach the oracles.
func (e *Engine) ComputeCleanableSet(ctx context.Context, threshold int, defaultBranch string) ([]Candidate, error) {
	if threshold < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeThreshold, threshold)
	}

	worktrees, err := e.Inventory.ListWorktrees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list worktrees: %w", err)
	}

	var candidates []Candidate
	for _, wt := range worktrees {
		if wt.Bare || wt.Main || wt.Locked || wt.Prunable || wt.Branch == defaultBranch {
			continue
		}
		if e.kept(wt.Path) {
			continue
		}

		age, err := e.Ages.WorktreeAgeDays(ctx, wt.Path)
		if err != nil {
			return nil, fmt.Errorf("age of %s: %w", wt.Path, err)
		}
		if age < threshold {
			continue
		}

		dirty, err := e.Changes.HasUncommittedChanges(ctx, wt.Path)
		if err != nil {
			return nil, fmt.Errorf("status of %s: %w", wt.Path, err)
		}
		unpushed, err := e.Changes.HasUnpushedCommits(ctx, wt.Path)
		if err != nil {
			return nil, fmt.Errorf("unpushed commits of %s: %w", wt.Path, err)
		}
		if dirty || unpushed {
			continue
		}

		candidates = append(candidates, Candidate{
			Worktree:       wt,
			AgeDays:        age,
			HasUncommitted: dirty,
			HasUnpushed:    unpushed,
		})
	}
	return candidates, nil
}

// RunSilent removes stale worktrees without asking and returns how many
// were removed. It returns 0 when auto-clean is disabled, the cooldown is
// active, or anything fails.
func (e *Engine) RunSilent(ctx context.Context) int {
	return guard(ctx, "silent", func() (int, error) {
		r, err := e.begin(ctx)
		if r == nil || err != nil {
			return 0, err
		}

		candidates, err := e.ComputeCleanableSet(ctx, r.cfg.CleanThreshold, r.cfg.DefaultBranch)
		if err != nil {
			return 0, err
		}
		removed := e.removeAll(ctx, candidates)

		if err := e.persist(ctx, r); err != nil {
			return 0, err
		}
		return removed, nil
	})
}

// RunInteractive asks before removing stale worktrees. The cooldown is
// recorded before the question is shown, so an abandoned prompt still
// counts as a run.
func (e *Engine) RunInteractive(ctx context.Context) {
	guard(ctx, "interactive", func() (int, error) {
		r, err := e.begin(ctx)
		if r == nil || err != nil {
			return 0, err
		}

		candidates, err := e.ComputeCleanableSet(ctx, r.cfg.CleanThreshold, r.cfg.DefaultBranch)
		if err != nil {
			return 0, err
		}
		if err := e.persist(ctx, r); err != nil {
			return 0, err
		}
		if len(candidates) == 0 {
			return 0, nil
		}

		l := log.FromContext(ctx)
		question := fmt.Sprintf("Remove %d worktrees not touched in %d+ days? [Y/n]", len(candidates), r.cfg.CleanThreshold)
		answer, ok := e.Prompter.Line(ctx, question)
		if !ok || !Accepted(answer) {
			l.Println("Skipped auto-clean. Run 'treehouse clean' to remove stale worktrees manually.")
			return 0, nil
		}

		removed := e.removeAll(ctx, candidates)
		l.Printf("Removed %d stale worktree(s)\n", removed)
		return removed, nil
	})
}

// Accepted reports whether answer confirms a default-yes question:
// empty, "y" or "yes", ignoring case and surrounding whitespace.
func Accepted(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "", "y", "yes":
		return true
	}
	return false
}

type run struct {
	cfg  config.Config
	root string
	now  time.Time
}

// begin loads the config and applies the enable switch and cooldown.
// A nil run means there is nothing to do.
func (e *Engine) begin(ctx context.Context) (*run, error) {
	cfg, root, err := e.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if !cfg.AutoClean {
		return nil, nil
	}

	now := e.now()
	if last, ok := cfg.LastAutoClean(); ok && now.Sub(last) < Cooldown {
		log.FromContext(ctx).Debug("auto-clean cooldown active", "last", last.Format(time.RFC3339))
		return nil, nil
	}
	return &run{cfg: cfg, root: root, now: now}, nil
}

func (e *Engine) persist(ctx context.Context, r *run) error {
	r.cfg.SetLastAutoClean(r.now)
	if err := e.Store.Save(ctx, r.root, r.cfg); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// removeAll removes each candidate without force. Failures are skipped.
func (e *Engine) removeAll(ctx context.Context, candidates []Candidate) int {
	l := log.FromContext(ctx)
	removed := 0
	for _, c := range candidates {
		if err := e.Remover.RemoveWorktree(ctx, c.Path, false); err != nil {
			l.Debug("auto-clean: remove failed", "path", c.Path, "err", err)
			continue
		}
		l.Debug("auto-clean: removed", "path", c.Path, "branch", c.Branch, "age", c.AgeDays)
		removed++
	}
	return removed
}

func (e *Engine) kept(path string) bool {
	for _, k := range e.Keep {
		if filepath.Clean(k) == filepath.Clean(path) {
			return true
		}
	}
	return false
}

func (e *Engine) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

// guard is the only error boundary of the public entry points: errors and
// panics become a zero result.
func guard(ctx context.Context, mode string, fn func() (int, error)) (n int) {
	defer func() {
		if r := recover(); r != nil {
			log.FromContext(ctx).Debug("auto-clean panicked", "mode", mode, "panic", r)
			n = 0
		}
	}()

	n, err := fn()
	if err != nil {
		log.FromContext(ctx).Debug("auto-clean failed", "mode", mode, "err", err)
		return 0
	}
	return n
}
