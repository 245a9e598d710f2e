package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/treehouse/internal/autoclean"
	"github.com/raphi011/treehouse/internal/config"
	"github.com/raphi011/treehouse/internal/git"
	"github.com/raphi011/treehouse/internal/resolve"
	"github.com/raphi011/treehouse/internal/worktree"
)

// repo is the repository a command operates on.
type repo struct {
	Root      string
	Name      string
	Config    config.Config
	Worktrees []git.Worktree
}

// Layout returns the worktree path layout for the repository.
func (r *repo) Layout() worktree.Layout {
	return worktree.Layout{Root: r.Root, Repo: r.Name, Format: r.Config.Format()}
}

func storeFrom(ctx context.Context) (config.Store, error) {
	s := config.StoreFromContext(ctx)
	if s == nil {
		return nil, fmt.Errorf("no config store in context")
	}
	return s, nil
}

// loadRepo loads the config and worktree inventory of the current repository.
func loadRepo(ctx context.Context) (*repo, error) {
	store, err := storeFrom(ctx)
	if err != nil {
		return nil, err
	}
	cfg, root, err := store.Load(ctx)
	if err != nil {
		return nil, err
	}
	worktrees, err := git.ListWorktrees(ctx, root)
	if err != nil {
		return nil, err
	}
	return &repo{
		Root:      root,
		Name:      git.RepoName(ctx, root),
		Config:    cfg,
		Worktrees: worktrees,
	}, nil
}

// resolveWorktree finds the worktree named by arg.
func (e *env) resolveWorktree(r *repo, arg string) (git.Worktree, error) {
	return resolve.Worktree(r.Worktrees, arg, e.workDir)
}

// autoClean runs the stale-worktree check after a primary command. On a
// terminal it asks before removing; otherwise it removes silently on a
// background goroutine that Execute waits for. Git commands run from the
// repository root so a removed worktree is never the working directory.
// Paths in keep are never removed.
func (e *env) autoClean(ctx context.Context, root string, interactive bool, keep ...string) {
	store, err := storeFrom(ctx)
	if err != nil {
		return
	}
	engine := autoclean.New(store, git.NewBackend(root), e.term)
	engine.Keep = keep

	if interactive && e.term.Interactive() {
		engine.RunInteractive(ctx)
		return
	}
	e.bg.Go(ctx, "auto-clean", func(ctx context.Context) {
		engine.RunSilent(ctx)
	})
}

// completeWorktrees completes worktree names for commands taking them as
// arguments.
func completeWorktrees(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return worktreeNames(cmd.Context()), cobra.ShellCompDirectiveNoFileComp
}

// completeWorktree completes only the first argument.
func completeWorktree(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return completeWorktrees(cmd, args, toComplete)
}

func worktreeNames(ctx context.Context) []string {
	r, err := loadRepo(ctx)
	if err != nil {
		return nil
	}
	return resolve.Names(r.Worktrees)
}
