package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/treehouse/internal/git"
	"github.com/raphi011/treehouse/internal/hooks"
	"github.com/raphi011/treehouse/internal/log"
	"github.com/raphi011/treehouse/internal/ui/styles"
)

func newRemoveCmd(e *env) *cobra.Command {
	var (
		force  bool
		noHook bool
	)

	cmd := &cobra.Command{
		Use:               "remove <worktree>...",
		Short:             "Remove worktrees",
		Aliases:           []string{"rm"},
		GroupID:           GroupCore,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeWorktrees,
		Long: `Remove one or more worktrees.

Worktrees are named by branch, path, directory name or a unique fuzzy
match. preRemove hooks run in the worktree first; a failing hook aborts
that removal unless --force is given. postRemove hooks run in the
repository root afterwards.

Without --force, git refuses to remove worktrees with local changes.
The main worktree can never be removed.`,
		Example: `  treehouse remove feature/login         # By branch
  treehouse rm login signup              # Several, fuzzy
  treehouse rm experiment --force        # Discard local changes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := loadRepo(ctx)
			if err != nil {
				return err
			}

			var errs []error
			for _, arg := range args {
				wt, err := e.resolveWorktree(r, arg)
				if err != nil {
					errs = append(errs, err)
					continue
				}
				if err := removeWorktree(ctx, r, wt, force, noHook); err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", arg, err))
				}
			}
			return errors.Join(errs...)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Remove despite local changes or failing preRemove hooks")
	cmd.Flags().BoolVar(&noHook, "no-hook", false, "Skip preRemove and postRemove hooks")

	return cmd
}

func removeWorktree(ctx context.Context, r *repo, wt git.Worktree, force, noHook bool) error {
	l := log.FromContext(ctx)

	if wt.Main {
		return fmt.Errorf("cannot remove the main worktree")
	}

	hc := hooks.Context{
		Path:    wt.Path,
		Branch:  wt.Branch,
		Repo:    r.Name,
		Root:    r.Root,
		Trigger: hooks.TriggerRemove,
	}

	if !noHook {
		if err := hooks.Run(ctx, r.Config.Hooks, hooks.PreRemove, hc); err != nil {
			if !force {
				return fmt.Errorf("%w (use --force to remove anyway)", err)
			}
			l.Println(styles.Warn("%v", err))
		}
	}

	l.Debug("removing worktree", "path", wt.Path, "force", force)
	if err := git.RemoveWorktree(ctx, r.Root, wt.Path, force); err != nil {
		return err
	}
	l.Println(styles.Done("Removed %s", wt.Path))

	if !noHook {
		hooks.RunNonFatal(ctx, r.Config.Hooks, hooks.PostRemove, hc)
	}
	return nil
}
