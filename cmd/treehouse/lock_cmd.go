package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/treehouse/internal/git"
	"github.com/raphi011/treehouse/internal/log"
	"github.com/raphi011/treehouse/internal/ui/styles"
)

func newLockCmd(e *env) *cobra.Command {
	var reason string

	cmd := &cobra.Command{
		Use:               "lock <worktree>",
		Short:             "Protect a worktree from clean and removal",
		GroupID:           GroupMaint,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeWorktree,
		Long: `Lock a worktree with 'git worktree lock'.

Locked worktrees are never cleaned, automatically or manually.`,
		Example: `  treehouse lock experiment
  treehouse lock experiment --reason "long-running benchmark"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := loadRepo(ctx)
			if err != nil {
				return err
			}
			wt, err := e.resolveWorktree(r, args[0])
			if err != nil {
				return err
			}
			if err := git.LockWorktree(ctx, r.Root, wt.Path, reason); err != nil {
				return err
			}
			log.FromContext(ctx).Println(styles.Done("Locked %s", wt.Path))
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason shown by git worktree list")

	return cmd
}

func newUnlockCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:               "unlock <worktree>",
		Short:             "Unlock a worktree",
		GroupID:           GroupMaint,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeWorktree,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			r, err := loadRepo(ctx)
			if err != nil {
				return err
			}
			wt, err := e.resolveWorktree(r, args[0])
			if err != nil {
				return err
			}
			if err := git.UnlockWorktree(ctx, r.Root, wt.Path); err != nil {
				return err
			}
			log.FromContext(ctx).Println(styles.Done("Unlocked %s", wt.Path))
			return nil
		},
	}
}
