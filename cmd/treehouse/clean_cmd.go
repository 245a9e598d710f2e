package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/treehouse/internal/autoclean"
	"github.com/raphi011/treehouse/internal/git"
	"github.com/raphi011/treehouse/internal/log"
	"github.com/raphi011/treehouse/internal/output"
	"github.com/raphi011/treehouse/internal/ui/static"
	"github.com/raphi011/treehouse/internal/ui/styles"
)

func newCleanCmd(e *env) *cobra.Command {
	var (
		dryRun    bool
		threshold int
		yes       bool
	)

	cmd := &cobra.Command{
		Use:     "clean",
		Short:   "Remove stale worktrees",
		GroupID: GroupMaint,
		Args:    cobra.NoArgs,
		Long: `Remove worktrees that have not been touched for a while.

A worktree is stale when it is at least cleanThreshold days old (or
--threshold), has no uncommitted changes and no unpushed commits. The
main worktree, locked worktrees and the default branch are never
removed. Administrative entries of worktrees whose directory is gone are
pruned first.

Unlike auto-clean this ignores the autoClean switch and the daily
cooldown.`,
		Example: `  treehouse clean --dry-run       # Show what would be removed
  treehouse clean --threshold 30  # Only worktrees 30+ days old
  treehouse clean --yes           # No confirmation`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			r, err := loadRepo(ctx)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("threshold") {
				threshold = r.Config.CleanThreshold
			}

			if !dryRun {
				if err := git.PruneWorktrees(ctx, r.Root); err != nil {
					l.Debug("worktree prune failed", "error", err)
				}
			}

			store, err := storeFrom(ctx)
			if err != nil {
				return err
			}
			engine := autoclean.New(store, git.NewBackend(r.Root), e.term)

			candidates, err := engine.ComputeCleanableSet(ctx, threshold, r.Config.DefaultBranch)
			if err != nil {
				return err
			}
			if len(candidates) == 0 {
				l.Printf("No worktrees older than %d days without local changes\n", threshold)
				return nil
			}

			rows := make([]static.WorktreeRow, len(candidates))
			for i, c := range candidates {
				rows[i] = static.WorktreeRow{
					Branch:  c.Branch,
					AgeDays: c.AgeDays,
					States:  []string{styles.StateStale},
					Path:    c.Path,
				}
			}
			if dryRun {
				out.Print(static.WorktreeTable(rows))
				return nil
			}
			l.Printf("Stale worktrees:\n%s", static.Indent(static.WorktreeTable(rows), "  "))

			if !yes {
				answer, ok := e.term.Line(ctx, fmt.Sprintf("Remove %d worktree(s)? [Y/n]", len(candidates)))
				if !ok {
					return fmt.Errorf("confirmation required: run in a terminal or pass --yes")
				}
				if !autoclean.Accepted(answer) {
					l.Println("Aborted")
					return nil
				}
			}

			var failed int
			for _, c := range candidates {
				if err := git.RemoveWorktree(ctx, r.Root, c.Path, false); err != nil {
					l.Println(styles.Failed("%s: %v", c.Path, err))
					failed++
					continue
				}
				l.Println(styles.Done("Removed %s", c.Path))
			}
			if failed > 0 {
				return fmt.Errorf("failed to remove %d of %d worktree(s)", failed, len(candidates))
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Only list stale worktrees")
	cmd.Flags().IntVarP(&threshold, "threshold", "t", 0, "Minimum age in days (default: cleanThreshold)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")

	return cmd
}
