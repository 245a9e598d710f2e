package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/raphi011/treehouse/internal/config"
	"github.com/raphi011/treehouse/internal/git"
	"github.com/raphi011/treehouse/internal/log"
	"github.com/raphi011/treehouse/internal/output"
	"github.com/raphi011/treehouse/internal/ui/static"
	"github.com/raphi011/treehouse/internal/ui/styles"
)

// worktreeStatus is a worktree plus the state shown by list.
type worktreeStatus struct {
	Branch   string   `json:"branch"`
	Path     string   `json:"path"`
	Head     string   `json:"head,omitempty"`
	Main     bool     `json:"main,omitempty"`
	AgeDays  int      `json:"ageDays"`
	States   []string `json:"states"`
	Current  bool     `json:"current,omitempty"`
	LockNote string   `json:"lockReason,omitempty"`
}

func newListCmd(e *env) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List worktrees",
		Aliases: []string{"ls"},
		GroupID: GroupCore,
		Args:    cobra.NoArgs,
		Long: `List the worktrees of the current repository.

States:
  dirty     uncommitted changes
  unpushed  commits not on any remote
  locked    locked with 'treehouse lock'
  stale     older than cleanThreshold days (a 'treehouse clean' candidate
            if also clean and pushed)
  prunable  directory is gone; run 'git worktree prune'`,
		Example: `  treehouse list         # Table
  treehouse list --json  # Machine-readable`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			r, err := loadRepo(ctx)
			if err != nil {
				return err
			}

			current, _ := git.CurrentWorktree(ctx, e.workDir)
			statuses := collectStatus(ctx, r, current, time.Now())

			if jsonOutput {
				if err := out.JSON(statuses); err != nil {
					return err
				}
			} else {
				rows := make([]static.WorktreeRow, len(statuses))
				for i, s := range statuses {
					rows[i] = static.WorktreeRow{
						Branch:  s.Branch,
						AgeDays: s.AgeDays,
						States:  s.States,
						Path:    s.Path,
						Current: s.Current,
					}
				}
				out.Print(static.WorktreeTable(rows))
			}

			e.autoClean(ctx, r.Root, false)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

// collectStatus queries the state of every non-bare worktree. Query
// failures are logged and leave the state out.
func collectStatus(ctx context.Context, r *repo, current string, now time.Time) []worktreeStatus {
	l := log.FromContext(ctx)
	statuses := make([]worktreeStatus, 0, len(r.Worktrees))

	for _, wt := range r.Worktrees {
		if wt.Bare {
			continue
		}
		s := worktreeStatus{
			Branch:   wt.Branch,
			Path:     wt.Path,
			Head:     wt.Head,
			Main:     wt.Main,
			AgeDays:  -1,
			States:   []string{},
			Current:  wt.Path == current,
			LockNote: wt.LockReason,
		}

		if wt.Prunable {
			s.States = append(s.States, styles.StatePrunable)
			statuses = append(statuses, s)
			continue
		}

		if age, err := git.WorktreeAgeDays(wt.Path, now); err != nil {
			l.Debug("age unavailable", "path", wt.Path, "error", err)
		} else {
			s.AgeDays = age
		}

		if dirty, err := git.HasUncommittedChanges(ctx, wt.Path); err != nil {
			l.Debug("status unavailable", "path", wt.Path, "error", err)
		} else if dirty {
			s.States = append(s.States, styles.StateDirty)
		}
		if unpushed, err := git.HasUnpushedCommits(ctx, wt.Path); err != nil {
			l.Debug("unpushed check failed", "path", wt.Path, "error", err)
		} else if unpushed {
			s.States = append(s.States, styles.StateUnpushed)
		}
		if wt.Locked {
			s.States = append(s.States, styles.StateLocked)
		}
		if isStale(wt, s.AgeDays, r.Config) {
			s.States = append(s.States, styles.StateStale)
		}

		statuses = append(statuses, s)
	}
	return statuses
}

// isStale reports whether wt is old enough to be a clean candidate. The
// main worktree, locked worktrees and the default branch are never stale.
func isStale(wt git.Worktree, ageDays int, cfg config.Config) bool {
	if wt.Main || wt.Locked || wt.Branch == cfg.DefaultBranch || ageDays < 0 {
		return false
	}
	return ageDays >= cfg.CleanThreshold
}
