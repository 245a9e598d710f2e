package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphi011/treehouse/internal/git"
	"github.com/raphi011/treehouse/internal/hooks"
	"github.com/raphi011/treehouse/internal/log"
	"github.com/raphi011/treehouse/internal/output"
	"github.com/raphi011/treehouse/internal/ui/styles"
)

func newAddCmd(e *env) *cobra.Command {
	var (
		from   string
		noCopy bool
		noHook bool
	)

	cmd := &cobra.Command{
		Use:     "add <branch>",
		Short:   "Create a worktree for a branch",
		Aliases: []string{"a"},
		GroupID: GroupCore,
		Args:    cobra.ExactArgs(1),
		Long: `Create a worktree for a branch and print its path.

An existing local branch is checked out. A branch that only exists on
origin is fetched and tracked. Otherwise a new branch is created from
--from, or from origin/<defaultBranch> (falling back to the local
default branch).

The configured copyFiles are copied from the default-branch worktree and
postCreate hooks run in the new worktree. If a worktree for the branch
already exists, its path is printed instead.`,
		Example: `  treehouse add feature/login              # New or existing branch
  treehouse add hotfix --from v1.2.0       # New branch from a tag
  treehouse add spike --no-copy --no-hook  # Bare worktree, no setup`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)
			branch := args[0]

			r, err := loadRepo(ctx)
			if err != nil {
				return err
			}

			if wt, ok := git.FindWorktreeForBranch(r.Worktrees, branch); ok {
				l.Printf("Worktree for %s already exists\n", branch)
				out.Println(wt.Path)
				return nil
			}

			path := r.Layout().Path(branch)
			base := from
			if base == "" {
				base = defaultBase(ctx, r)
			}
			l.Debug("add", "branch", branch, "path", path, "base", base)

			mode, err := git.AddWorktree(ctx, r.Root, git.AddOptions{Path: path, Branch: branch, Base: base})
			if err != nil {
				return err
			}
			l.Println(styles.Done("Created worktree for %s (%s)", branch, describeAddMode(mode, base)))

			setupWorktree(ctx, r, setupOptions{
				Path:    path,
				Branch:  branch,
				Trigger: hooks.TriggerAdd,
				NoCopy:  noCopy,
				NoHook:  noHook,
			})

			out.Println(path)
			e.autoClean(ctx, r.Root, true, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Start point for a new branch")
	cmd.Flags().BoolVar(&noCopy, "no-copy", false, "Skip copying copyFiles")
	cmd.Flags().BoolVar(&noHook, "no-hook", false, "Skip postCreate hooks")

	return cmd
}

// defaultBase returns origin/<defaultBranch> if it exists, else the local
// default branch.
func defaultBase(ctx context.Context, r *repo) string {
	if git.RemoteBranchExists(ctx, r.Root, r.Config.DefaultBranch) {
		return "origin/" + r.Config.DefaultBranch
	}
	if git.BranchExists(ctx, r.Root, r.Config.DefaultBranch) {
		return r.Config.DefaultBranch
	}
	return ""
}

func describeAddMode(mode git.AddMode, base string) string {
	switch mode {
	case git.AddExisting:
		return "existing branch"
	case git.AddTracking:
		return "tracking origin"
	case git.AddDetached:
		return "detached"
	}
	if base == "" {
		return "new branch from HEAD"
	}
	return fmt.Sprintf("new branch from %s", base)
}
