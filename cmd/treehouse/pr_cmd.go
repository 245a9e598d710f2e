package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/treehouse/internal/git"
	"github.com/raphi011/treehouse/internal/github"
	"github.com/raphi011/treehouse/internal/hooks"
	"github.com/raphi011/treehouse/internal/log"
	"github.com/raphi011/treehouse/internal/output"
	"github.com/raphi011/treehouse/internal/ui/styles"
)

func newPrCmd(e *env) *cobra.Command {
	var (
		noCopy bool
		noHook bool
	)

	cmd := &cobra.Command{
		Use:     "pr <number|url>",
		Short:   "Create a worktree for a pull request",
		GroupID: GroupPR,
		Args:    cobra.ExactArgs(1),
		Long: `Create a worktree for a GitHub pull request and print its path.

The pull request is looked up and checked out with the gh CLI, which must
be installed and authenticated. Fork pull requests work as well. If a
worktree for the pull request's branch exists, its path is printed.`,
		Example: `  treehouse pr 123
  treehouse pr '#123'
  treehouse pr https://github.com/org/repo/pull/123`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)
			out := output.FromContext(ctx)

			ref, err := github.ParseRef(args[0])
			if err != nil {
				return err
			}
			if err := github.CheckGH(ctx); err != nil {
				return err
			}

			r, err := loadRepo(ctx)
			if err != nil {
				return err
			}

			pr, err := github.ViewPR(ctx, r.Root, ref)
			if err != nil {
				return err
			}
			l.Printf("%s %s\n", styles.FormatPRRef(pr.Number, pr.URL), pr.Title)

			if wt, ok := git.FindWorktreeForBranch(r.Worktrees, pr.HeadRefName); ok {
				l.Printf("Worktree for %s already exists\n", pr.HeadRefName)
				out.Println(wt.Path)
				return nil
			}

			path := r.Layout().PathForPR(pr.Number, pr.HeadRefName)
			l.Debug("pr", "number", pr.Number, "branch", pr.HeadRefName, "path", path)

			if _, err := git.AddWorktree(ctx, r.Root, git.AddOptions{Path: path, Detach: true}); err != nil {
				return err
			}
			if err := github.CheckoutPR(ctx, path, pr.Number); err != nil {
				if rmErr := git.RemoveWorktree(ctx, r.Root, path, true); rmErr != nil {
					l.Debug("cleanup after failed checkout", "path", path, "error", rmErr)
				}
				return err
			}
			// gh may name the local branch differently for forks.
			branch := pr.HeadRefName
			if b, err := git.CurrentBranch(ctx, path); err == nil && b != "" {
				branch = b
			}
			l.Println(styles.Done("Created worktree for %s", branch))

			setupWorktree(ctx, r, setupOptions{
				Path:    path,
				Branch:  branch,
				Trigger: hooks.TriggerPR,
				NoCopy:  noCopy,
				NoHook:  noHook,
			})

			out.Println(path)
			e.autoClean(ctx, r.Root, true, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCopy, "no-copy", false, "Skip copying copyFiles")
	cmd.Flags().BoolVar(&noHook, "no-hook", false, "Skip postCreate hooks")

	return cmd
}
