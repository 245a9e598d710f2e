package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/treehouse/internal/copyfiles"
	"github.com/raphi011/treehouse/internal/log"
	"github.com/raphi011/treehouse/internal/ui/styles"
)

func newCopyCmd(e *env) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:               "copy <worktree> [pattern...]",
		Short:             "Copy untracked files into a worktree",
		Aliases:           []string{"cp"},
		GroupID:           GroupCore,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeWorktree,
		Long: `Copy files such as .env or local settings into a worktree.

Patterns are globs relative to the source worktree (the worktree on the
default branch, else the repository root). Directories are copied
recursively. Without patterns the configured copyFiles are used.
Existing files are kept unless --force is given.`,
		Example: `  treehouse copy feature/login                  # Configured copyFiles
  treehouse copy login .env '.vscode/*'         # Explicit patterns
  treehouse copy login .env --force             # Overwrite`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			r, err := loadRepo(ctx)
			if err != nil {
				return err
			}
			wt, err := e.resolveWorktree(r, args[0])
			if err != nil {
				return err
			}

			patterns := args[1:]
			if len(patterns) == 0 {
				patterns = r.Config.CopyFiles
			}
			if len(patterns) == 0 {
				l.Println("Nothing to copy: no patterns given and copyFiles is empty")
				return nil
			}

			src := copyfiles.SourceWorktree(r.Worktrees, r.Config.DefaultBranch, r.Root, wt.Path)
			res, err := copyfiles.Copy(ctx, src, wt.Path, patterns, force)
			if err != nil {
				return err
			}

			for _, p := range res.Copied {
				l.Println(styles.Done("%s", p))
			}
			for _, p := range res.Skipped {
				l.Println(styles.Warn("%s exists, skipped", p))
			}
			l.Printf("Copied %d file(s), skipped %d\n", len(res.Copied), len(res.Skipped))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing files")

	return cmd
}
