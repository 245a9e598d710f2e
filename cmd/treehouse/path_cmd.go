package main

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/treehouse/internal/log"
	"github.com/raphi011/treehouse/internal/output"
)

func newPathCmd(e *env) *cobra.Command {
	var copyPath bool

	cmd := &cobra.Command{
		Use:               "path <worktree>",
		Short:             "Print the path of a worktree",
		GroupID:           GroupCore,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeWorktree,
		Long: `Print the absolute path of a worktree.

With the shell integration ('treehouse shell'), 'treehouse path' changes
into the worktree instead.`,
		Example: `  treehouse path login          # Print path
  cd "$(treehouse path login)"   # Without shell integration
  treehouse path login --copy    # Also copy to clipboard`,
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

			if copyPath {
				if err := clipboard.WriteAll(wt.Path); err != nil {
					return fmt.Errorf("copy to clipboard: %w", err)
				}
				log.FromContext(ctx).Println("Copied path to clipboard")
			}

			output.FromContext(ctx).Println(wt.Path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyPath, "copy", "c", false, "Copy the path to the clipboard")

	return cmd
}
