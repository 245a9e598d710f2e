package main

import (
	"github.com/spf13/cobra"

	"github.com/raphi011/treehouse/internal/output"
	"github.com/raphi011/treehouse/internal/shell"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "shell <shell>",
		Short:     "Print shell integration",
		GroupID:   GroupConfig,
		ValidArgs: shell.Supported,
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		Long: `Print a shell function that wraps treehouse.

With the wrapper installed, 'treehouse add', 'treehouse pr' and
'treehouse path' change into the worktree instead of printing its path.`,
		Example: `  eval "$(treehouse shell zsh)"     # in ~/.zshrc
  eval "$(treehouse shell bash)"    # in ~/.bashrc
  treehouse shell fish | source     # in config.fish`,
		RunE: func(cmd *cobra.Command, args []string) error {
			script, err := shell.Script(args[0])
			if err != nil {
				return err
			}
			output.FromContext(cmd.Context()).Print(script)
			return nil
		},
	}
}
