package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/cobra"

	"github.com/raphi011/treehouse/internal/config"
	"github.com/raphi011/treehouse/internal/git"
	"github.com/raphi011/treehouse/internal/log"
	"github.com/raphi011/treehouse/internal/output"
	"github.com/raphi011/treehouse/internal/ui/prompt"
	"github.com/raphi011/treehouse/internal/ui/styles"
)

// Command group IDs for organizing help output
const (
	GroupCore   = "core"
	GroupPR     = "pr"
	GroupMaint  = "maintenance"
	GroupConfig = "config"
)

// env is the state shared by all commands of one invocation.
type env struct {
	workDir string
	global  config.Global
	term    *prompt.Terminal
	bg      *background
	stderr  io.Writer
}

func newEnv(workDir string, global config.Global, stderr io.Writer) *env {
	return &env{
		workDir: workDir,
		global:  global,
		term:    prompt.NewTerminal(),
		bg:      &background{},
		stderr:  stderr,
	}
}

func newRootCmd(e *env) *cobra.Command {
	var verbose, quiet bool

	root := &cobra.Command{
		Use:   "treehouse",
		Short: "Git worktree helper with automatic cleanup",
		Long: `treehouse creates, lists and removes git worktrees.

New worktrees get untracked files such as .env copied in and can run
postCreate hooks. Worktrees that are old, clean and fully pushed can be
cleaned up manually (treehouse clean) or automatically once a day
(treehouse config set autoClean true).`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			ctx := log.WithLogger(cmd.Context(), log.New(e.stderr, verbose, quiet))
			cmd.SetContext(ctx)

			switch cmd.Name() {
			case "completion", "__complete", "help", "version", "shell":
				return nil
			}
			return git.CheckGit()
		},
	}

	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	root.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	root.MarkFlagsMutuallyExclusive("verbose", "quiet")

	root.Version = versionString()
	root.SetVersionTemplate("{{.Version}}\n")

	root.AddGroup(
		&cobra.Group{ID: GroupCore, Title: "Core Commands:"},
		&cobra.Group{ID: GroupPR, Title: "Pull Request Commands:"},
		&cobra.Group{ID: GroupMaint, Title: "Maintenance Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	root.AddCommand(
		newAddCmd(e),
		newListCmd(e),
		newPathCmd(e),
		newCopyCmd(e),
		newRemoveCmd(e),
		newPrCmd(e),
		newCleanCmd(e),
		newLockCmd(e),
		newUnlockCmd(e),
		newConfigCmd(e),
		newShellCmd(),
		newCompletionCmd(),
		newVersionCmd(),
	)

	return root
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	stdout := colorprofile.NewWriter(os.Stdout, os.Environ())
	stderr := colorprofile.NewWriter(os.Stderr, os.Environ())

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(stderr, "treehouse: failed to get working directory: %v\n", err)
		os.Exit(1)
	}

	global, err := config.LoadGlobal()
	if err != nil {
		fmt.Fprintln(stderr, styles.Warn("%v", err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	e := newEnv(workDir, global, stderr)
	ctx = log.WithLogger(ctx, log.New(stderr, false, false))
	ctx = output.WithPrinter(ctx, stdout)
	ctx = config.WithStore(ctx, &config.FileStore{Dir: workDir, Global: global})

	root := newRootCmd(e)
	root.SetOut(stdout)
	root.SetErr(stderr)
	err = root.ExecuteContext(ctx)
	e.bg.Wait()

	if err != nil {
		fmt.Fprintln(stderr, styles.ErrorStyle.Render("Error:"), err)
		cancel()
		os.Exit(1)
	}
}
