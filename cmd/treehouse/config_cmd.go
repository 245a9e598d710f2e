package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/raphi011/treehouse/internal/config"
	"github.com/raphi011/treehouse/internal/log"
	"github.com/raphi011/treehouse/internal/output"
	"github.com/raphi011/treehouse/internal/ui/styles"
)

func newConfigCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage treehouse configuration.

Repository config: .treehouse.json in the repository root
Global defaults:   ~/.config/treehouse/config.toml ($TREEHOUSE_CONFIG)

Repository values override global defaults.`,
		Example: `  treehouse config show                     # Effective config
  treehouse config set autoClean true       # Enable auto-clean
  treehouse config set copyFiles .env,.envrc
  treehouse config init --global            # Create global defaults`,
	}

	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigGetCmd())
	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigInitCmd(e))

	return cmd
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective repository config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := storeFrom(ctx)
			if err != nil {
				return err
			}
			cfg, root, err := store.Load(ctx)
			if err != nil {
				return err
			}
			log.FromContext(ctx).Debug("config", "path", filepath.Join(root, config.FileName))
			return output.FromContext(ctx).JSON(cfg)
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "get <key>",
		Short:     "Print one config value",
		Args:      cobra.ExactArgs(1),
		ValidArgs: config.Keys,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := storeFrom(ctx)
			if err != nil {
				return err
			}
			cfg, _, err := store.Load(ctx)
			if err != nil {
				return err
			}
			value, err := cfg.Get(args[0])
			if err != nil {
				return err
			}
			output.FromContext(ctx).Println(value)
			return nil
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one config value",
		Long: `Set one repository config value.

Lists (copyFiles, hooks.*) are comma-separated; an empty value clears
them. cleanThreshold must be zero or positive, autoClean a boolean.`,
		Example: `  treehouse config set cleanThreshold 14
  treehouse config set hooks.postCreate "npm install,direnv allow"
  treehouse config set copyFiles ""`,
		Args: cobra.ExactArgs(2),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return config.Keys, cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := storeFrom(ctx)
			if err != nil {
				return err
			}
			cfg, root, err := store.Load(ctx)
			if err != nil {
				return err
			}
			if err := cfg.Set(args[0], args[1]); err != nil {
				return err
			}
			if err := store.Save(ctx, root, cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			log.FromContext(ctx).Println(styles.Done("Set %s", args[0]))
			return nil
		},
	}
}

func newConfigInitCmd(e *env) *cobra.Command {
	var (
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default config file",
		Args:  cobra.NoArgs,
		Long: `Create a default config file.

Without flags, writes .treehouse.json into the repository root using the
global defaults. With --global, writes the global defaults file.

A repository config file created by treehouse (here, by config set, or by
the first auto-clean run) is listed in .git/info/exclude so it stays out of
git status. To share it with the team, commit it with git add -f.`,
		Example: `  treehouse config init            # Repository config
  treehouse config init --global   # Global defaults
  treehouse config init -f         # Overwrite existing config`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l := log.FromContext(ctx)

			if global {
				path, err := config.InitGlobal(force)
				if err != nil {
					return err
				}
				l.Println(styles.Done("Created global config: %s", path))
				return nil
			}

			store, err := storeFrom(ctx)
			if err != nil {
				return err
			}
			_, root, err := store.Load(ctx)
			if err != nil {
				return err
			}

			path := filepath.Join(root, config.FileName)
			if !force {
				if _, err := os.Stat(path); err == nil {
					return fmt.Errorf("config file already exists: %s (use -f to overwrite)", path)
				}
			}
			if err := store.Save(ctx, root, e.global.Defaults()); err != nil {
				return err
			}
			l.Println(styles.Done("Created config: %s", path))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&global, "global", "g", false, "Create the global defaults file")

	return cmd
}
