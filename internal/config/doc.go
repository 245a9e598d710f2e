// Package config handles the per-repository configuration record and the
// global user defaults of treehouse.
//
// # Per-repository record
//
// Each repository keeps a JSON file, .treehouse.json, at its root (the main
// working tree, or the git directory of a bare repository):
//
//	{
//	  "version": 2,
//	  "defaultBranch": "main",
//	  "copyFiles": [".env", "config/*.local.json"],
//	  "hooks": {"postCreate": ["npm install"]},
//	  "autoClean": true,
//	  "cleanThreshold": 7,
//	  "lastAutoCleanTime": 1767225600000
//	}
//
// The record is read and written whole through a [Store]. Comments are
// allowed in the file and dropped on the next write. Older schema versions
// are migrated in memory on load (see [Migrate]).
//
// # Global defaults
//
// ~/.config/treehouse/config.toml (or $TREEHOUSE_CONFIG) supplies the values
// a repository starts with before it has its own file:
//
//	worktree_format = "../{repo}-{branch}"
//	default_branch = "main"
//	clean_threshold = 7
//	auto_clean = false
//	copy_files = [".env"]
package config
