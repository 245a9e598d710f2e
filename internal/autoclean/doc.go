// Package autoclean decides which worktrees are stale and removes them.
//
// A worktree is cleanable when all of these hold:
//
//   - it is not the bare entry, the main working tree, locked or prunable
//   - its branch is not the repository's default branch
//   - its path is not listed in [Engine.Keep]
//   - it is at least cleanThreshold days old
//   - it has neither uncommitted changes nor unpushed commits
//
// [Engine.RunSilent] and [Engine.RunInteractive] run at most once per
// [Cooldown] per repository, tracked by lastAutoCleanTime in the repository
// config. Both ride along other commands and never return an error: every
// failure degrades to "did nothing this time".
package autoclean
