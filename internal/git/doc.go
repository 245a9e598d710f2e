// Package git provides git operations via shell commands.
//
// Operations call the git CLI rather than a Go git library so that user
// configuration (SSH keys, credential helpers, hooks) applies unchanged.
// go-git is used only as a fallback when a status query through the CLI
// fails.
//
// # Worktree Operations
//
//   - [ListWorktrees]: Parse "git worktree list --porcelain"
//   - [AddWorktree]: Create a worktree for a new, local or remote branch
//   - [RemoveWorktree]: Remove a worktree, optionally forced
//   - [LockWorktree], [UnlockWorktree]: Protect a worktree from removal
//
// # Oracles
//
// The auto-clean engine asks three questions about a worktree:
//
//   - [WorktreeAgeDays]: Days since the worktree was created
//   - [HasUncommittedChanges]: Modified, staged or untracked files
//   - [HasUnpushedCommits]: Commits not on the upstream (or any remote)
//
// [Backend] bundles these for one repository so they can be injected.
package git
