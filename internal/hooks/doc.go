// Package hooks runs the lifecycle hooks configured for a repository.
//
// Hooks are lists of shell commands in .treehouse.json:
//
//	"hooks": {
//	  "postCreate": ["npm install", "code {path}"],
//	  "preRemove":  ["docker compose -p {branch} down"],
//	  "postRemove": ["echo removed {branch}"]
//	}
//
// # Placeholder Substitution
//
//   - {path}: absolute worktree path
//   - {branch}: branch name (empty for detached worktrees)
//   - {repo}: repository name
//   - {root}: repository root
//   - {trigger}: command that fired the hook (add, pr, remove)
//
// Values are single-quoted for the shell. The same values are exported as
// TREEHOUSE_PATH, TREEHOUSE_BRANCH, TREEHOUSE_ROOT and TREEHOUSE_TRIGGER.
//
// # Execution
//
// Each command runs via `sh -c` with stdin attached and its output on
// stderr. postCreate and preRemove run inside the worktree; postRemove runs
// in the repository root because the worktree is gone by then.
//
// A failing postCreate hook is a warning ([RunNonFatal]). A failing
// preRemove hook stops the removal ([Run]) unless the caller forces it.
package hooks
