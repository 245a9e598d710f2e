// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// Failures carry the command's stderr so a git or gh error message reaches
// the user verbatim:
//
//	if err := cmd.RunContext(ctx, repoDir, "git", "fetch", "origin"); err != nil {
//	    return fmt.Errorf("fetch: %w", err)
//	}
//
// Every invocation is traced through the context logger in verbose mode.
package cmd
