// Package resolve maps a command-line argument to one worktree.
//
// The argument is tried, in order, as:
//
//  1. an exact branch name
//  2. a path (absolute, or relative to the working directory)
//  3. the base name of a worktree directory
//  4. a fuzzy match against branch names and base names
//
// The first step that yields exactly one worktree wins. A fuzzy query that
// matches several worktrees returns [ErrAmbiguous] listing them.
package resolve
