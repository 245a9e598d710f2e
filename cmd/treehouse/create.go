package main

import (
	"context"

	"github.com/raphi011/treehouse/internal/copyfiles"
	"github.com/raphi011/treehouse/internal/hooks"
	"github.com/raphi011/treehouse/internal/log"
	"github.com/raphi011/treehouse/internal/ui/styles"
)

// setupOptions controls what happens in a freshly created worktree.
type setupOptions struct {
	Path    string
	Branch  string
	Trigger hooks.Trigger
	NoCopy  bool
	NoHook  bool
}

// setupWorktree copies the configured files into a new worktree and runs
// its postCreate hooks. Failures are warnings: the worktree exists either way.
func setupWorktree(ctx context.Context, r *repo, opts setupOptions) {
	l := log.FromContext(ctx)

	if !opts.NoCopy && len(r.Config.CopyFiles) > 0 {
		src := copyfiles.SourceWorktree(r.Worktrees, r.Config.DefaultBranch, r.Root, opts.Path)
		res, err := copyfiles.Copy(ctx, src, opts.Path, r.Config.CopyFiles, false)
		if err != nil {
			l.Println(styles.Warn("copy files: %v", err))
		} else if len(res.Copied) > 0 {
			l.Printf("Copied %d file(s) from %s\n", len(res.Copied), src)
		}
	}

	if opts.NoHook {
		return
	}
	hooks.RunNonFatal(ctx, r.Config.Hooks, hooks.PostCreate, hooks.Context{
		Path:    opts.Path,
		Branch:  opts.Branch,
		Repo:    r.Name,
		Root:    r.Root,
		Trigger: opts.Trigger,
	})
}
