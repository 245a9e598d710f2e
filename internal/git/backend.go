package git

import (
	"context"
	"time"
)

// Backend answers worktree queries for the repository containing Dir.
// It satisfies the inventory, oracle and remover interfaces of the
// auto-clean engine.
type Backend struct {
	Dir string
	Now func() time.Time // defaults to time.Now
}

// NewBackend returns a Backend for the repository containing dir.
func NewBackend(dir string) *Backend {
	return &Backend{Dir: dir, Now: time.Now}
}

func (b *Backend) ListWorktrees(ctx context.Context) ([]Worktree, error) {
	return ListWorktrees(ctx, b.Dir)
}

func (b *Backend) WorktreeAgeDays(_ context.Context, path string) (int, error) {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}
	return WorktreeAgeDays(path, now())
}

func (b *Backend) HasUncommittedChanges(ctx context.Context, path string) (bool, error) {
	return HasUncommittedChanges(ctx, path)
}

func (b *Backend) HasUnpushedCommits(ctx context.Context, path string) (bool, error) {
	return HasUnpushedCommits(ctx, path)
}

func (b *Backend) RemoveWorktree(ctx context.Context, path string, force bool) error {
	return RemoveWorktree(ctx, b.Dir, path, force)
}
