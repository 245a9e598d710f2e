package main

import (
	"context"
	"sync"

	"github.com/raphi011/treehouse/internal/log"
)

// background runs follow-up work after a command's primary output is done.
// Execute waits for it before the process exits.
type background struct {
	wg sync.WaitGroup
}

// Go runs fn on its own goroutine. fn gets a context that keeps the
// caller's values but is not cancelled with it, so a started worktree
// removal is never cut off halfway.
func (b *background) Go(ctx context.Context, name string, fn func(context.Context)) {
	ctx = context.WithoutCancel(ctx)
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				log.FromContext(ctx).Debug("background task panicked", "task", name, "panic", r)
			}
		}()
		fn(ctx)
	}()
}

// Wait blocks until all dispatched work has finished.
func (b *background) Wait() {
	b.wg.Wait()
}
