package autoclean

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/raphi011/treehouse/internal/config"
)

const testRoot = "/repo"

type memStore struct {
	cfg     config.Config
	loadErr error
	saveErr error
	loads   int
	saves   []config.Config
}

func (s *memStore) Load(context.Context) (config.Config, string, error) {
	s.loads++
	if s.loadErr != nil {
		return config.Config{}, "", s.loadErr
	}
	return s.cfg, testRoot, nil
}

func (s *memStore) Save(_ context.Context, root string, cfg config.Config) error {
	if root != testRoot {
		return errors.New("unexpected root " + root)
	}
	if s.saveErr != nil {
		return s.saveErr
	}
	s.cfg = cfg
	s.saves = append(s.saves, cfg)
	return nil
}

func (s *memStore) last() (time.Time, bool) {
	return s.cfg.LastAutoClean()
}

type fakeTree struct {
	wt       Worktree
	age      int
	dirty    bool
	unpushed bool
}

type fakeBackend struct {
	trees     []fakeTree
	listErr   error
	ageErr    error
	statusErr error
	removeErr map[string]error
	panicOn   string

	listCalls   int
	ageCalls    []string
	dirtyCalls  []string
	pushedCalls []string
	removed     []string
	forced      bool
}

func (b *fakeBackend) oracleCalls() int {
	return b.listCalls + len(b.ageCalls) + len(b.dirtyCalls) + len(b.pushedCalls)
}

func (b *fakeBackend) find(path string) *fakeTree {
	for i := range b.trees {
		if b.trees[i].wt.Path == path {
			return &b.trees[i]
		}
	}
	return nil
}

func (b *fakeBackend) ListWorktrees(context.Context) ([]Worktree, error) {
	b.listCalls++
	if b.listErr != nil {
		return nil, b.listErr
	}
	var out []Worktree
	for _, t := range b.trees {
		out = append(out, t.wt)
	}
	return out, nil
}

func (b *fakeBackend) WorktreeAgeDays(_ context.Context, path string) (int, error) {
	b.ageCalls = append(b.ageCalls, path)
	if path == b.panicOn {
		panic("age oracle exploded")
	}
	if b.ageErr != nil {
		return 0, b.ageErr
	}
	return b.find(path).age, nil
}

func (b *fakeBackend) HasUncommittedChanges(_ context.Context, path string) (bool, error) {
	b.dirtyCalls = append(b.dirtyCalls, path)
	if b.statusErr != nil {
		return false, b.statusErr
	}
	return b.find(path).dirty, nil
}

func (b *fakeBackend) HasUnpushedCommits(_ context.Context, path string) (bool, error) {
	b.pushedCalls = append(b.pushedCalls, path)
	return b.find(path).unpushed, nil
}

func (b *fakeBackend) RemoveWorktree(_ context.Context, path string, force bool) error {
	if force {
		b.forced = true
	}
	if err := b.removeErr[path]; err != nil {
		return err
	}
	b.trees = slices.DeleteFunc(b.trees, func(t fakeTree) bool { return t.wt.Path == path })
	b.removed = append(b.removed, path)
	return nil
}

func (b *fakeBackend) present(path string) bool {
	return b.find(path) != nil
}

type fakePrompter struct {
	answer string
	ok     bool
	calls  []string
	// onPrompt observes engine state while the question is open.
	onPrompt func()
}

func (p *fakePrompter) Line(_ context.Context, message string) (string, bool) {
	p.calls = append(p.calls, message)
	if p.onPrompt != nil {
		p.onPrompt()
	}
	return p.answer, p.ok
}

type clock struct{ t time.Time }

func (c *clock) Now() time.Time { return c.t }

func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

var epoch = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

func enabledConfig(threshold int) config.Config {
	cfg := config.Default()
	cfg.AutoClean = true
	cfg.CleanThreshold = threshold
	return cfg
}

func newEngine(store *memStore, backend *fakeBackend, prompter *fakePrompter, c *clock) *Engine {
	e := New(store, backend, prompter)
	e.Now = c.Now
	return e
}

func tree(path, branch string, age int) fakeTree {
	return fakeTree{wt: Worktree{Path: path, Branch: branch}, age: age}
}

func mainTree() fakeTree {
	return fakeTree{wt: Worktree{Path: testRoot, Branch: "main", Main: true}, age: 400}
}
