package hooks

import (
	"context"
	"fmt"
	"strings"

	"github.com/raphi011/treehouse/internal/cmd"
	"github.com/raphi011/treehouse/internal/config"
	"github.com/raphi011/treehouse/internal/log"
	"github.com/raphi011/treehouse/internal/ui/styles"
)

// Event names a point in the worktree lifecycle.
type Event string

const (
	PostCreate Event = "postCreate"
	PreRemove  Event = "preRemove"
	PostRemove Event = "postRemove"
)

// Trigger names the command that fired a hook.
type Trigger string

const (
	TriggerAdd    Trigger = "add"
	TriggerPR     Trigger = "pr"
	TriggerRemove Trigger = "remove"
)

// Context holds the values for placeholder substitution.
type Context struct {
	Path    string // absolute worktree path
	Branch  string
	Repo    string // repository name
	Root    string // repository root
	Trigger Trigger
}

// Commands returns the configured commands for event.
func Commands(h config.Hooks, event Event) []string {
	switch event {
	case PostCreate:
		return h.PostCreate
	case PreRemove:
		return h.PreRemove
	case PostRemove:
		return h.PostRemove
	}
	return nil
}

// Dir returns the working directory hooks for event run in.
func (c Context) Dir(event Event) string {
	if event == PostRemove {
		return c.Root
	}
	return c.Path
}

// Env returns the TREEHOUSE_* variables exported to hook commands.
func (c Context) Env() []string {
	return []string{
		"TREEHOUSE_PATH=" + c.Path,
		"TREEHOUSE_BRANCH=" + c.Branch,
		"TREEHOUSE_ROOT=" + c.Root,
		"TREEHOUSE_TRIGGER=" + string(c.Trigger),
	}
}

// Run executes the commands for event in order and stops at the first failure.
func Run(ctx context.Context, h config.Hooks, event Event, hc Context) error {
	for _, command := range Commands(h, event) {
		if err := runHook(ctx, event, command, hc); err != nil {
			return fmt.Errorf("%s hook %q failed: %w", event, command, err)
		}
	}
	return nil
}

// RunNonFatal executes every command for event, logging failures as warnings.
// It returns the number of failed commands.
func RunNonFatal(ctx context.Context, h config.Hooks, event Event, hc Context) int {
	l := log.FromContext(ctx)
	failed := 0
	for _, command := range Commands(h, event) {
		if err := runHook(ctx, event, command, hc); err != nil {
			l.Println(styles.Warn("%s hook %q failed: %v", event, command, err))
			failed++
		}
	}
	return failed
}

func runHook(ctx context.Context, event Event, command string, hc Context) error {
	script := SubstitutePlaceholders(command, hc)
	log.FromContext(ctx).Printf("Running %s hook: %s\n", event, command)
	return cmd.Passthrough(ctx, hc.Dir(event), hc.Env(), "sh", "-c", script)
}

// shellQuote escapes a string for safe use in shell commands.
// e.g., "it's" becomes 'it'\''s'
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// SubstitutePlaceholders replaces {placeholder} with shell-quoted values from hc.
// Unknown placeholders are left untouched.
func SubstitutePlaceholders(command string, hc Context) string {
	r := strings.NewReplacer(
		"{path}", shellQuote(hc.Path),
		"{branch}", shellQuote(hc.Branch),
		"{repo}", shellQuote(hc.Repo),
		"{root}", shellQuote(hc.Root),
		"{trigger}", shellQuote(string(hc.Trigger)),
	)
	return r.Replace(command)
}
