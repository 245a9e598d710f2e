package styles

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Worktree states shown by `treehouse list`.
const (
	StateDirty    = "dirty"
	StateUnpushed = "unpushed"
	StateLocked   = "locked"
	StateStale    = "stale"
	StatePrunable = "prunable"
)

// Status symbols
const (
	SymbolOK      = "✓"
	SymbolFailed  = "✗"
	SymbolWarning = "!"
)

// FormatStates renders worktree states as a comma-separated, coloured list.
// A worktree without any state renders as a muted "clean".
func FormatStates(states []string) string {
	if len(states) == 0 {
		return MutedStyle.Render("clean")
	}
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = stateStyle(s).Render(s)
	}
	return strings.Join(parts, ",")
}

func stateStyle(state string) lipgloss.Style {
	switch state {
	case StateDirty, StateUnpushed:
		return WarningStyle
	case StateLocked:
		return PrimaryStyle
	case StateStale, StatePrunable:
		return ErrorStyle
	default:
		return MutedStyle
	}
}

// Done formats a success line.
func Done(format string, args ...any) string {
	return SuccessStyle.Render(SymbolOK) + " " + fmt.Sprintf(format, args...)
}

// Failed formats a failure line.
func Failed(format string, args ...any) string {
	return ErrorStyle.Render(SymbolFailed) + " " + fmt.Sprintf(format, args...)
}

// Warn formats a warning line.
func Warn(format string, args ...any) string {
	return WarningStyle.Render(SymbolWarning) + " " + fmt.Sprintf(format, args...)
}

// FormatPRRef returns #<number>, hyperlinked to url when one is given.
func FormatPRRef(number int, url string) string {
	if number == 0 {
		return ""
	}
	text := SuccessStyle.Render(fmt.Sprintf("#%d", number))
	if url == "" {
		return text
	}
	return ansi.SetHyperlink(url) + text + ansi.ResetHyperlink()
}
