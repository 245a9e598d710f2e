package prompt

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case "ctrl+c":
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	default:
		return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
}

func typeText(m lineModel, text string) lineModel {
	for _, r := range text {
		updated, _ := m.Update(keyPress(string(r)))
		m = updated.(lineModel)
	}
	return m
}

func TestLineModel_Update(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		key       string
		done      bool
		cancelled bool
		wantQuit  bool
	}{
		{"enter submits", "enter", true, false, true},
		{"ctrl+c cancels", "ctrl+c", true, true, true},
		{"esc cancels", "esc", true, true, true},
		{"letter is typed", "y", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newLineModel("Remove 2 worktrees? [Y/n]")
			updated, cmd := m.Update(keyPress(tt.key))
			um := updated.(lineModel)

			if um.done != tt.done {
				t.Errorf("done = %v, want %v", um.done, tt.done)
			}
			if um.cancelled != tt.cancelled {
				t.Errorf("cancelled = %v, want %v", um.cancelled, tt.cancelled)
			}
			if tt.wantQuit && cmd == nil {
				t.Error("expected a quit command")
			}
		})
	}
}

func TestLineModel_Answer(t *testing.T) {
	t.Parallel()

	m := typeText(newLineModel("?"), "yes")
	updated, _ := m.Update(keyPress("enter"))
	got, ok := updated.(lineModel).answer()
	if !ok || got != "yes" {
		t.Errorf("answer() = %q, %v; want yes, true", got, ok)
	}

	m = typeText(newLineModel("?"), "yes")
	updated, _ = m.Update(keyPress("esc"))
	if got, ok := updated.(lineModel).answer(); ok || got != "" {
		t.Errorf("cancelled answer() = %q, %v; want empty, false", got, ok)
	}
}

func TestLineModel_EmptyEnter(t *testing.T) {
	t.Parallel()

	updated, _ := newLineModel("?").Update(keyPress("enter"))
	got, ok := updated.(lineModel).answer()
	if !ok || got != "" {
		t.Errorf("answer() = %q, %v; want empty, true", got, ok)
	}
}

func TestLineModel_View(t *testing.T) {
	t.Parallel()

	m := newLineModel("Delete stale worktrees?")
	if !strings.Contains(m.View().Content, "Delete stale worktrees?") {
		t.Errorf("View() should show the question, got %q", m.View().Content)
	}

	updated, _ := m.Update(keyPress("enter"))
	if content := updated.(lineModel).View().Content; content != "" {
		t.Errorf("View() after done = %q, want empty", content)
	}
}

func TestTerminal_LineWithoutTTY(t *testing.T) {
	t.Parallel()

	f, err := os.Create(filepath.Join(t.TempDir(), "stdin"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	term := &Terminal{In: f, Out: f}
	if term.Interactive() {
		t.Fatal("regular file should not be interactive")
	}
	if got, ok := term.Line(context.Background(), "Continue?"); ok || got != "" {
		t.Errorf("Line() = %q, %v; want empty, false", got, ok)
	}
}

func TestIsTerminal_Nil(t *testing.T) {
	t.Parallel()

	if IsTerminal(nil) {
		t.Error("nil file should not be a terminal")
	}
}
