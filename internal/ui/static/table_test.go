package static

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestRenderTable_Empty(t *testing.T) {
	t.Parallel()

	if got := RenderTable([]string{"A"}, nil); got != "" {
		t.Errorf("RenderTable with no rows = %q, want empty", got)
	}
}

func TestRenderTable_Aligned(t *testing.T) {
	t.Parallel()

	out := ansi.Strip(RenderTable([]string{"NAME", "PATH"}, [][]string{
		{"a", "/x"},
		{"longer-name", "/y"},
	}))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), out)
	}
	col := strings.Index(lines[0], "PATH")
	for _, l := range lines[1:] {
		if strings.Index(l, "/") != col {
			t.Errorf("column not aligned in %q (want PATH column at %d)", l, col)
		}
	}
}

func TestWorktreeTable(t *testing.T) {
	t.Parallel()

	out := ansi.Strip(WorktreeTable([]WorktreeRow{
		{Branch: "main", AgeDays: 40, Path: "/repo", Current: true},
		{Branch: "feat", AgeDays: 9, States: []string{"dirty", "stale"}, Path: "/repo-feat"},
		{AgeDays: 0, Path: "/repo-detached"},
	}))

	for _, want := range []string{"BRANCH", "* main", "  feat", "dirty,stale", "clean", "(detached)", "/repo-detached", "today", "9 days"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}
}

func TestFormatAge(t *testing.T) {
	t.Parallel()

	tests := []struct {
		days int
		want string
	}{
		{-1, "-"},
		{0, "today"},
		{1, "1 day"},
		{13, "13 days"},
		{14, "2 weeks"},
		{59, "8 weeks"},
		{90, "3 months"},
	}
	for _, tt := range tests {
		if got := FormatAge(tt.days); got != tt.want {
			t.Errorf("FormatAge(%d) = %q, want %q", tt.days, got, tt.want)
		}
	}
}

func TestIndent(t *testing.T) {
	t.Parallel()

	if got := Indent("a\n\nb\n", "  "); got != "  a\n\n  b\n" {
		t.Errorf("Indent() = %q", got)
	}
}
