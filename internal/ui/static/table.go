// Package static provides non-interactive terminal output components.
package static

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"

	"github.com/raphi011/treehouse/internal/ui/styles"
)

// RenderTable renders rows under headers with aligned columns and no borders.
func RenderTable(headers []string, rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}

	t := table.New().
		Headers(headers...).
		Rows(rows...).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		BorderColumn(false).
		BorderRow(false).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.HeaderStyle
			}
			return styles.CellStyle
		})

	return t.String() + "\n"
}

// WorktreeRow is one line of the worktree list.
type WorktreeRow struct {
	Branch  string
	AgeDays int
	States  []string
	Path    string
	Current bool
}

// WorktreeHeaders are the column titles for WorktreeTable.
var WorktreeHeaders = []string{"BRANCH", "AGE", "STATE", "PATH"}

// WorktreeTable renders the worktree list. The current worktree is marked with "*".
func WorktreeTable(rows []WorktreeRow) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = worktreeCells(r)
	}
	return RenderTable(WorktreeHeaders, cells)
}

func worktreeCells(r WorktreeRow) []string {
	branch := r.Branch
	if branch == "" {
		branch = styles.MutedStyle.Render("(detached)")
	}
	if r.Current {
		branch = "* " + branch
	} else {
		branch = "  " + branch
	}
	return []string{branch, FormatAge(r.AgeDays), styles.FormatStates(r.States), r.Path}
}

// FormatAge renders whole days in a compact human form.
func FormatAge(days int) string {
	switch {
	case days < 0:
		return "-"
	case days == 0:
		return "today"
	case days == 1:
		return "1 day"
	case days < 14:
		return fmt.Sprintf("%d days", days)
	case days < 60:
		return fmt.Sprintf("%d weeks", days/7)
	default:
		return fmt.Sprintf("%d months", days/30)
	}
}

// Indent prefixes every non-empty line of s.
func Indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
