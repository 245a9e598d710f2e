// Package styles provides shared lipgloss styles for UI components.
//
// Colors are plain ANSI-256 values. Output written through a
// colorprofile.Writer (see cmd/treehouse) is downsampled or stripped when
// the destination is not a colour terminal.
package styles

import "charm.land/lipgloss/v2"

// Palette
var (
	Primary = lipgloss.Color("62")  // cyan/teal
	Success = lipgloss.Color("82")  // green
	Error   = lipgloss.Color("196") // red
	Warning = lipgloss.Color("214") // orange
	Muted   = lipgloss.Color("240") // dark gray
	Info    = lipgloss.Color("244") // gray
)

var (
	Bold = lipgloss.NewStyle().Bold(true)

	PrimaryStyle = lipgloss.NewStyle().Foreground(Primary)
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning)
	MutedStyle   = lipgloss.NewStyle().Foreground(Muted)
	InfoStyle    = lipgloss.NewStyle().Foreground(Info).Italic(true)

	// PromptStyle renders questions asked by the prompt package.
	PromptStyle = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	// HeaderStyle renders table headers.
	HeaderStyle = lipgloss.NewStyle().Bold(true).PaddingRight(2)

	// CellStyle renders table cells.
	CellStyle = lipgloss.NewStyle().PaddingRight(2)
)
