package prompt

import (
	"context"
	"io"
	"os"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/mattn/go-isatty"

	"github.com/raphi011/treehouse/internal/ui/styles"
)

type lineModel struct {
	input     textinput.Model
	question  string
	done      bool
	cancelled bool
}

func newLineModel(question string) lineModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 64
	ti.SetWidth(20)
	ti.Focus()
	return lineModel{input: ti, question: question}
}

func (m lineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m lineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyPressMsg); ok {
		switch msg.String() {
		case "enter":
			m.done = true
			return m, tea.Quit
		case "ctrl+c", "esc":
			m.cancelled = true
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m lineModel) View() tea.View {
	if m.done {
		return tea.NewView("")
	}
	return tea.NewView(styles.PromptStyle.Render(m.question) + "\n" + m.input.View())
}

// answer returns the typed text, or ok == false if the prompt was cancelled.
func (m lineModel) answer() (string, bool) {
	if m.cancelled {
		return "", false
	}
	return m.input.Value(), true
}

// Terminal asks questions on a terminal.
type Terminal struct {
	In  *os.File
	Out io.Writer
}

// NewTerminal returns a Terminal reading stdin and drawing on stderr.
func NewTerminal() *Terminal {
	return &Terminal{In: os.Stdin, Out: os.Stderr}
}

// Interactive reports whether the terminal's input is a TTY.
func (t *Terminal) Interactive() bool {
	return IsTerminal(t.In)
}

// Line asks question and returns the typed line. ok is false when stdin is
// not a terminal, the prompt was cancelled, or the program failed.
func (t *Terminal) Line(ctx context.Context, question string) (string, bool) {
	if !t.Interactive() {
		return "", false
	}

	p := tea.NewProgram(newLineModel(question),
		tea.WithContext(ctx),
		tea.WithInput(t.In),
		tea.WithOutput(t.Out),
		tea.WithColorProfile(colorprofile.Detect(t.Out, os.Environ())),
	)
	final, err := p.Run()
	if err != nil {
		return "", false
	}
	m, ok := final.(lineModel)
	if !ok {
		return "", false
	}
	return m.answer()
}

// IsTerminal reports whether f is a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
