package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

const pausePrompt = "Press any key to exit..."

// pauseModel quits on the first key press
type pauseModel struct {
	prompt string
	done   bool
}

func (m pauseModel) Init() tea.Cmd {
	return nil
}

func (m pauseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		m.done = true
		return m, tea.Quit
	}
	return m, nil
}

func (m pauseModel) View() string {
	if m.done {
		return ""
	}
	return m.prompt + "\n"
}

// waitForKey blocks until a key is pressed on in
func waitForKey(in io.Reader, out io.Writer) error {
	program := tea.NewProgram(pauseModel{prompt: pausePrompt}, tea.WithInput(in), tea.WithOutput(out))
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to wait for key press: %w", err)
	}
	return nil
}

// isInteractive reports whether r is a terminal a person can type into
func isInteractive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
