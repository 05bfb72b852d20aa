package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

const (
	Title   = "Soulstone Survivors BepInEx Installer"
	Author  = "SoulstoneAddons"
	License = "GNU General Public License v3.0"
)

// Console prints colored status lines. It implements ports.Reporter.
type Console struct {
	out io.Writer

	stepStyle    lipgloss.Style
	successStyle lipgloss.Style
	failureStyle lipgloss.Style
	warnStyle    lipgloss.Style
	plainStyle   lipgloss.Style
}

// NewConsole creates a console writing to out. Colors are dropped when out
// is not a terminal.
func NewConsole(out io.Writer) *Console {
	renderer := lipgloss.NewRenderer(out)
	return &Console{
		out:          out,
		stepStyle:    renderer.NewStyle().Foreground(lipgloss.Color("#808080")),
		successStyle: renderer.NewStyle().Foreground(lipgloss.Color("10")),
		failureStyle: renderer.NewStyle().Foreground(lipgloss.Color("9")),
		warnStyle:    renderer.NewStyle().Foreground(lipgloss.Color("11")),
		plainStyle:   renderer.NewStyle().Foreground(lipgloss.Color("15")),
	}
}

func (c *Console) Step(msg string)    { c.println(c.stepStyle, msg) }
func (c *Console) Success(msg string) { c.println(c.successStyle, msg) }
func (c *Console) Failure(msg string) { c.println(c.failureStyle, msg) }
func (c *Console) Warn(msg string)    { c.println(c.warnStyle, msg) }
func (c *Console) Info(msg string)    { c.println(c.plainStyle, msg) }

func (c *Console) println(style lipgloss.Style, msg string) {
	if msg == "" {
		fmt.Fprintln(c.out)
		return
	}
	fmt.Fprintln(c.out, style.Render(msg))
}

// Banner sets the window title, hides the cursor and prints the header
func (c *Console) Banner(version string) {
	fmt.Fprintf(c.out, "\x1b]0;%s - v%s\x07", Title, version)
	fmt.Fprint(c.out, "\x1b[?25l")

	fmt.Fprintf(c.out, "%s v%s\n", Title, version)
	fmt.Fprintf(c.out, "Author: %s\n", Author)
	fmt.Fprintf(c.out, "License: %s\n", License)
	fmt.Fprintln(c.out)
}

// RestoreCursor shows the cursor hidden by Banner
func (c *Console) RestoreCursor() {
	fmt.Fprint(c.out, "\x1b[?25h")
}
