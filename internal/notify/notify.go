// Package notify abstracts the host's blocking modal message box. Inside the
// original host this was a real dialog; from a terminal it becomes a styled
// summary box, degrading to plain lines when stdout is not a terminal.
package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// Notifier shows a final, user-facing message for the run.
type Notifier interface {
	Success(title, message string)
	Failure(title, message string)
}

var (
	styleSuccessBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("10")).
			Padding(0, 2)

	styleFailureBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("9")).
			Padding(0, 2)

	styleTitle = lipgloss.NewStyle().Bold(true)
)

// Console writes notifications to a terminal-aware writer.
type Console struct {
	out   io.Writer
	fancy bool
}

// NewConsole returns a Console bound to stdout. Boxes and color are used only
// when stdout is a terminal.
func NewConsole() *Console {
	return &Console{
		out:   os.Stdout,
		fancy: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

func (c *Console) Success(title, message string) {
	c.box(styleSuccessBox, title, message)
}

func (c *Console) Failure(title, message string) {
	c.box(styleFailureBox, title, message)
}

func (c *Console) box(style lipgloss.Style, title, message string) {
	if !c.fancy {
		fmt.Fprintf(c.out, "%s\n%s\n", title, message)
		return
	}
	body := styleTitle.Render(title) + "\n\n" + message
	fmt.Fprintln(c.out, style.Render(body))
}
