// Package ui holds the interactive terminal prompts.
package ui

import (
	"io"
	"log/slog"
	"os"

	"github.com/babarot/tidyup/internal/ui/confirm"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// Confirm asks a yes/no question on out and reads the answer from in. The
// default is no, and it is returned without prompting when in is not a
// terminal.
func Confirm(prompt string, in io.Reader, out io.Writer) bool {
	m := confirm.New()
	m.Prompt = prompt
	m.DefaultValue = confirm.Denied

	if !isTerminal(in) {
		slog.Debug("stdin is not a terminal, using the default answer", "prompt", prompt, "answer", m.DefaultValue.String())
		return m.DefaultValue.IsAccepted()
	}

	p := tea.NewProgram(&m, tea.WithInput(in), tea.WithOutput(out))
	if _, err := p.Run(); err != nil {
		slog.Error("confirm failed", "error", err)
		return false
	}
	return m.Selected().IsAccepted()
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
