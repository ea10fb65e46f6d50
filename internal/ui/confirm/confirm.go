// Package confirm is a single-key yes/no prompt for bubbletea.
package confirm

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jimschubert/answer/colors"
)

// Decision is the answer given to the prompt.
type Decision int

const (
	// Undecided means no key has been pressed and there is no default.
	Undecided Decision = iota
	Accepted
	Denied
)

func (d Decision) String() string {
	return [...]string{
		"undecided",
		"accepted",
		"denied",
	}[d]
}

func (d Decision) IsAccepted() bool {
	return d == Accepted
}

// Styles holds the lipgloss styles used by View.
type Styles struct {
	PromptPrefix lipgloss.Style
	Prompt       lipgloss.Style
	Text         lipgloss.Style
	Placeholder  lipgloss.Style
}

// Model asks one question and quits on the first y or n key. Enter keeps
// DefaultValue; Esc and Ctrl+C deny.
type Model struct {
	PromptPrefix         string
	Prompt               string
	AcceptedDecisionText string
	DeniedDecisionText   string
	DefaultValue         Decision
	Styles               Styles

	selected Decision
	text     textinput.Model
	done     bool
}

// New returns a prompt that defaults to Denied.
func New() Model {
	return Model{
		PromptPrefix:         "? ",
		AcceptedDecisionText: "y",
		DeniedDecisionText:   "n",
		DefaultValue:         Denied,
		Styles: Styles{
			PromptPrefix: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PromptPrefix)),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Placeholder)),
		},
	}
}

// Selected returns the decision, or DefaultValue before any key.
func (m *Model) Selected() Decision {
	return m.selected
}

// Value is the decision in the caller's wording.
func (m *Model) Value() string {
	switch m.selected {
	case Accepted:
		return m.AcceptedDecisionText
	case Denied:
		return m.DeniedDecisionText
	}
	return ""
}

// placeholder renders the choices with the default in upper case, e.g. "y/N".
func (m *Model) placeholder() string {
	yes, no := m.AcceptedDecisionText, m.DeniedDecisionText
	switch m.DefaultValue {
	case Accepted:
		yes = strings.ToUpper(yes)
	case Denied:
		no = strings.ToUpper(no)
	}
	return yes + "/" + no
}

func (m *Model) Init() tea.Cmd {
	m.selected = m.DefaultValue

	input := textinput.New()
	input.Placeholder = m.placeholder()
	input.Prompt = strings.TrimSuffix(m.Prompt, " ") + " "
	input.PromptStyle = m.Styles.Prompt
	input.PlaceholderStyle = m.Styles.Placeholder
	input.TextStyle = m.Styles.Text
	input.CharLimit = 1
	input.Focus()
	m.text = input
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.decide(Denied)
	case tea.KeyEnter:
		return m.decide(m.DefaultValue)
	}

	s := strings.ToLower(key.String())
	if s == "" || strings.ContainsFunc(s, func(r rune) bool { return !unicode.IsLetter(r) }) {
		return m, nil
	}
	switch s {
	case strings.ToLower(m.AcceptedDecisionText[:1]):
		return m.decide(Accepted)
	case strings.ToLower(m.DeniedDecisionText[:1]):
		return m.decide(Denied)
	}
	return m, nil
}

func (m *Model) decide(d Decision) (tea.Model, tea.Cmd) {
	m.selected = d
	m.done = true
	return m, tea.Quit
}

func (m *Model) View() string {
	var b strings.Builder
	if m.PromptPrefix != "" {
		b.WriteString(m.Styles.PromptPrefix.Inline(true).Render(m.PromptPrefix))
	}

	if m.done {
		b.WriteString(m.Styles.Prompt.Inline(true).Render(m.Prompt + " "))
		b.WriteString(m.Value())
		b.WriteRune('\n')
		return b.String()
	}

	b.WriteString(m.text.View())
	return b.String()
}
