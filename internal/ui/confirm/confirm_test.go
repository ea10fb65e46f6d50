package confirm

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name     string
		def      Decision
		key      tea.KeyMsg
		want     Decision
		wantQuit bool
	}{
		{name: "y accepts", def: Denied, key: runes("y"), want: Accepted, wantQuit: true},
		{name: "upper Y accepts", def: Denied, key: runes("Y"), want: Accepted, wantQuit: true},
		{name: "n denies", def: Accepted, key: runes("n"), want: Denied, wantQuit: true},
		{name: "enter keeps denied default", def: Denied, key: tea.KeyMsg{Type: tea.KeyEnter}, want: Denied, wantQuit: true},
		{name: "enter keeps accepted default", def: Accepted, key: tea.KeyMsg{Type: tea.KeyEnter}, want: Accepted, wantQuit: true},
		{name: "esc denies", def: Accepted, key: tea.KeyMsg{Type: tea.KeyEsc}, want: Denied, wantQuit: true},
		{name: "ctrl+c denies", def: Accepted, key: tea.KeyMsg{Type: tea.KeyCtrlC}, want: Denied, wantQuit: true},
		{name: "other letter ignored", def: Denied, key: runes("x"), want: Denied},
		{name: "digit ignored", def: Denied, key: runes("1"), want: Denied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New()
			m.Prompt = "Overwrite?"
			m.DefaultValue = tt.def
			m.Init()

			_, cmd := m.Update(tt.key)
			assert.Equal(t, tt.want, m.Selected())
			if !tt.wantQuit {
				assert.Nil(t, cmd)
				return
			}
			require.NotNil(t, cmd)
			_, quit := cmd().(tea.QuitMsg)
			assert.True(t, quit, "a decision should end the program")
		})
	}
}

func TestView(t *testing.T) {
	m := New()
	m.Prompt = "Overwrite config.yaml?"
	m.Init()

	assert.Contains(t, m.View(), "Overwrite config.yaml?")
	assert.Equal(t, "y/N", m.placeholder())

	m.Update(runes("y"))
	view := m.View()
	assert.True(t, strings.HasSuffix(view, "y\n"), "view = %q", view)
	assert.Equal(t, "y", m.Value())
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "undecided", Undecided.String())
	assert.Equal(t, "accepted", Accepted.String())
	assert.Equal(t, "denied", Denied.String())
	assert.True(t, Accepted.IsAccepted())
	assert.False(t, Denied.IsAccepted())
}
