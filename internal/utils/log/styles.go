package log

import (
	"fmt"

	charmlog "github.com/charmbracelet/log"
	"github.com/charmbracelet/lipgloss"
)

var levelColors = []struct {
	level Level
	color lipgloss.Color
}{
	{DebugLevel, lipgloss.Color("244")},
	{InfoLevel, lipgloss.Color("39")},
	{WarnLevel, lipgloss.Color("214")},
	{ErrorLevel, lipgloss.Color("203")},
	{FatalLevel, lipgloss.Color("197")},
	{ImportantLevel, lipgloss.Color("42")},
}

// newStyles returns charmbracelet's default styles with fixed-width level
// labels, including one for ImportantLevel.
func newStyles() *Styles {
	styles := charmlog.DefaultStyles()
	for _, lc := range levelColors {
		styles.Levels[lc.level] = lipgloss.NewStyle().
			Bold(true).
			Foreground(lc.color).
			SetString(fmt.Sprintf("%-5s", levelLabel(lc.level)))
	}
	return styles
}
