package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcin-skalski/jiraclui/internal/config"
)

var (
	colorError = lipgloss.Color("196") // red
	colorMuted = lipgloss.Color("240") // gray
	colorTitle = lipgloss.Color("39")  // blue

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTitle)

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorError)

	emptyStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			Italic(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted)
)

// Theme holds the per-component styles configured under app_colors.
type Theme struct {
	Table   lipgloss.Style
	Menu    lipgloss.Style
	Details lipgloss.Style
	Prompt  lipgloss.Style
}

func NewTheme(c config.AppColors) Theme {
	return Theme{
		Table:   lipgloss.NewStyle().Foreground(colorFor(c.Table)),
		Menu:    lipgloss.NewStyle().Foreground(colorFor(c.Menu)),
		Details: lipgloss.NewStyle().Foreground(colorFor(c.DetailsForm)),
		Prompt:  lipgloss.NewStyle().Foreground(colorFor(c.Prompts)),
	}
}

// Colour names accepted in the config file. Anything else is handed to
// lipgloss as is, so ANSI numbers and hex values work too.
var namedColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
	"grey":    "8",
	"gray":    "8",

	"bright_red":     "9",
	"bright_green":   "10",
	"bright_yellow":  "11",
	"bright_blue":    "12",
	"bright_magenta": "13",
	"bright_cyan":    "14",
	"bright_white":   "15",
}

func colorFor(name string) lipgloss.Color {
	key := strings.ToLower(strings.TrimSpace(name))
	if n, ok := namedColors[key]; ok {
		return lipgloss.Color(n)
	}
	return lipgloss.Color(key)
}
