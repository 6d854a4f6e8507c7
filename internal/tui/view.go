package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"

	"github.com/marcin-skalski/jiraclui/internal/session"
	"github.com/marcin-skalski/jiraclui/internal/ticket"
)

const maxTitleWidth = 60

var boardHeaders = []string{"Ticket #", "Title", "Assignee", "Reporter", "Status"}

func renderBoard(tickets []ticket.Ticket, theme Theme) string {
	if len(tickets) == 0 {
		return emptyStyle.Render("  (no tickets)")
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.Table).
		Headers(boardHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := theme.Table.Padding(0, 1)
			if row == table.HeaderRow {
				s = s.Bold(true)
			}
			// Ticket # and Status are centred.
			if col == 0 || col == len(boardHeaders)-1 {
				s = s.Align(lipgloss.Center)
			}
			return s
		})

	for _, tk := range tickets {
		t = t.Row(tk.ID, truncate(tk.Title, maxTitleWidth), tk.Assignee, tk.Reporter, tk.Status)
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")
	b.WriteString(footerStyle.Render(fmt.Sprintf("%d tickets", len(tickets))))
	return b.String()
}

func renderDetails(tk ticket.Ticket, theme Theme) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(theme.Details).
		Headers("Field", "Value").
		StyleFunc(func(row, col int) lipgloss.Style {
			s := theme.Details.Padding(0, 1)
			if row == table.HeaderRow {
				s = s.Bold(true)
			}
			return s
		})
	for _, f := range tk.Fields() {
		t = t.Row(f.Name, f.Value)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render("Details for Ticket #" + tk.ID))
	b.WriteString("\n")
	b.WriteString(t.Render())
	return b.String()
}

func renderMenu(items []session.MenuItem, theme Theme) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, item.Key+". "+theme.Menu.Render(item.Label))
	}
	return headerStyle.Render("Menu:") + "\n" + strings.Join(parts, "   ")
}

func renderOptions(title string, options []string, theme Theme) string {
	var b strings.Builder
	b.WriteString(theme.Prompt.Render(title))
	for i, o := range options {
		b.WriteString("\n")
		b.WriteString(theme.Prompt.Render(fmt.Sprintf("%d. %s", i+1, o)))
	}
	return b.String()
}

func renderInfo(msg string, theme Theme) string {
	return theme.Prompt.Render(msg)
}

func renderError(msg string) string {
	return errorStyle.Render(msg)
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "...")
	}
	return s
}
