package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/marcin-skalski/jiraclui/internal/session"
)

type SnapshotProvider interface {
	GetSnapshot() Snapshot
}

// StepFunc advances the session until it needs input again.
type StepFunc func(ctx context.Context) session.Step

// Model drives a session.Session from a bubbletea program. Session calls
// run as commands, one at a time; input is ignored while one is in flight.
type Model struct {
	ctx      context.Context
	sess     *session.Session
	provider SnapshotProvider
	start    StepFunc

	input   textinput.Model
	spinner spinner.Model
	step    session.Step
	busy    bool
}

type stepMsg session.Step

func NewModel(ctx context.Context, sess *session.Session, provider SnapshotProvider, theme Theme, start StepFunc) Model {
	in := textinput.New()
	in.CharLimit = 500
	in.PromptStyle = theme.Prompt
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = footerStyle

	return Model{
		ctx:      ctx,
		sess:     sess,
		provider: provider,
		start:    start,
		input:    in,
		spinner:  sp,
		busy:     true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.run(m.start))
}

func (m Model) run(fn StepFunc) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return stepMsg(fn(ctx))
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = max(0, msg.Width-runewidth.StringWidth(m.input.Prompt)-1)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.busy {
				return m, nil
			}
			value := m.input.Value()
			m.input.Reset()
			m.busy = true
			sess := m.sess
			return m, tea.Batch(m.spinner.Tick, m.run(func(ctx context.Context) session.Step {
				return sess.Submit(ctx, value)
			}))
		}
		if m.busy {
			return m, nil
		}

	case stepMsg:
		m.busy = false
		m.step = session.Step(msg)
		if m.step.Done {
			return m, tea.Quit
		}
		m.input.Prompt = m.step.Prompt.Label
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	var b strings.Builder
	if content := m.provider.GetSnapshot().String(); content != "" {
		b.WriteString(content)
		b.WriteString("\n\n")
	}
	if m.busy {
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(footerStyle.Render("Talking to Jira..."))
	} else {
		b.WriteString(m.input.View())
	}
	b.WriteString("\n")
	b.WriteString(footerStyle.Render("ctrl+c: quit"))
	return b.String()
}

// Run shows the session in a full-screen program until it ends.
func Run(ctx context.Context, sess *session.Session, canvas *Canvas, theme Theme, start StepFunc) error {
	p := tea.NewProgram(
		NewModel(ctx, sess, canvas, theme, start),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
