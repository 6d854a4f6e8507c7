// Package session is the interactive board state machine. It owns the
// fetched ticket set, interprets menu and prompt input, calls the tracker
// and tells a Renderer what to draw. It never reads a terminal itself:
// every call returns the Prompt it needs next and the driver answers it
// through Submit.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/marcin-skalski/jiraclui/internal/ticket"
)

// Repository is the tracker as seen by the session.
type Repository interface {
	ListTickets(ctx context.Context, projects, users []string) ([]ticket.Ticket, error)
	ListTodayTickets(ctx context.Context, projects []string) ([]ticket.Ticket, error)
	GetTicket(ctx context.Context, id string) (ticket.Ticket, error)
	ListTransitions(ctx context.Context, id string) ([]string, error)
	ApplyTransition(ctx context.Context, id, name string) error
	ListIssueTypes(ctx context.Context, projectKey string) ([]string, error)
	CreateTicket(ctx context.Context, projectKey, issueType, summary, description string) (ticket.Ticket, error)
}

// Renderer draws session output. Everything written after Clear stays on
// screen until the next Clear.
type Renderer interface {
	Clear()
	Board(tickets []ticket.Ticket)
	Details(t ticket.Ticket)
	Menu(items []MenuItem)
	Options(title string, options []string)
	Info(msg string)
	Error(msg string)
}

// Mode is the session state.
type Mode int

const (
	ModeBoard Mode = iota
	ModeFilter
	ModeDetail
	ModeUpdate
	ModeCreate
	ModeTerminal
)

func (m Mode) String() string {
	switch m {
	case ModeBoard:
		return "board"
	case ModeFilter:
		return "filter"
	case ModeDetail:
		return "detail"
	case ModeUpdate:
		return "update"
	case ModeCreate:
		return "create"
	case ModeTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// Scope is the query used for every full refresh.
type Scope struct {
	Projects []string
	Users    []string
	Today    bool
}

type Config struct {
	Scope       Scope
	NumericMenu bool
}

type entry int

const (
	entryInteractive entry = iota
	entryLookup
	entryUpdate
	entryToday
	entryCreate
)

type createDraft struct {
	project    string
	issueTypes []string
	issueType  string
	summary    string
}

type Session struct {
	cfg    Config
	repo   Repository
	r      Renderer
	logger *slog.Logger

	set     *ticket.Set
	mode    Mode
	caller  Mode
	entry   entry
	pending Prompt

	current     *ticket.Ticket
	offered     string
	transitions []string
	draft       createDraft
}

func New(cfg Config, repo Repository, r Renderer, logger *slog.Logger) *Session {
	return &Session{
		cfg:    cfg,
		repo:   repo,
		r:      r,
		logger: logger,
		set:    ticket.NewSet(nil),
		mode:   ModeBoard,
		caller: ModeBoard,
	}
}

func (s *Session) Mode() Mode {
	return s.mode
}

// Pending returns the prompt the session is waiting on.
func (s *Session) Pending() Prompt {
	return s.pending
}

func (s *Session) FilterText() string {
	return s.set.FilterText()
}

func (s *Session) Scope() Scope {
	return s.cfg.Scope
}

func (s *Session) Done() bool {
	return s.mode == ModeTerminal
}

// Tickets returns the tickets currently on the board, filter applied.
func (s *Session) Tickets() []ticket.Ticket {
	return s.set.View()
}

// Start performs the initial fetch and shows the board.
func (s *Session) Start(ctx context.Context) Step {
	s.entry = entryInteractive
	s.logger.Info("session started", "projects", s.cfg.Scope.Projects, "users", s.cfg.Scope.Users)

	err := s.refresh(ctx)
	s.renderBoard()
	if err != nil {
		s.report("retrieving tickets", "", err)
	}
	return s.promptCommand()
}

// Submit resumes the session with the answer to the pending prompt.
func (s *Session) Submit(ctx context.Context, input string) Step {
	if s.mode == ModeTerminal {
		return Step{Done: true}
	}
	input = strings.TrimSpace(input)
	s.logger.Debug("input", "prompt", s.pending.Kind, "mode", s.mode)

	switch s.pending.Kind {
	case PromptCommand:
		return s.dispatch(ctx, ParseCommand(input))
	case PromptFilterText:
		return s.applyFilter(input)
	case PromptOpenSingle:
		if isYes(input) {
			s.caller = ModeFilter
			return s.openDetail(ctx, s.offered)
		}
		return s.prompt(promptFor(PromptFilterText))
	case PromptDetailID:
		if input == "" {
			s.report("", "", &ValidationError{Input: input, Reason: "A ticket number is required."})
			return s.resume()
		}
		return s.openDetail(ctx, input)
	case PromptUpdateID:
		if input == "" {
			s.report("", "", &ValidationError{Input: input, Reason: "A ticket number is required."})
			return s.resume()
		}
		return s.openUpdate(ctx, input)
	case PromptConfirmUpdate:
		if isYes(input) {
			return s.beginUpdate(ctx)
		}
		return s.returnToCaller()
	case PromptTransition:
		return s.chooseTransition(ctx, input)
	case PromptProjectKey, PromptIssueType, PromptSummary, PromptDescription:
		return s.createInput(ctx, input)
	default:
		return s.resume()
	}
}

func (s *Session) dispatch(ctx context.Context, cmd Command) Step {
	s.logger.Debug("command", "cmd", cmd.String())

	switch cmd {
	case CmdExit:
		return s.exit()
	case CmdAll:
		return s.reload(ctx, false)
	case CmdToday:
		return s.reload(ctx, true)
	case CmdFilter:
		s.setMode(ModeFilter)
		return s.prompt(promptFor(PromptFilterText))
	case CmdDetails:
		s.caller = s.mode
		return s.prompt(promptFor(PromptDetailID))
	case CmdUpdate:
		s.caller = s.mode
		return s.prompt(promptFor(PromptUpdateID))
	case CmdCreate:
		return s.beginCreate()
	default:
		s.renderBoard()
		return s.promptCommand()
	}
}

// reload switches between the full and the "today" scope and refetches.
func (s *Session) reload(ctx context.Context, today bool) Step {
	s.cfg.Scope.Today = today
	s.set.ClearFilter()
	err := s.refresh(ctx)
	s.renderBoard()
	if err != nil {
		s.report("retrieving tickets", "", err)
	}
	return s.promptCommand()
}

func (s *Session) applyFilter(input string) Step {
	if input == "0" {
		s.set.ClearFilter()
		s.setMode(ModeBoard)
		s.renderBoard()
		return s.promptCommand()
	}

	s.set.SetFilter(input)
	s.renderBoard()
	if view := s.set.View(); len(view) == 1 {
		s.offered = view[0].ID
		return s.prompt(openSinglePrompt(s.offered))
	}
	return s.prompt(promptFor(PromptFilterText))
}

// refresh refetches the ticket set for the current scope. On failure the
// set is left as it was.
func (s *Session) refresh(ctx context.Context) error {
	var (
		tickets []ticket.Ticket
		err     error
	)
	scope := s.cfg.Scope
	if scope.Today {
		tickets, err = s.repo.ListTodayTickets(ctx, scope.Projects)
	} else {
		tickets, err = s.repo.ListTickets(ctx, scope.Projects, scope.Users)
	}
	if err != nil {
		s.logger.Warn("refresh failed", "today", scope.Today, "err", err)
		return err
	}
	s.set.Replace(tickets)
	s.logger.Debug("refreshed", "today", scope.Today, "tickets", len(tickets), "shown", s.set.Len())
	return nil
}

func (s *Session) exit() Step {
	s.r.Clear()
	return s.terminate()
}

func (s *Session) terminate() Step {
	s.setMode(ModeTerminal)
	s.pending = Prompt{}
	return Step{Done: true}
}

// resume re-issues the prompt of the board or filter state without
// redrawing.
func (s *Session) resume() Step {
	if s.entry != entryInteractive {
		return s.terminate()
	}
	s.setMode(s.caller)
	if s.caller == ModeFilter {
		return s.prompt(promptFor(PromptFilterText))
	}
	return s.promptCommand()
}

// returnToCaller leaves a detail or update flow for the state that opened
// it, redrawing that state's view.
func (s *Session) returnToCaller() Step {
	s.current = nil
	s.transitions = nil
	if s.entry != entryInteractive {
		return s.terminate()
	}
	if s.caller == ModeFilter {
		s.setMode(ModeFilter)
		s.set.SetFilter(s.set.FilterText())
		s.renderBoard()
		return s.prompt(promptFor(PromptFilterText))
	}
	s.setMode(ModeBoard)
	s.renderBoard()
	return s.promptCommand()
}

// backToBoard lands on a freshly drawn, unfiltered board.
func (s *Session) backToBoard() {
	s.current = nil
	s.transitions = nil
	s.set.ClearFilter()
	s.setMode(ModeBoard)
	s.renderBoard()
}

func (s *Session) renderBoard() {
	s.r.Clear()
	s.r.Board(s.set.View())
}

func (s *Session) promptCommand() Step {
	s.r.Menu(Menu(s.cfg.NumericMenu))
	return s.prompt(promptFor(PromptCommand))
}

func (s *Session) prompt(p Prompt) Step {
	s.pending = p
	return Step{Prompt: p}
}

func (s *Session) setMode(m Mode) {
	if s.mode != m {
		s.logger.Debug("mode change", "from", s.mode.String(), "to", m.String())
	}
	s.mode = m
}

func (s *Session) report(action, id string, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		s.logger.Info("rejected input", "input", ve.Input, "reason", ve.Reason)
	} else {
		s.logger.Warn("command failed", "action", action, "ticket", id, "err", err)
	}
	s.r.Error(describe(action, id, err))
}

func isYes(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true
	}
	return false
}
