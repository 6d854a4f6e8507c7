package session

import (
	"context"
	"fmt"
	"strconv"
)

// StartLookup shows a single ticket and ends the session.
func (s *Session) StartLookup(ctx context.Context, id string) Step {
	s.entry = entryLookup
	t, err := s.repo.GetTicket(ctx, id)
	if err != nil {
		s.report("retrieving ticket", id, err)
		return s.terminate()
	}
	s.r.Details(t)
	return s.terminate()
}

// StartUpdate runs the status update flow for one ticket and ends the
// session.
func (s *Session) StartUpdate(ctx context.Context, id string) Step {
	s.entry = entryUpdate
	return s.openUpdate(ctx, id)
}

func (s *Session) openDetail(ctx context.Context, id string) Step {
	t, err := s.repo.GetTicket(ctx, id)
	if err != nil {
		s.report("retrieving ticket", id, err)
		return s.resume()
	}

	s.current = &t
	s.setMode(ModeDetail)
	s.r.Clear()
	s.r.Details(t)
	return s.prompt(promptFor(PromptConfirmUpdate))
}

func (s *Session) openUpdate(ctx context.Context, id string) Step {
	t, err := s.repo.GetTicket(ctx, id)
	if err != nil {
		s.report("retrieving ticket", id, err)
		return s.resume()
	}
	s.current = &t
	return s.beginUpdate(ctx)
}

func (s *Session) beginUpdate(ctx context.Context) Step {
	s.setMode(ModeUpdate)
	id := s.current.ID

	names, err := s.repo.ListTransitions(ctx, id)
	if err != nil {
		step := s.returnToCaller()
		s.report("updating ticket status", "", err)
		return step
	}
	if len(names) == 0 {
		step := s.returnToCaller()
		s.r.Info(fmt.Sprintf("No status transitions available for %s.", id))
		return step
	}

	s.transitions = names
	s.r.Options("Available status options:", names)
	return s.prompt(promptFor(PromptTransition))
}

func (s *Session) chooseTransition(ctx context.Context, input string) Step {
	id := s.current.ID
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(s.transitions) {
		s.logger.Info("invalid transition choice", "ticket", id, "input", input, "options", len(s.transitions))
		step := s.returnToCaller()
		s.report("", "", &ValidationError{Input: input, Reason: "Invalid option. Ticket status not updated."})
		return step
	}
	name := s.transitions[n-1]

	if err := s.repo.ApplyTransition(ctx, id, name); err != nil {
		step := s.returnToCaller()
		s.report("updating ticket status", "", err)
		return step
	}
	s.logger.Info("ticket transitioned", "ticket", id, "transition", name)
	done := fmt.Sprintf("Ticket %s status updated to '%s'", id, name)

	if s.entry != entryInteractive {
		s.r.Info(done)
		return s.terminate()
	}

	err = s.refresh(ctx)
	s.backToBoard()
	s.r.Info(done)
	if err != nil {
		s.report("retrieving tickets", "", err)
	}
	return s.promptCommand()
}
