package session

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// StartToday shows the tickets touched today by the current user and ends
// the session.
func (s *Session) StartToday(ctx context.Context) Step {
	s.entry = entryToday
	s.cfg.Scope.Today = true
	if err := s.refresh(ctx); err != nil {
		s.report("retrieving opened or updated tickets", "", err)
		return s.terminate()
	}
	s.r.Board(s.set.View())
	return s.terminate()
}

// StartCreate runs the create flow on its own and ends the session.
func (s *Session) StartCreate() Step {
	s.entry = entryCreate
	return s.beginCreate()
}

func (s *Session) beginCreate() Step {
	s.draft = createDraft{}
	s.setMode(ModeCreate)
	return s.prompt(promptFor(PromptProjectKey))
}

func (s *Session) createInput(ctx context.Context, input string) Step {
	switch s.pending.Kind {
	case PromptProjectKey:
		if input == "" {
			return s.retry(input, "A project key is required.")
		}
		types, err := s.repo.ListIssueTypes(ctx, input)
		if err != nil {
			return s.abortCreate(err)
		}
		if len(types) == 0 {
			return s.abortCreate(&ValidationError{Input: input, Reason: fmt.Sprintf("Project %s has no issue types.", input)})
		}
		s.draft.project = input
		s.draft.issueTypes = types
		s.r.Options("Select issue type:", types)
		return s.prompt(promptFor(PromptIssueType))

	case PromptIssueType:
		name, ok := pickOption(s.draft.issueTypes, input)
		if !ok {
			return s.retry(input, fmt.Sprintf("Invalid issue type %q.", input))
		}
		s.draft.issueType = name
		return s.prompt(promptFor(PromptSummary))

	case PromptSummary:
		if input == "" {
			return s.retry(input, "Summary is mandatory.")
		}
		s.draft.summary = input
		return s.prompt(promptFor(PromptDescription))

	case PromptDescription:
		if input == "" {
			return s.retry(input, "Description is mandatory.")
		}
		return s.submitCreate(ctx, input)
	}
	return s.resume()
}

func (s *Session) submitCreate(ctx context.Context, description string) Step {
	d := s.draft
	t, err := s.repo.CreateTicket(ctx, d.project, d.issueType, d.summary, description)
	if err != nil {
		return s.abortCreate(err)
	}
	s.logger.Info("ticket created", "ticket", t.ID, "project", d.project, "type", d.issueType)
	s.draft = createDraft{}
	done := fmt.Sprintf("Ticket %s created successfully!", t.ID)

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

// abortCreate drops the draft and returns to the board without refetching.
func (s *Session) abortCreate(err error) Step {
	s.draft = createDraft{}
	if s.entry != entryInteractive {
		s.report("creating ticket", "", err)
		return s.terminate()
	}
	s.backToBoard()
	s.report("creating ticket", "", err)
	return s.promptCommand()
}

// retry reports invalid input and asks the same question again.
func (s *Session) retry(input, reason string) Step {
	s.report("", "", &ValidationError{Input: input, Reason: reason})
	return s.prompt(s.pending)
}

// pickOption resolves a 1-based index or a case-insensitive name.
func pickOption(options []string, input string) (string, bool) {
	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	for _, o := range options {
		if strings.EqualFold(o, input) {
			return o, true
		}
	}
	return "", false
}
