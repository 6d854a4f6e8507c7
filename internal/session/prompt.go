package session

import "fmt"

// PromptKind names the input the session is waiting for.
type PromptKind int

const (
	PromptNone PromptKind = iota
	PromptCommand
	PromptFilterText
	PromptOpenSingle
	PromptDetailID
	PromptUpdateID
	PromptConfirmUpdate
	PromptTransition
	PromptProjectKey
	PromptIssueType
	PromptSummary
	PromptDescription
)

// Prompt is a suspension point: the session stops until a driver calls
// Submit with the user's answer.
type Prompt struct {
	Kind  PromptKind
	Label string
}

// Step is what the session needs next. Done means the session reached
// its terminal state and accepts no more input.
type Step struct {
	Prompt Prompt
	Done   bool
}

func promptFor(kind PromptKind) Prompt {
	var label string
	switch kind {
	case PromptCommand:
		label = "Enter your choice: "
	case PromptFilterText:
		label = "Enter the value to filter (type '0' to exit filter mode): "
	case PromptDetailID:
		label = "Enter the ticket number: "
	case PromptUpdateID:
		label = "Enter the ticket number to update: "
	case PromptConfirmUpdate:
		label = "Do you want to update the ticket status? Type 'y' to proceed: "
	case PromptTransition:
		label = "Enter the number corresponding to the desired status: "
	case PromptProjectKey:
		label = "Enter the project key: "
	case PromptIssueType:
		label = "Select issue type (number or name): "
	case PromptSummary:
		label = "Enter summary (mandatory): "
	case PromptDescription:
		label = "Enter description (mandatory): "
	}
	return Prompt{Kind: kind, Label: label}
}

func openSinglePrompt(id string) Prompt {
	return Prompt{
		Kind:  PromptOpenSingle,
		Label: fmt.Sprintf("There is only one ticket in the filtered list (Ticket #%s). Type 'y' to display details: ", id),
	}
}
