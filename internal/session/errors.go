package session

import (
	"errors"
	"fmt"

	"github.com/marcin-skalski/jiraclui/internal/ticket"
)

// ValidationError is bad local input, such as an out-of-range selection.
// It never changes session state.
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// describe turns a repository failure into the line shown to the user.
func describe(action, id string, err error) string {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return ve.Reason
	case errors.Is(err, ticket.ErrNotFound) && id != "":
		return fmt.Sprintf("Ticket %s: Issue Does Not Exist", id)
	default:
		return fmt.Sprintf("Error %s: %v", action, err)
	}
}
