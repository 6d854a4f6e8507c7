package jira

import (
	"fmt"
	"strings"

	"github.com/marcin-skalski/jiraclui/internal/ticket"
)

// ErrNotFound is returned when the requested issue or project does not
// exist or is not visible to the token.
var ErrNotFound = ticket.ErrNotFound

// RemoteError is any other failed call: transport failure, rejected
// credentials, a malformed query or an unexpected response.
type RemoteError struct {
	Op         string
	StatusCode int
	Messages   []string
	Err        error
}

func (e *RemoteError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, ": HTTP %d", e.StatusCode)
	}
	if len(e.Messages) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Messages, "; "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// errorBody is the error payload Jira returns on 4xx/5xx.
type errorBody struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}

func (b errorBody) messages() []string {
	msgs := append([]string(nil), b.ErrorMessages...)
	for field, msg := range b.Errors {
		msgs = append(msgs, field+": "+msg)
	}
	return msgs
}
