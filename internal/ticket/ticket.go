// Package ticket holds the tracker record type and the filtered ticket set
// the interactive session works on.
package ticket

import (
	"errors"
	"strings"
)

// ErrNotFound reports a ticket or project the tracker does not know.
var ErrNotFound = errors.New("not found")

// Ticket is a single tracker issue as fetched. Assignee and Reporter are
// empty when the issue has none. Description is only set by single-issue
// lookups.
type Ticket struct {
	ID          string
	Project     string
	Title       string
	Assignee    string
	Reporter    string
	Status      string
	Description *string
}

// Field is one labelled value of a ticket, in display order.
type Field struct {
	Name  string
	Value string
}

// Fields returns the present fields of t in detail-view order.
func (t Ticket) Fields() []Field {
	fields := []Field{
		{Name: "ticketNo", Value: t.ID},
		{Name: "project", Value: t.Project},
		{Name: "title", Value: t.Title},
	}
	if t.Description != nil {
		fields = append(fields, Field{Name: "description", Value: *t.Description})
	}
	return append(fields,
		Field{Name: "assignee", Value: t.Assignee},
		Field{Name: "reporter", Value: t.Reporter},
		Field{Name: "status", Value: t.Status},
	)
}

// Matches reports whether any field of t contains text, ignoring case.
func (t Ticket) Matches(text string) bool {
	if text == "" {
		return true
	}
	query := strings.ToLower(text)
	for _, f := range t.Fields() {
		if f.Value == "" {
			continue
		}
		if strings.Contains(strings.ToLower(f.Value), query) {
			return true
		}
	}
	return false
}

// Filter returns the tickets matching text in their original order. An
// empty text returns tickets itself.
func Filter(tickets []Ticket, text string) []Ticket {
	if text == "" {
		return tickets
	}
	var out []Ticket
	for _, t := range tickets {
		if t.Matches(text) {
			out = append(out, t)
		}
	}
	return out
}
