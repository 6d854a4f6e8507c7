package jira

import "github.com/marcin-skalski/jiraclui/internal/ticket"

type issue struct {
	Key    string      `json:"key"`
	Fields issueFields `json:"fields"`
}

type issueFields struct {
	Project     project `json:"project"`
	Summary     string  `json:"summary"`
	Description *string `json:"description"`
	Assignee    *user   `json:"assignee"`
	Reporter    *user   `json:"reporter"`
	Status      status  `json:"status"`
}

type project struct {
	Key        string      `json:"key"`
	Name       string      `json:"name"`
	IssueTypes []issueType `json:"issueTypes"`
}

type issueType struct {
	Name    string `json:"name"`
	Subtask bool   `json:"subtask"`
}

// user covers both Server/DC (name) and Cloud (accountId) identities.
type user struct {
	Name        string `json:"name"`
	AccountID   string `json:"accountId"`
	DisplayName string `json:"displayName"`
}

type status struct {
	Name string `json:"name"`
}

type searchResponse struct {
	Total  int     `json:"total"`
	Issues []issue `json:"issues"`
}

type transition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type transitionsResponse struct {
	Transitions []transition `json:"transitions"`
}

type transitionRequest struct {
	Transition struct {
		ID string `json:"id"`
	} `json:"transition"`
}

type createRequest struct {
	Fields createFields `json:"fields"`
}

type createFields struct {
	Project     keyRef  `json:"project"`
	IssueType   nameRef `json:"issuetype"`
	Summary     string  `json:"summary"`
	Description string  `json:"description"`
}

type keyRef struct {
	Key string `json:"key"`
}

type nameRef struct {
	Name string `json:"name"`
}

type createResponse struct {
	Key string `json:"key"`
}

func displayName(u *user) string {
	if u == nil {
		return ""
	}
	return u.DisplayName
}

// toTicket converts an issue. The description is kept only when
// withDescription is set, so board rows never carry one.
func (i issue) toTicket(withDescription bool) ticket.Ticket {
	t := ticket.Ticket{
		ID:       i.Key,
		Project:  i.Fields.Project.Name,
		Title:    i.Fields.Summary,
		Assignee: displayName(i.Fields.Assignee),
		Reporter: displayName(i.Fields.Reporter),
		Status:   i.Fields.Status.Name,
	}
	if withDescription {
		desc := ""
		if i.Fields.Description != nil {
			desc = *i.Fields.Description
		}
		t.Description = &desc
	}
	return t
}
