package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/marcin-skalski/jiraclui/internal/ticket"
)

const (
	apiPrefix = "/rest/api/2"

	listFields = "key,project,summary,assignee,reporter,status"

	// todayMaxResults caps the per-project "today" search.
	todayMaxResults = 100
)

// Client talks to the Jira REST API with a personal access token.
type Client struct {
	baseURL    string
	token      string
	maxResults int
	httpClient *http.Client
	logger     *slog.Logger
}

type Options struct {
	BaseURL    string
	Token      string
	MaxResults int
	Timeout    time.Duration
	HTTPClient *http.Client
}

func NewClient(opts Options, logger *slog.Logger) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = 100
	}
	return &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		token:      opts.Token,
		maxResults: maxResults,
		httpClient: httpClient,
		logger:     logger,
	}
}

// ListTickets searches each project in turn, newest first. With users set,
// only issues assigned to or reported by one of them are returned.
func (c *Client) ListTickets(ctx context.Context, projects, users []string) ([]ticket.Ticket, error) {
	var out []ticket.Ticket
	for _, p := range projects {
		issues, err := c.search(ctx, projectJQL(p, users), c.maxResults)
		if err != nil {
			return nil, fmt.Errorf("list tickets for %s: %w", p, err)
		}
		for _, is := range issues {
			out = append(out, is.toTicket(false))
		}
	}
	return out, nil
}

// ListTodayTickets returns issues created or updated since the start of the
// day that the authenticated user is assigned to or reported.
func (c *Client) ListTodayTickets(ctx context.Context, projects []string) ([]ticket.Ticket, error) {
	me, err := c.CurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("current user: %w", err)
	}

	var out []ticket.Ticket
	for _, p := range projects {
		issues, err := c.search(ctx, todayJQL(p, me), todayMaxResults)
		if err != nil {
			return nil, fmt.Errorf("list today tickets for %s: %w", p, err)
		}
		for _, is := range issues {
			out = append(out, is.toTicket(false))
		}
	}
	return out, nil
}

// CurrentUser returns the identity JQL should use for the token owner.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	var u user
	if err := c.do(ctx, "get current user", http.MethodGet, apiPrefix+"/myself", nil, &u); err != nil {
		return "", err
	}
	if u.Name != "" {
		return u.Name, nil
	}
	if u.AccountID != "" {
		return u.AccountID, nil
	}
	return "", &RemoteError{Op: "get current user", Messages: []string{"response has no user identity"}}
}

// GetTicket fetches one issue including its description. A missing issue
// yields ErrNotFound.
func (c *Client) GetTicket(ctx context.Context, id string) (ticket.Ticket, error) {
	var is issue
	if err := c.do(ctx, "get ticket "+id, http.MethodGet, issuePath(id), nil, &is); err != nil {
		return ticket.Ticket{}, err
	}
	return is.toTicket(true), nil
}

// ListTransitions returns the names of the transitions available for the
// issue, in the order Jira reports them.
func (c *Client) ListTransitions(ctx context.Context, id string) ([]string, error) {
	ts, err := c.transitions(ctx, id)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, t.Name)
	}
	return names, nil
}

// ApplyTransition moves the issue through the transition called name.
func (c *Client) ApplyTransition(ctx context.Context, id, name string) error {
	ts, err := c.transitions(ctx, id)
	if err != nil {
		return err
	}

	var req transitionRequest
	for _, t := range ts {
		if strings.EqualFold(t.Name, name) {
			req.Transition.ID = t.ID
			break
		}
	}
	if req.Transition.ID == "" {
		return &RemoteError{Op: "transition " + id, Messages: []string{fmt.Sprintf("transition %q not available", name)}}
	}

	return c.do(ctx, "transition "+id, http.MethodPost, issuePath(id)+"/transitions", req, nil)
}

// ListIssueTypes returns the issue type names a top-level ticket can be
// created with. Sub-task types need a parent and are left out.
func (c *Client) ListIssueTypes(ctx context.Context, projectKey string) ([]string, error) {
	var p project
	path := apiPrefix + "/project/" + url.PathEscape(projectKey)
	if err := c.do(ctx, "get project "+projectKey, http.MethodGet, path, nil, &p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("project %s: %w", projectKey, err)
		}
		return nil, err
	}
	names := make([]string, 0, len(p.IssueTypes))
	for _, it := range p.IssueTypes {
		if it.Subtask {
			continue
		}
		names = append(names, it.Name)
	}
	return names, nil
}

// CreateTicket creates an issue and returns it as stored by Jira.
func (c *Client) CreateTicket(ctx context.Context, projectKey, issueType, summary, description string) (ticket.Ticket, error) {
	req := createRequest{Fields: createFields{
		Project:     keyRef{Key: projectKey},
		IssueType:   nameRef{Name: issueType},
		Summary:     summary,
		Description: description,
	}}

	var created createResponse
	if err := c.do(ctx, "create ticket", http.MethodPost, apiPrefix+"/issue", req, &created); err != nil {
		return ticket.Ticket{}, err
	}
	c.logger.Info("ticket created", "key", created.Key, "project", projectKey)

	t, err := c.GetTicket(ctx, created.Key)
	if err != nil {
		c.logger.Warn("fetch created ticket", "key", created.Key, "err", err)
		return ticket.Ticket{ID: created.Key, Title: summary}, nil
	}
	return t, nil
}

func (c *Client) transitions(ctx context.Context, id string) ([]transition, error) {
	var resp transitionsResponse
	if err := c.do(ctx, "list transitions "+id, http.MethodGet, issuePath(id)+"/transitions", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Transitions, nil
}

func (c *Client) search(ctx context.Context, jql string, maxResults int) ([]issue, error) {
	q := url.Values{}
	q.Set("jql", jql)
	q.Set("maxResults", strconv.Itoa(maxResults))
	q.Set("fields", listFields)

	var resp searchResponse
	if err := c.do(ctx, "search", http.MethodGet, apiPrefix+"/search?"+q.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	if resp.Total > len(resp.Issues) {
		c.logger.Debug("search truncated", "jql", jql, "shown", len(resp.Issues), "total", resp.Total)
	}
	return resp.Issues, nil
}

func (c *Client) do(ctx context.Context, op, method, path string, body, result any) error {
	c.logger.Debug("jira request", "op", op, "method", method, "path", path)

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &RemoteError{Op: op, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &RemoteError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RemoteError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		msgs := eb.messages()
		if len(msgs) == 0 && len(respBody) > 0 {
			msgs = []string{strings.TrimSpace(string(respBody))}
		}
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Messages: msgs}
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, result); err != nil {
		return &RemoteError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unmarshal response: %w", err)}
	}
	return nil
}

func issuePath(id string) string {
	return apiPrefix + "/issue/" + url.PathEscape(id)
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func projectJQL(project string, users []string) string {
	jql := "project = " + quote(project)
	if len(users) > 0 {
		clauses := make([]string, 0, len(users))
		for _, u := range users {
			clauses = append(clauses, fmt.Sprintf("(assignee = %s OR reporter = %s)", quote(u), quote(u)))
		}
		jql += " AND (" + strings.Join(clauses, " OR ") + ")"
	}
	return jql + " ORDER BY created DESC"
}

func todayJQL(project, me string) string {
	return fmt.Sprintf("project = %s AND (created >= startOfDay() OR updated >= startOfDay()) AND (assignee = %s OR reporter = %s) ORDER BY updated DESC",
		quote(project), quote(me), quote(me))
}
