package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/marcin-skalski/jiraclui/internal/session"
	"github.com/marcin-skalski/jiraclui/internal/ticket"
)

// Snapshot is what a Canvas held at one point in time.
type Snapshot struct {
	Timestamp time.Time
	Blocks    []string
}

func (s Snapshot) String() string {
	return strings.Join(s.Blocks, "\n\n")
}

// Canvas is a session.Renderer that keeps everything drawn since the last
// Clear. The session writes to it from a command goroutine while the
// program reads it in View, so all access is locked.
type Canvas struct {
	mu      sync.Mutex
	theme   Theme
	blocks  []string
	updated time.Time
}

var _ session.Renderer = (*Canvas)(nil)

func NewCanvas(theme Theme) *Canvas {
	return &Canvas{theme: theme, updated: time.Now()}
}

func (c *Canvas) GetSnapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		Timestamp: c.updated,
		Blocks:    append([]string(nil), c.blocks...),
	}
}

func (c *Canvas) add(block string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks = append(c.blocks, block)
	c.updated = time.Now()
}

func (c *Canvas) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks = nil
	c.updated = time.Now()
}

func (c *Canvas) Board(tickets []ticket.Ticket) { c.add(renderBoard(tickets, c.theme)) }
func (c *Canvas) Details(t ticket.Ticket)       { c.add(renderDetails(t, c.theme)) }
func (c *Canvas) Menu(items []session.MenuItem) { c.add(renderMenu(items, c.theme)) }
func (c *Canvas) Info(msg string)               { c.add(renderInfo(msg, c.theme)) }
func (c *Canvas) Error(msg string)              { c.add(renderError(msg)) }

func (c *Canvas) Options(title string, options []string) {
	c.add(renderOptions(title, options, c.theme))
}

// Printer is a session.Renderer that writes straight to a stream, for
// direct commands and the line driver.
type Printer struct {
	w     io.Writer
	theme Theme
	clear bool
}

var _ session.Renderer = (*Printer)(nil)

// NewPrinter returns a Printer on w. When clearScreen is set, Clear wipes
// the terminal; otherwise it prints nothing.
func NewPrinter(w io.Writer, theme Theme, clearScreen bool) *Printer {
	return &Printer{w: w, theme: theme, clear: clearScreen}
}

func (p *Printer) Clear() {
	if p.clear {
		fmt.Fprint(p.w, "\x1b[H\x1b[2J")
	}
}

func (p *Printer) Board(tickets []ticket.Ticket) { p.println(renderBoard(tickets, p.theme)) }
func (p *Printer) Details(t ticket.Ticket)       { p.println(renderDetails(t, p.theme)) }
func (p *Printer) Menu(items []session.MenuItem) { p.println(renderMenu(items, p.theme)) }
func (p *Printer) Info(msg string)               { p.println(renderInfo(msg, p.theme)) }
func (p *Printer) Error(msg string)              { p.println(renderError(msg)) }

func (p *Printer) Options(title string, options []string) {
	p.println(renderOptions(title, options, p.theme))
}

func (p *Printer) println(s string) {
	fmt.Fprintln(p.w, s)
}
