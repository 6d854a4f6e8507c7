package ticket

// Set is the most recent fetch result plus the view left after applying
// the current filter text. The view is always derived from the full
// result, never from a previous view.
type Set struct {
	all    []Ticket
	view   []Ticket
	filter string
}

func NewSet(tickets []Ticket) *Set {
	s := &Set{}
	s.Replace(tickets)
	return s
}

// Replace swaps in a fresh fetch result and re-applies the current filter.
func (s *Set) Replace(tickets []Ticket) {
	s.all = tickets
	s.view = Filter(s.all, s.filter)
}

// SetFilter changes the filter text and recomputes the view.
func (s *Set) SetFilter(text string) {
	s.filter = text
	s.view = Filter(s.all, s.filter)
}

func (s *Set) ClearFilter() {
	s.SetFilter("")
}

func (s *Set) FilterText() string {
	return s.filter
}

// View returns the filtered tickets.
func (s *Set) View() []Ticket {
	return s.view
}

// All returns the unfiltered fetch result.
func (s *Set) All() []Ticket {
	return s.all
}

func (s *Set) Len() int {
	return len(s.view)
}
