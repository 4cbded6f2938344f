package search

import (
	"github.com/grovetools/jwtview/errors"
)

// NoSelection is the Current value of a state without an active match.
const NoSelection = -1

// State is the search state of one open document: the active query, all of
// its occurrences and the index of the selected one.
//
// A query change replaces the whole state; navigation only moves Current.
type State struct {
	Query       string       `json:"query"`
	Occurrences []Occurrence `json:"occurrences"`
	Current     int          `json:"current"`
}

// NewState returns an empty state with no selection.
func NewState() State {
	return State{Current: NoSelection}
}

// Compute builds the state for query over text. The first occurrence, if any,
// is selected.
func Compute(text, query string) State {
	s := State{
		Query:       query,
		Occurrences: Search(text, query),
		Current:     NoSelection,
	}
	if len(s.Occurrences) > 0 {
		s.Current = 0
	}
	return s
}

// OnQueryChanged recomputes the occurrences of query in text and resets the
// selection. It always rescans, even when query equals the previous one.
func (s *State) OnQueryChanged(text, query string) {
	*s = Compute(text, query)
}

// Selected returns the selected occurrence, or false when nothing is selected.
func (s State) Selected() (Occurrence, bool) {
	if s.Current < 0 || s.Current >= len(s.Occurrences) {
		return Occurrence{}, false
	}
	return s.Occurrences[s.Current], true
}

// Count returns the number of occurrences.
func (s State) Count() int { return len(s.Occurrences) }

// Advance selects the next occurrence, wrapping from the last back to the
// first. With no occurrences it returns a NO_OCCURRENCES notice and leaves the
// state untouched.
func (s *State) Advance() error {
	n := len(s.Occurrences)
	if n == 0 {
		return errors.NoOccurrences(s.Query)
	}
	s.Current = (s.Current + 1) % n
	return nil
}

// Retreat selects the previous occurrence, wrapping from the first to the
// last.
func (s *State) Retreat() error {
	n := len(s.Occurrences)
	if n == 0 {
		return errors.NoOccurrences(s.Query)
	}
	s.Current--
	if s.Current < 0 {
		s.Current = n - 1
	}
	return nil
}

// Advance is the value form of State.Advance: it returns the advanced state
// and leaves s unchanged.
func Advance(s State) (State, error) {
	next := s
	err := next.Advance()
	return next, err
}
