// Package render composes classifier spans and search state into an ordered
// list of styling directives, and paints them for a terminal.
package render

import (
	"github.com/grovetools/jwtview/pkg/document"
	"github.com/grovetools/jwtview/pkg/highlight"
	"github.com/grovetools/jwtview/pkg/search"
)

// Style tags a directive.
type Style int

const (
	// Classification styles a span by its lexical category.
	Classification Style = iota
	// Match highlights a search occurrence.
	Match
	// Current highlights the selected occurrence.
	Current
)

func (s Style) String() string {
	switch s {
	case Classification:
		return "classification"
	case Match:
		return "highlight-match"
	case Current:
		return "highlight-current"
	default:
		return "unknown"
	}
}

// Directive styles the half-open byte range [Start, End). Category is only
// meaningful for Classification directives.
type Directive struct {
	Start    int
	End      int
	Style    Style
	Category highlight.Category
}

// Render returns the directives for doc in application order: classification
// spans, then every occurrence, then the selected occurrence. Applied in
// sequence, a later directive overrides an earlier one on overlap.
// Ranges outside the document are dropped.
func Render(doc *document.Document, spans []highlight.Span, state search.State) []Directive {
	n := doc.Len()
	out := make([]Directive, 0, len(spans)+len(state.Occurrences)+1)

	for _, s := range spans {
		if valid(s.Start, s.End, n) {
			out = append(out, Directive{Start: s.Start, End: s.End, Style: Classification, Category: s.Category})
		}
	}
	for _, o := range state.Occurrences {
		if valid(o.Start, o.End, n) {
			out = append(out, Directive{Start: o.Start, End: o.End, Style: Match})
		}
	}
	if cur, ok := state.Selected(); ok && valid(cur.Start, cur.End, n) {
		out = append(out, Directive{Start: cur.Start, End: cur.End, Style: Current})
	}
	return out
}

// Document renders doc using its own classifier spans.
func Document(doc *document.Document, state search.State) []Directive {
	return Render(doc, doc.Spans(), state)
}

func valid(start, end, n int) bool {
	return start >= 0 && start < end && end <= n
}
