// Package highlight classifies spans of pretty-printed JSON text into lexical
// categories for syntax highlighting.
//
// Classification is pattern based and best effort: it never assumes the input is
// valid JSON and never fails. Four passes run over the original text in a fixed
// order (keys, string values, numbers, booleans/null); when two passes style the
// same bytes the later pass wins.
package highlight

import (
	"regexp"
)

// Category is the lexical class of a span.
type Category int

const (
	Key Category = iota
	StringValue
	NumberValue
	BooleanOrNull
)

// String returns the lower-case name used in logs and JSON output.
func (c Category) String() string {
	switch c {
	case Key:
		return "key"
	case StringValue:
		return "string"
	case NumberValue:
		return "number"
	case BooleanOrNull:
		return "boolean"
	default:
		return "unknown"
	}
}

// MarshalText lets categories appear by name in JSON output.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Span is a classified half-open byte range [Start, End) of a text.
type Span struct {
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Category Category `json:"category"`
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

var (
	keyPattern     = regexp.MustCompile(`("(?:\\.|[^"])*")\s*:`)
	stringPattern  = regexp.MustCompile(`:\s*("(?:\\.|[^"])*")`)
	numberPattern  = regexp.MustCompile(`:\s*(-?\d+(?:\.\d+)?)`)
	literalPattern = regexp.MustCompile(`(?i):\s*(true|false|null)`)
)

// pass binds a pattern to the category it emits. Group 1 of every pattern
// delimits the styled part of the match.
type pass struct {
	pattern  *regexp.Regexp
	category Category
}

var passes = []pass{
	{keyPattern, Key},
	{stringPattern, StringValue},
	{numberPattern, NumberValue},
	{literalPattern, BooleanOrNull},
}

// Passes returns the raw styling operations in application order: all key
// spans, then string values, numbers and literals. Spans of different passes
// may overlap; use Classify to resolve them.
func Passes(text string) []Span {
	var ops []Span
	for _, p := range passes {
		for _, m := range p.pattern.FindAllStringSubmatchIndex(text, -1) {
			start, end := m[2], m[3]
			if start < 0 || end <= start {
				continue
			}
			ops = append(ops, Span{Start: start, End: end, Category: p.category})
		}
	}
	return ops
}

// Classify returns the ascending, non-overlapping spans of text. Overlaps
// between passes are resolved last-write-wins.
func Classify(text string) []Span {
	return Flatten(Passes(text))
}

// Flatten applies ops in order onto an empty interval set, clipping whatever
// an op covers, and returns the surviving spans sorted by Start.
func Flatten(ops []Span) []Span {
	length := 0
	for _, op := range ops {
		length = max(length, op.End)
	}
	if length == 0 {
		return nil
	}

	owner := make([]int32, length)
	for i := range owner {
		owner[i] = -1
	}
	for i, op := range ops {
		for p := max(op.Start, 0); p < op.End; p++ {
			owner[p] = int32(i)
		}
	}

	var out []Span
	runStart := 0
	for p := 1; p <= length; p++ {
		if p < length && owner[p] == owner[runStart] {
			continue
		}
		if idx := owner[runStart]; idx >= 0 {
			out = append(out, Span{Start: runStart, End: p, Category: ops[idx].Category})
		}
		runStart = p
	}
	return out
}

// Overlay paints top over base. Parts of base spans outside top survive; the
// range of top belongs to top alone. base need not be sorted.
func Overlay(base []Span, top Span) []Span {
	out := make([]Span, 0, len(base)+2)
	for _, s := range base {
		if s.End <= top.Start || s.Start >= top.End {
			out = append(out, s)
			continue
		}
		if s.Start < top.Start {
			out = append(out, Span{Start: s.Start, End: top.Start, Category: s.Category})
		}
		if s.End > top.End {
			out = append(out, Span{Start: top.End, End: s.End, Category: s.Category})
		}
	}
	return append(out, top)
}
