// Package search finds case-insensitive occurrences of a query in a text and
// keeps the navigation state used to step through them.
package search

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Occurrence is a half-open byte range [Start, End) where the query matched.
type Occurrence struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Len returns the number of bytes covered by the occurrence.
func (o Occurrence) Len() int { return o.End - o.Start }

// Search returns every non-overlapping occurrence of query in text, compared
// case-insensitively, in ascending order. Scanning resumes at the end of each
// match, so "aa" in "aaaa" yields two occurrences. An empty query yields none.
func Search(text, query string) []Occurrence {
	if query == "" {
		return nil
	}
	folded := Fold(text)
	needle := Fold(query)

	var res []Occurrence
	off := 0
	for off <= len(folded)-len(needle) {
		idx := strings.Index(folded[off:], needle)
		if idx < 0 {
			break
		}
		start := off + idx
		end := start + len(needle)
		res = append(res, Occurrence{Start: start, End: end})
		off = end
	}
	return res
}

// Fold lower-cases s rune by rune without changing its byte length, so
// offsets found in the folded string are valid in the original. Runes whose
// lower-case form has a different UTF-8 width are left as they are.
func Fold(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError {
			b.WriteString(s[i : i+size])
			i += size
			continue
		}
		lower := unicode.ToLower(r)
		if utf8.RuneLen(lower) == size {
			b.WriteRune(lower)
		} else {
			b.WriteRune(r)
		}
		i += size
	}
	return b.String()
}
