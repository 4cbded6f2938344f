// Package document composes a decoded token into the single text shown to the
// user and caches the classification computed for it.
package document

import (
	"strings"

	"github.com/grovetools/jwtview/pkg/highlight"
	"github.com/grovetools/jwtview/pkg/profiling"
	"github.com/grovetools/jwtview/pkg/token"
)

// Document is the immutable rendered text of one decoded token together with
// its classifier spans, computed once at construction.
type Document struct {
	text  string
	spans []highlight.Span
}

// New classifies text and wraps it in a Document.
func New(text string) *Document {
	defer profiling.Start("classify").Stop()
	return &Document{text: text, spans: highlight.Classify(text)}
}

// Build renders d as
//
//	Header:
//	<header>
//
//	Payload:
//	<annotation lines>
//	<payload>
func Build(d *token.Decoded) *Document {
	return New(Compose(d))
}

// Compose returns the rendered text of d without classifying it.
func Compose(d *token.Decoded) string {
	var b strings.Builder
	b.WriteString("Header:\n")
	b.WriteString(d.Header)
	b.WriteString("\n\nPayload:\n")
	for _, a := range d.Annotations {
		b.WriteString(a.String())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(d.Payload)
	return b.String()
}

// Text returns the document content.
func (d *Document) Text() string { return d.text }

// Len returns the length of the content in bytes.
func (d *Document) Len() int { return len(d.text) }

// Spans returns the classifier spans. Callers must not modify the slice.
func (d *Document) Spans() []highlight.Span { return d.spans }

// Lines splits the content on newlines.
func (d *Document) Lines() []string { return strings.Split(d.text, "\n") }

// LineOf returns the zero-based line containing byte offset off.
func (d *Document) LineOf(off int) int {
	if off > len(d.text) {
		off = len(d.text)
	}
	if off < 0 {
		off = 0
	}
	return strings.Count(d.text[:off], "\n")
}
