// Package profiling records nested wall-clock spans of the token pipeline
// (read, decode, classify, search) and prints them as a tree.
package profiling

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Stopper ends a timed span.
type Stopper interface {
	Stop()
}

type span struct {
	name     string
	start    time.Time
	duration time.Duration
	children []*span
	profiler *Profiler
}

func (s *span) Stop() {
	s.profiler.endSpan(s, time.Since(s.start))
}

// Profiler collects a tree of spans. The zero value is disabled.
type Profiler struct {
	mu      sync.Mutex
	enabled bool
	root    *span
	stack   []*span
}

var defaultProfiler = &Profiler{}

// Enable turns on the global profiler.
func Enable() { defaultProfiler.Enable() }

// Start begins a span on the global profiler. It is a no-op until Enable is
// called.
func Start(name string) Stopper { return defaultProfiler.Start(name) }

// Summarize prints the global profile to w.
func Summarize(w io.Writer) { defaultProfiler.Summarize(w) }

// Enable starts a new profile.
func (p *Profiler) Enable() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled {
		return
	}
	p.enabled = true
	p.root = &span{name: "total", start: time.Now(), profiler: p}
	p.stack = []*span{p.root}
}

// Start begins a span nested in the innermost open span.
func (p *Profiler) Start(name string) Stopper {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return noopStopper{}
	}
	parent := p.stack[len(p.stack)-1]
	s := &span{name: name, start: time.Now(), profiler: p}
	parent.children = append(parent.children, s)
	p.stack = append(p.stack, s)
	return s
}

func (p *Profiler) endSpan(s *span, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s.duration = d
	for i := len(p.stack) - 1; i > 0; i-- {
		if p.stack[i] == s {
			p.stack = p.stack[:i]
			return
		}
	}
}

// Summarize prints the span tree with each span's share of the total.
func (p *Profiler) Summarize(w io.Writer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return
	}
	if p.root.duration == 0 {
		p.root.duration = time.Since(p.root.start)
	}

	fmt.Fprintln(w, "\n--- Timing Profile ---")
	for _, child := range sorted(p.root.children) {
		printSpan(w, child, 0, p.root.duration)
	}
	fmt.Fprintf(w, "total %v\n", p.root.duration.Round(100*time.Microsecond))
	fmt.Fprintln(w, "----------------------")
}

func printSpan(w io.Writer, s *span, depth int, total time.Duration) {
	percent := 0.0
	if total > 0 {
		percent = float64(s.duration) / float64(total) * 100
	}
	fmt.Fprintf(w, "%s- %s (%v, %.1f%%)\n", strings.Repeat("  ", depth), s.name, s.duration.Round(100*time.Microsecond), percent)
	for _, child := range sorted(s.children) {
		printSpan(w, child, depth+1, total)
	}
}

func sorted(spans []*span) []*span {
	sort.SliceStable(spans, func(i, j int) bool {
		return spans[i].start.Before(spans[j].start)
	})
	return spans
}

type noopStopper struct{}

func (noopStopper) Stop() {}
