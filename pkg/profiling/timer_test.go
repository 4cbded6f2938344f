package profiling

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisabledProfilerRecordsNothing(t *testing.T) {
	p := &Profiler{}
	p.Start("decode").Stop()

	var buf bytes.Buffer
	p.Summarize(&buf)
	assert.Empty(t, buf.String())
}

func TestNestedSpans(t *testing.T) {
	p := &Profiler{}
	p.Enable()

	load := p.Start("load")
	p.Start("decode").Stop()
	p.Start("classify").Stop()
	load.Stop()
	p.Start("search").Stop()

	var buf bytes.Buffer
	p.Summarize(&buf)
	out := buf.String()

	assert.Contains(t, out, "- load (")
	assert.Contains(t, out, "  - decode (")
	assert.Contains(t, out, "  - classify (")
	assert.Contains(t, out, "\n- search (")
	assert.Less(t, strings.Index(out, "decode"), strings.Index(out, "classify"))
	assert.Contains(t, out, "total ")
}

func TestStopOutOfOrder(t *testing.T) {
	p := &Profiler{}
	p.Enable()

	outer := p.Start("outer")
	inner := p.Start("inner")
	outer.Stop()
	inner.Stop()
	p.Start("next").Stop()

	var buf bytes.Buffer
	p.Summarize(&buf)
	assert.Contains(t, buf.String(), "\n- next (")
}
