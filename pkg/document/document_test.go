package document

import (
	"testing"

	"github.com/grovetools/jwtview/errors"
	"github.com/grovetools/jwtview/pkg/highlight"
	"github.com/grovetools/jwtview/pkg/token"
	"github.com/grovetools/jwtview/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	raw := testutil.MakeToken(t, `{"alg":"none"}`, `{"iat":1700000000,"name":"A"}`)
	d, err := token.Decode(raw)
	require.NoError(t, err)

	want := "Header:\n{\n  \"alg\": \"none\"\n}\n\nPayload:\n" +
		" iat : 2023-11-14T22:13:20Z \n" +
		"\n{\n  \"iat\": 1700000000,\n  \"name\": \"A\"\n}"
	assert.Equal(t, want, Compose(d))
}

func TestBuildClassifiesAnnotations(t *testing.T) {
	raw := testutil.MakeToken(t, `{"alg":"none"}`, `{"iat":1700000000}`)
	d, err := token.Decode(raw)
	require.NoError(t, err)

	doc := Build(d)
	var numbers []string
	for _, s := range doc.Spans() {
		if s.Category == highlight.NumberValue {
			numbers = append(numbers, doc.Text()[s.Start:s.End])
		}
	}
	// The annotation line is plain text and is classified like any other
	// text, so every ":<digits>" in the timestamp is a number too.
	assert.Equal(t, []string{"2023", "13", "20", "1700000000"}, numbers)
}

func TestLineOf(t *testing.T) {
	doc := New("a\nbb\nccc")
	assert.Equal(t, 0, doc.LineOf(0))
	assert.Equal(t, 1, doc.LineOf(2))
	assert.Equal(t, 2, doc.LineOf(5))
	assert.Equal(t, 2, doc.LineOf(100))
	assert.Equal(t, []string{"a", "bb", "ccc"}, doc.Lines())
}

func TestStoreCachesByContent(t *testing.T) {
	store := NewStore(0, nil)
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "token", testutil.MakeToken(t, "", `{"a":1}`))
	src := token.FileSource{Path: path}

	first, cached, err := store.Load(src)
	require.NoError(t, err)
	assert.False(t, cached)

	second, cached, err := store.Load(src)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Same(t, first, second)

	testutil.WriteFile(t, dir, "token", testutil.MakeToken(t, "", `{"a":2}`))
	third, cached, err := store.Load(src)
	require.NoError(t, err)
	assert.False(t, cached)
	assert.Contains(t, third.Document.Text(), `"a": 2`)
}

func TestStoreDecodeError(t *testing.T) {
	store := NewStore(0, nil)
	_, _, err := store.Load(token.StringSource("not-a-token"))
	assert.True(t, errors.Is(err, errors.ErrCodeTokenMalformed))
}
