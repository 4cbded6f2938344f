package token

import (
	"encoding/base64"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/grovetools/jwtview/errors"
	"github.com/grovetools/jwtview/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr bool
		want    Segments
	}{
		{name: "three segments", raw: "a.b.c", want: Segments{"a", "b", "c"}},
		{name: "whitespace", raw: "  a.b.c\n", want: Segments{"a", "b", "c"}},
		{name: "bearer prefix", raw: "Bearer a.b.c", want: Segments{"a", "b", "c"}},
		{name: "empty signature", raw: "a.b.", want: Segments{"a", "b", ""}},
		{name: "two segments", raw: "a.b", wantErr: true},
		{name: "four segments", raw: "a.b.c.d", wantErr: true},
		{name: "empty", raw: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Split(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errors.ErrCodeTokenMalformed))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeSegment(t *testing.T) {
	// "?>?" encodes to "Pz4_" in base64url and "Pz4/" in standard base64.
	for _, seg := range []string{"Pz4_", "Pz4/", "Pz4_=="} {
		data, err := DecodeSegment(seg)
		require.NoError(t, err, seg)
		assert.Equal(t, "?>?", string(data))
	}

	_, err := DecodeSegment("!!!")
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	raw := testutil.MakeToken(t, "", `{"sub":"42","iat":1700000000,"exp":1700003600,"admin":true}`)

	d, err := Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, "{\n  \"alg\": \"HS256\",\n  \"typ\": \"JWT\"\n}", d.Header)
	assert.Equal(t, "{\n  \"sub\": \"42\",\n  \"iat\": 1700000000,\n  \"exp\": 1700003600,\n  \"admin\": true\n}", d.Payload,
		"key order must be preserved")
	require.Len(t, d.Annotations, 2)
	assert.Equal(t, " iat : 2023-11-14T22:13:20Z ", d.Annotations[0].String())
	assert.Equal(t, " exp : 2023-11-14T23:13:20Z ", d.Annotations[1].String())
	assert.Equal(t, strings.Split(raw, ".")[2], d.Signature)
}

func TestDecodeErrors(t *testing.T) {
	header := base64.RawURLEncoding.EncodeToString([]byte(testutil.DefaultHeader))

	tests := []struct {
		name string
		raw  string
		code errors.ErrorCode
	}{
		{"not a token", "hello", errors.ErrCodeTokenMalformed},
		{"bad base64 header", "!!!." + testutil.Segment("{}") + ".sig", errors.ErrCodeSegmentDecode},
		{"bad base64 payload", header + ".!!!.sig", errors.ErrCodeSegmentDecode},
		{"header not json", testutil.Segment("nope") + "." + testutil.Segment("{}") + ".sig", errors.ErrCodeJSONInvalid},
		{"payload not json", header + "." + testutil.Segment("{") + ".sig", errors.ErrCodeJSONInvalid},
		{"payload array", header + "." + testutil.Segment("[1,2]") + ".sig", errors.ErrCodePayloadNotObject},
		{"payload string", header + "." + testutil.Segment(`"x"`) + ".sig", errors.ErrCodePayloadNotObject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.raw)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "error: %v", err)
		})
	}
}

func TestAnnotations(t *testing.T) {
	payload := []byte(`{"exp":"soon","iat":1700000000.9,"nbf":0,"nested":{"exp":1}}`)
	got := Annotations(payload)
	require.Len(t, got, 2)

	assert.Equal(t, "iat", got[0].Claim)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), got[0].Time)
	assert.Equal(t, "nbf", got[1].Claim)
	assert.Equal(t, " nbf : 1970-01-01T00:00:00Z ", got[1].String())
}

func TestSources(t *testing.T) {
	raw := testutil.MakeToken(t, "", `{"a":1}`)

	d, err := Load(StringSource(raw))
	require.NoError(t, err)
	assert.Contains(t, d.Payload, `"a": 1`)

	d, err = Load(ReaderSource{Label: "stdin", Reader: strings.NewReader(raw + "\n")})
	require.NoError(t, err)
	assert.Contains(t, d.Payload, `"a": 1`)

	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "token.txt", raw+"\n")
	d, err = Load(FileSource{Path: path})
	require.NoError(t, err)
	assert.Equal(t, raw, d.Raw)

	_, err = Load(FileSource{Path: filepath.Join(dir, "missing")})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestClipboardSource(t *testing.T) {
	origRead, origWrite, origUnsupported := clipboardRead, clipboardWrite, clipboardUnsupported
	t.Cleanup(func() {
		clipboardRead, clipboardWrite, clipboardUnsupported = origRead, origWrite, origUnsupported
	})

	var board string
	clipboardUnsupported = func() bool { return false }
	clipboardRead = func() (string, error) { return board, nil }
	clipboardWrite = func(s string) error { board = s; return nil }

	raw := testutil.MakeToken(t, "", `{"a":1}`)
	require.NoError(t, CopyToClipboard("  "+raw+"  "))

	got, err := ClipboardSource{}.Read()
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	clipboardRead = func() (string, error) { return "", fmt.Errorf("xclip exited 1") }
	_, err = ClipboardSource{}.Read()
	assert.True(t, errors.Is(err, errors.ErrCodeClipboardUnavailable))

	clipboardUnsupported = func() bool { return true }
	assert.True(t, errors.Is(CopyToClipboard("x"), errors.ErrCodeClipboardUnavailable))
}
