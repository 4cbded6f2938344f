package testutil

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// DefaultHeader is the header used by MakeToken when none is given.
const DefaultHeader = `{"alg":"HS256","typ":"JWT"}`

// Segment base64url-encodes s without padding.
func Segment(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

// MakeToken builds an unsigned-looking token from raw header and payload JSON.
// The signature segment is random and never verified.
func MakeToken(t *testing.T, header, payload string) string {
	t.Helper()

	if header == "" {
		header = DefaultHeader
	}
	return Segment(header) + "." + Segment(payload) + "." + RandomString(16)
}

// WriteFile writes content to name inside dir and returns the full path.
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

// Chdir changes the working directory for the duration of the test.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})
}

// RandomString generates a random hex string of the specified length
func RandomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		panic(err)
	}
	return hex.EncodeToString(bytes)[:length]
}
