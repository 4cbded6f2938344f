package pathutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpand(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("JWTVIEW_TEST_DIR", "/tmp/tokens")

	tests := []struct {
		in   string
		want string
	}{
		{"~/token.jwt", filepath.Join(home, "token.jwt")},
		{"~", home},
		{"$JWTVIEW_TEST_DIR/a.jwt", "/tmp/tokens/a.jwt"},
		{"/abs/token.jwt", "/abs/token.jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Expand(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	got, err := Expand("relative.jwt")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
}

func TestSamePath(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "token.jwt")
	require.NoError(t, os.WriteFile(target, []byte("x"), 0600))
	link := filepath.Join(dir, "link.jwt")
	require.NoError(t, os.Symlink(target, link))

	assert.True(t, SamePath(target, link))
	assert.True(t, SamePath(target, filepath.Join(dir, ".", "token.jwt")))
	assert.False(t, SamePath(target, filepath.Join(dir, "other.jwt")))
}
