package version

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShort(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{"dev build", Info{Version: "dev", Commit: "none"}, "dev"},
		{"no commit", Info{Version: "v1.0.0"}, "v1.0.0"},
		{"full hash", Info{Version: "v1.2.0", Commit: "3f9a1c2d8e7b"}, "v1.2.0 (3f9a1c2)"},
		{"short hash", Info{Version: "v1.2.0", Commit: "abc"}, "v1.2.0 (abc)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.Short())
		})
	}
}

func TestGetInfo(t *testing.T) {
	info := GetInfo()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
	assert.Contains(t, info.String(), "Commit:")
}
