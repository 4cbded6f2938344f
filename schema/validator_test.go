package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	v, err := NewValidator()
	require.NoError(t, err)

	tests := []struct {
		name    string
		data    interface{}
		wantErr string
	}{
		{
			name: "minimal",
			data: map[string]interface{}{"version": "1.0"},
		},
		{
			name: "full",
			data: map[string]interface{}{
				"version": "1.0",
				"theme":   "gruvbox",
				"viewer":  map[string]interface{}{"width": 80, "height": 24, "wrap": true},
				"search":  map[string]interface{}{"max_query_length": 10},
				"watch":   map[string]interface{}{"debounce_ms": 50},
			},
		},
		{
			name:    "missing version",
			data:    map[string]interface{}{"theme": "gruvbox"},
			wantErr: "schema validation failed",
		},
		{
			name:    "unknown theme",
			data:    map[string]interface{}{"version": "1.0", "theme": "neon"},
			wantErr: "/theme",
		},
		{
			name:    "unknown viewer field",
			data:    map[string]interface{}{"version": "1.0", "viewer": map[string]interface{}{"colour": "red"}},
			wantErr: "/viewer",
		},
		{
			name:    "negative debounce",
			data:    map[string]interface{}{"version": "1.0", "watch": map[string]interface{}{"debounce_ms": -5}},
			wantErr: "/watch/debounce_ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.data)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSchemaIsEmbedded(t *testing.T) {
	assert.Contains(t, string(Schema()), `"max_query_length"`)
}
