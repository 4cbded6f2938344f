package config

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"testing"

	"github.com/grovetools/jwtview/errors"
	"github.com/grovetools/jwtview/schema"
	"github.com/grovetools/jwtview/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`version: "1.0"`), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, DefaultVersion, cfg.Version)
	assert.Equal(t, DefaultTheme, cfg.Theme)
	assert.Equal(t, DefaultMaxQueryLength, cfg.Search.MaxQueryLength)
	assert.Equal(t, DefaultDebounceMs, cfg.Watch.DebounceMs)
	assert.Zero(t, cfg.Viewer.Width)
	assert.Equal(t, Default(), &Config{
		Version: DefaultVersion,
		Theme:   DefaultTheme,
		Search:  SearchConfig{MaxQueryLength: DefaultMaxQueryLength},
		Watch:   WatchConfig{DebounceMs: DefaultDebounceMs},
	})
}

func TestLoadYAML(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
version: "1.0"
theme: gruvbox
viewer:
  width: 120
  height: 40
  wrap: true
search:
  max_query_length: 64
watch:
  debounce_ms: 250
`), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, ViewerConfig{Width: 120, Height: 40, Wrap: true}, cfg.Viewer)
	assert.Equal(t, 64, cfg.Search.MaxQueryLength)
	assert.Equal(t, 250, cfg.Watch.DebounceMs)
	assert.Empty(t, cfg.Extensions)
}

// TestExtensions verifies that unknown sections survive loading and decode on demand.
func TestExtensions(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
version: "1.0"

logging:
  level: debug
  report_caller: true

clipboard:
  timeout: 3
`), FormatYAML)
	require.NoError(t, err)
	require.Contains(t, cfg.Extensions, "logging")
	require.Contains(t, cfg.Extensions, "clipboard")

	type loggingSection struct {
		Level        string `yaml:"level"`
		ReportCaller bool   `yaml:"report_caller"`
	}
	var logCfg loggingSection
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "debug", logCfg.Level)
	assert.True(t, logCfg.ReportCaller)

	var clip struct {
		Timeout int `yaml:"timeout"`
	}
	require.NoError(t, cfg.UnmarshalExtension("clipboard", &clip))
	assert.Equal(t, 3, clip.Timeout)

	var missing loggingSection
	require.NoError(t, cfg.UnmarshalExtension("absent", &missing))
	assert.Equal(t, loggingSection{}, missing)
}

func TestLoadTOML(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
version = "1.0"
theme = "terminal"

[viewer]
wrap = true

[logging]
level = "warn"
`), FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "terminal", cfg.Theme)
	assert.True(t, cfg.Viewer.Wrap)
	assert.NotContains(t, cfg.Extensions, "viewer")

	var logCfg struct {
		Level string `yaml:"level"`
	}
	require.NoError(t, cfg.UnmarshalExtension("logging", &logCfg))
	assert.Equal(t, "warn", logCfg.Level)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{"bad yaml", "version: [", FormatYAML},
		{"bad toml", "version = ", FormatTOML},
		{"unknown theme", "version: \"1.0\"\ntheme: neon", FormatYAML},
		{"negative width", "version: \"1.0\"\nviewer:\n  width: -1", FormatYAML},
		{"wrong type", "version: \"1.0\"\nsearch:\n  max_query_length: many", FormatYAML},
		{"unsupported version", `version: "2.0"`, FormatYAML},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeConfigInvalid), "got %v", err)
		})
	}
}

func TestEnvExpansion(t *testing.T) {
	t.Setenv("JWTVIEW_TEST_THEME", "gruvbox")

	cfg, err := LoadFromBytes([]byte("version: \"1.0\"\ntheme: ${JWTVIEW_TEST_THEME}\nwatch:\n  debounce_ms: ${JWTVIEW_TEST_UNSET:-500}\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, "gruvbox", cfg.Theme)
	assert.Equal(t, 500, cfg.Watch.DebounceMs)
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	root := t.TempDir()
	want := testutil.WriteFile(t, root, "jwtview.yml", `version: "1.0"`)
	nested := filepath.Join(root, "a", "b")
	testutil.WriteFile(t, nested, "placeholder", "")

	got, err := FindConfigFile(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindConfigFileXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	want := testutil.WriteFile(t, xdg, filepath.Join("jwtview", "jwtview.toml"), `version = "1.0"`)

	got, err := FindConfigFile(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindConfigFileNotFound(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := FindConfigFile(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "custom.toml", "version = \"1.0\"\ntheme = \"gruvbox\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gruvbox", cfg.Theme)

	_, err = Load(filepath.Join(dir, "missing.yml"))
	assert.True(t, errors.Is(err, errors.ErrCodeConfigNotFound))
}

func TestResolve(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	testutil.Chdir(t, t.TempDir())

	cfg, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := testutil.WriteFile(t, t.TempDir(), "jwtview.yml", "version: \"1.0\"\ntheme: terminal\n")
	cfg, err = Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, "terminal", cfg.Theme)
}

func propertyNames(t *testing.T, data []byte) []string {
	t.Helper()

	var doc struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	var names []string
	for name := range doc.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestGeneratedSchemaMatchesEmbedded(t *testing.T) {
	generated, err := GenerateSchema()
	require.NoError(t, err)

	want := []string{"search", "theme", "version", "viewer", "watch"}
	assert.Equal(t, want, propertyNames(t, generated))
	assert.Equal(t, want, propertyNames(t, schema.Schema()))
}
