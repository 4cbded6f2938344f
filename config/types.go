package config

import (
	"github.com/grovetools/jwtview/errors"
	"github.com/mitchellh/mapstructure"
)

// Config is the jwtview configuration as read from jwtview.yml or jwtview.toml.
type Config struct {
	Version string       `yaml:"version" toml:"version" json:"version" jsonschema:"description=Configuration version (e.g. '1.0')"`
	Theme   string       `yaml:"theme,omitempty" toml:"theme,omitempty" json:"theme,omitempty" jsonschema:"enum=kanagawa,enum=gruvbox,enum=terminal,description=Color theme of the viewer"`
	Viewer  ViewerConfig `yaml:"viewer,omitempty" toml:"viewer,omitempty" json:"viewer,omitempty" jsonschema:"description=Viewer window settings"`
	Search  SearchConfig `yaml:"search,omitempty" toml:"search,omitempty" json:"search,omitempty" jsonschema:"description=Search bar settings"`
	Watch   WatchConfig  `yaml:"watch,omitempty" toml:"watch,omitempty" json:"watch,omitempty" jsonschema:"description=File watching settings"`

	// Extensions holds every top-level section jwtview does not know about,
	// such as "logging". Decode one with UnmarshalExtension.
	Extensions map[string]interface{} `yaml:",inline" toml:"-" json:"-" jsonschema:"-"`
}

// ViewerConfig sizes the viewer window. Zero width or height means "use the
// terminal size".
type ViewerConfig struct {
	Width  int  `yaml:"width,omitempty" toml:"width,omitempty" json:"width,omitempty" jsonschema:"minimum=0,description=Viewer width in columns (0 follows the terminal)"`
	Height int  `yaml:"height,omitempty" toml:"height,omitempty" json:"height,omitempty" jsonschema:"minimum=0,description=Viewer height in rows (0 follows the terminal)"`
	Wrap   bool `yaml:"wrap,omitempty" toml:"wrap,omitempty" json:"wrap,omitempty" jsonschema:"description=Soft-wrap lines longer than the viewer width"`
}

// SearchConfig configures the search input.
type SearchConfig struct {
	MaxQueryLength int `yaml:"max_query_length,omitempty" toml:"max_query_length,omitempty" json:"max_query_length,omitempty" jsonschema:"minimum=0,description=Maximum number of characters in a query"`
}

// WatchConfig configures reloading of watched token files.
type WatchConfig struct {
	DebounceMs int `yaml:"debounce_ms,omitempty" toml:"debounce_ms,omitempty" json:"debounce_ms,omitempty" jsonschema:"minimum=0,description=Delay in milliseconds before a changed file is reloaded"`
}

const (
	DefaultVersion        = "1.0"
	DefaultTheme          = "kanagawa"
	DefaultMaxQueryLength = 100
	DefaultDebounceMs     = 100
)

// Themes lists the accepted theme names.
var Themes = []string{"kanagawa", "gruvbox", "terminal"}

// Default returns a configuration with every default applied.
func Default() *Config {
	c := &Config{}
	c.SetDefaults()
	return c
}

// SetDefaults fills in zero values.
func (c *Config) SetDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
	if c.Search.MaxQueryLength == 0 {
		c.Search.MaxQueryLength = DefaultMaxQueryLength
	}
	if c.Watch.DebounceMs == 0 {
		c.Watch.DebounceMs = DefaultDebounceMs
	}
}

// Validate checks values the schema cannot express on its own.
func (c *Config) Validate() error {
	if c.Version != DefaultVersion {
		return errors.ConfigInvalid("unsupported configuration version").
			WithDetail("version", c.Version).
			WithDetail("supported", DefaultVersion)
	}

	known := false
	for _, t := range Themes {
		if c.Theme == t {
			known = true
			break
		}
	}
	if !known {
		return errors.ConfigInvalid("unknown theme").
			WithDetail("theme", c.Theme).
			WithDetail("available", Themes)
	}

	if c.Viewer.Width < 0 || c.Viewer.Height < 0 {
		return errors.ConfigInvalid("viewer size must not be negative").
			WithDetail("width", c.Viewer.Width).
			WithDetail("height", c.Viewer.Height)
	}
	if c.Search.MaxQueryLength < 0 {
		return errors.ConfigInvalid("search.max_query_length must not be negative").
			WithDetail("max_query_length", c.Search.MaxQueryLength)
	}
	if c.Watch.DebounceMs < 0 {
		return errors.ConfigInvalid("watch.debounce_ms must not be negative").
			WithDetail("debounce_ms", c.Watch.DebounceMs)
	}
	return nil
}

// UnmarshalExtension decodes the extension section named key into target.
// A missing section leaves target untouched.
func (c *Config) UnmarshalExtension(key string, target interface{}) error {
	if c.Extensions == nil {
		return nil
	}
	raw, ok := c.Extensions[key]
	if !ok {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "yaml",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "failed to create extension decoder")
	}
	if err := decoder.Decode(raw); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "failed to decode extension").
			WithDetail("extension", key)
	}
	return nil
}
