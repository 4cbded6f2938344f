package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/grovetools/jwtview/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCamelToSnake(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NextMatch", "next_match"},
		{"Copy", "copy"},
		{"GotoTop", "goto_top"},
		{"A", "a"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, camelToSnake(tt.input))
		})
	}
}

type navKeys struct {
	Quit key.Binding
}

type testKeyMap struct {
	navKeys
	NextMatch   key.Binding
	Copy        key.Binding
	unexported  key.Binding
	NotABinding string
}

func newTestKeyMap() testKeyMap {
	return testKeyMap{
		navKeys:     navKeys{Quit: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit"))},
		NextMatch:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next match")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		unexported:  key.NewBinding(key.WithKeys("u")),
		NotABinding: "untouched",
	}
}

func TestApplyOverrides(t *testing.T) {
	km := newTestKeyMap()
	ApplyOverrides(&km, Overrides{
		"next_match":    {"ctrl+n", "n"},
		"quit":          {"x"},
		"unexported":    {"z"},
		"not_a_binding": {"w"},
	})

	assert.Equal(t, []string{"ctrl+n", "n"}, km.NextMatch.Keys())
	assert.Equal(t, "ctrl+n/n", km.NextMatch.Help().Key)
	assert.Equal(t, "next match", km.NextMatch.Help().Desc)
	assert.Equal(t, []string{"x"}, km.Quit.Keys())
	assert.Equal(t, "quit", km.Quit.Help().Desc)
	assert.Equal(t, []string{"y"}, km.Copy.Keys())
	assert.Equal(t, []string{"u"}, km.unexported.Keys())
	assert.Equal(t, "untouched", km.NotABinding)
}

func TestApplyOverridesIgnoresNonPointers(t *testing.T) {
	km := newTestKeyMap()
	ApplyOverrides(km, Overrides{"copy": {"c"}})
	assert.Equal(t, []string{"y"}, km.Copy.Keys())

	ApplyOverrides(&km, nil)
	assert.Equal(t, []string{"y"}, km.Copy.Keys())
}

func TestFromConfig(t *testing.T) {
	cfg, err := config.LoadFromBytes([]byte("version: \"1.0\"\nkeys:\n  copy: [c]\n  prev_match: [\"N\", p]\n"), config.FormatYAML)
	require.NoError(t, err)

	o, err := FromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, Overrides{"copy": {"c"}, "prev_match": {"N", "p"}}, o)

	o, err = FromConfig(config.Default())
	require.NoError(t, err)
	assert.Empty(t, o)

	o, err = FromConfig(nil)
	require.NoError(t, err)
	assert.Nil(t, o)
}
