// Package keymap lets users rebind viewer keys from the "keys" section of
// jwtview.yml:
//
//	keys:
//	  next_match: ["n", "ctrl+n"]
//	  copy: ["c"]
package keymap

import (
	"reflect"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	"github.com/grovetools/jwtview/config"
)

// Overrides maps snake_case binding names to replacement keys.
type Overrides map[string][]string

// FromConfig reads the "keys" extension section. A missing or malformed
// section yields no overrides.
func FromConfig(cfg *config.Config) (Overrides, error) {
	if cfg == nil {
		return nil, nil
	}
	var o Overrides
	if err := cfg.UnmarshalExtension("keys", &o); err != nil {
		return nil, err
	}
	return o, nil
}

// ApplyOverrides rebinds the key.Binding fields of the struct km points to.
// Field names map to config keys in snake_case (NextMatch -> next_match).
// Embedded structs are processed recursively; help text descriptions are kept.
func ApplyOverrides(km interface{}, overrides Overrides) {
	if len(overrides) == 0 {
		return
	}

	v := reflect.ValueOf(km)
	if v.Kind() != reflect.Ptr {
		return
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return
	}

	applyOverridesRecursive(v, overrides)
}

func applyOverridesRecursive(v reflect.Value, overrides Overrides) {
	t := v.Type()
	bindingType := reflect.TypeOf(key.Binding{})

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if fieldType.Anonymous && field.Kind() == reflect.Struct {
			applyOverridesRecursive(field, overrides)
			continue
		}

		if fieldType.Type != bindingType {
			continue
		}

		keys, ok := overrides[camelToSnake(fieldType.Name)]
		if !ok || len(keys) == 0 {
			continue
		}
		desc := field.Interface().(key.Binding).Help().Desc
		field.Set(reflect.ValueOf(key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(strings.Join(keys, "/"), desc),
		)))
	}
}

// camelToSnake converts CamelCase to snake_case: NextMatch -> next_match.
func camelToSnake(s string) string {
	var result strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				result.WriteRune('_')
			}
			result.WriteRune(unicode.ToLower(r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}
