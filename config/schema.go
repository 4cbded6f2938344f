package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema reflects the JSON Schema of Config. Extensions are left out
// and allowed through additionalProperties at the top level only.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "jwtview Configuration"
	schema.Description = "Schema for jwtview.yml properties."

	return json.MarshalIndent(schema, "", "  ")
}
