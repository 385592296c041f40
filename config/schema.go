package config

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the base JSON Schema for the core configuration.
// Extension sections (such as "logging") are added by schema composition.
func GenerateSchema() ([]byte, error) {
	schema := Reflect()
	return json.MarshalIndent(schema, "", "  ")
}

// Reflect returns the core schema as a value, for composition.
func Reflect() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
		RequiredFromJSONSchemaTags: true,
	}

	schema := r.Reflect(&Config{})
	schema.Title = "plantview configuration"
	schema.Description = "Schema for plantview.yml."
	return schema
}
