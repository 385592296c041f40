// Package schema composes and validates the JSON Schema of plantview.yml.
package schema

//go:generate go run ../tools/schema-generator -o plantview.schema.json

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/invopop/jsonschema"

	"github.com/grovetools/plantview/config"
)

// Compose builds the full configuration schema: the core sections from the
// config package plus every registered extension section. Definitions of
// extensions are hoisted into the root $defs so their references resolve.
func Compose() (map[string]interface{}, error) {
	root, err := toMap(config.Reflect())
	if err != nil {
		return nil, err
	}
	delete(root, "$id")

	props, _ := root["properties"].(map[string]interface{})
	if props == nil {
		props = map[string]interface{}{}
		root["properties"] = props
	}
	defs, _ := root["$defs"].(map[string]interface{})
	if defs == nil {
		defs = map[string]interface{}{}
	}

	names := make([]string, 0, len(Extensions))
	for name := range Extensions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		ext, err := toMap(Extensions[name]())
		if err != nil {
			return nil, fmt.Errorf("extension %s: %w", name, err)
		}
		if extDefs, ok := ext["$defs"].(map[string]interface{}); ok {
			for k, v := range extDefs {
				if _, clash := defs[k]; clash {
					return nil, fmt.Errorf("extension %s: definition %q already exists", name, k)
				}
				defs[k] = v
			}
		}
		for _, k := range []string{"$defs", "$schema", "$id"} {
			delete(ext, k)
		}
		props[name] = ext
	}

	if len(defs) > 0 {
		root["$defs"] = defs
	}
	return root, nil
}

// Generate renders the composed schema as indented JSON.
func Generate() ([]byte, error) {
	s, err := Compose()
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(s, "", "  ")
}

func toMap(s *jsonschema.Schema) (map[string]interface{}, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
