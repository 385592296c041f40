package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/grovetools/plantview/config"
	"github.com/grovetools/plantview/errors"
)

const resourceName = "plantview.schema.json"

// Validator validates configuration documents against the composed schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator compiles the composed schema.
func NewValidator() (*Validator, error) {
	data, err := Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to compose schema: %w", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(resourceName, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	schema, err := compiler.Compile(resourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema: %w", err)
	}
	return &Validator{schema: schema}, nil
}

// Validate checks a document. The value is normalized through JSON first
// so YAML and TOML decoder types validate like their JSON counterparts.
func (v *Validator) Validate(doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "cannot encode configuration for validation")
	}
	var normalized interface{}
	if err := json.Unmarshal(data, &normalized); err != nil {
		return errors.Wrap(err, errors.ErrCodeConfigInvalid, "cannot encode configuration for validation")
	}

	if err := v.schema.Validate(normalized); err != nil {
		var problems []string
		if ve, ok := err.(*jsonschema.ValidationError); ok {
			collectErrors(ve, &problems)
		}
		if len(problems) == 0 {
			problems = []string{err.Error()}
		}
		sort.Strings(problems)
		return errors.New(errors.ErrCodeConfigValidation,
			"schema validation failed:\n"+strings.Join(problems, "\n")).
			WithDetail("problems", problems)
	}
	return nil
}

// ValidateConfig validates the document a configuration was loaded from.
func (v *Validator) ValidateConfig(cfg *config.Config) error {
	if err := v.Validate(cfg.Raw()); err != nil {
		if pe, ok := errors.As(err); ok && len(cfg.Sources()) > 0 {
			pe.WithDetail("sources", cfg.Sources())
		}
		return err
	}
	return nil
}

// collectErrors flattens the leaf causes of a validation error.
func collectErrors(err *jsonschema.ValidationError, messages *[]string) {
	if len(err.Causes) == 0 {
		loc := err.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		*messages = append(*messages, fmt.Sprintf("- %s: %s", loc, err.Message))
		return
	}
	for _, cause := range err.Causes {
		collectErrors(cause, messages)
	}
}
