package catalog

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const schemaURL = "schema://scenarios.json"

// scenariosSchema describes the bundled story document.
var scenariosSchema = map[string]any{
	"type": "array",
	"items": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"id":            map[string]any{"type": "string", "minLength": 1},
			"ageRange":      map[string]any{"type": "string", "enum": []any{"4-6", "7-9", "10-12"}},
			"animal":        map[string]any{"type": "string"},
			"animalEmoji":   map[string]any{"type": "string"},
			"title":         map[string]any{"type": "string", "minLength": 1},
			"feeling":       map[string]any{"type": "string", "minLength": 1},
			"story":         map[string]any{"type": "string"},
			"imagePrompt":   map[string]any{"type": "string"},
			"endingMessage": map[string]any{"type": "string"},
			"choices": map[string]any{
				"type":     "array",
				"minItems": 3,
				"maxItems": 4,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":          map[string]any{"type": "string", "enum": []any{"a", "b", "c", "d"}},
						"text":        map[string]any{"type": "string"},
						"type":        map[string]any{"type": "string", "enum": []any{"good", "okay", "bad", "unrelated"}},
						"explanation": map[string]any{"type": "string"},
					},
					"required": []any{"id", "text", "type", "explanation"},
				},
			},
		},
		"required": []any{
			"id", "ageRange", "animal", "animalEmoji", "title", "feeling",
			"story", "imagePrompt", "choices", "endingMessage",
		},
	},
}

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a decoded JSON value, so round-trip the Go map.
		raw, err := json.Marshal(scenariosSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal schema: %w", err)
			return
		}
		var def any
		if err := json.Unmarshal(raw, &def); err != nil {
			compileErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(schemaURL, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
	})
	return compiled, compileErr
}

// validate checks raw against the scenarios schema.
func validate(raw []byte) error {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	sch, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	if err := sch.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
