// internal/server/schema.go
package server

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// pieRequestSchema describes the body of the pie callback.
var pieRequestSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"site": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
	},
	"required":             []string{"site"},
	"additionalProperties": false,
}

// scatterRequestSchema describes the body of the scatter callback.
var scatterRequestSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"site": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"payload": map[string]any{
			"type":     "array",
			"items":    map[string]any{"type": "number"},
			"minItems": 2,
			"maxItems": 2,
		},
	},
	"required":             []string{"site", "payload"},
	"additionalProperties": false,
}

var (
	pieSchema     = mustCompile(pieRequestSchema)
	scatterSchema = mustCompile(scatterRequestSchema)
)

func mustCompile(def map[string]any) *gojsonschema.Schema {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(def))
	if err != nil {
		panic(fmt.Sprintf("compile schema: %v", err))
	}
	return schema
}

// validateBody checks body against schema and joins every violation into one error.
func validateBody(schema *gojsonschema.Schema, body []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if result.Valid() {
		return nil
	}
	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return fmt.Errorf("JSON validation failed: %s", strings.Join(errs, ", "))
}
