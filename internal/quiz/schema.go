package quiz

import (
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// itemSchema is the shape gate for one candidate element of the payload
// array. It is deliberately looser than the semantic checks in
// checkItem: topic, difficulty, source, id, and estimated_confidence are
// optional because the validator fills defaults for them, and counts and
// lengths are rejected semantically so the rejection reason names the
// violated invariant.
var itemSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":         map[string]any{"type": "string"},
		"topic":      map[string]any{"type": "string"},
		"difficulty": map[string]any{"type": "string"},
		"question":   map[string]any{"type": "string"},
		"options": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"label":      map[string]any{"type": "string"},
					"text":       map[string]any{"type": "string"},
					"is_correct": map[string]any{"type": "boolean"},
				},
				"required": []any{"label", "text", "is_correct"},
			},
		},
		"explanation": map[string]any{"type": "string"},
		"distractor_rationale": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"source":               map[string]any{"type": "string"},
		"estimated_confidence": map[string]any{"type": "number"},
	},
	"required": []any{"question", "options", "explanation", "distractor_rationale"},
}

var (
	compiledItemSchema *jsonschema.Schema
	compileOnce        sync.Once
	compileErr         error
)

// itemShapeSchema returns the compiled element schema, compiling it on
// first use.
func itemShapeSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		const url = "schema://mcq-item.json"
		if err := c.AddResource(url, itemSchema); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledItemSchema, compileErr = c.Compile(url)
	})
	return compiledItemSchema, compileErr
}
