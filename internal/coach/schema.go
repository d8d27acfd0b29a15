package coach

import "github.com/bigfeelings/bigfeelings/internal/llm"

// StartersSchema describes the reply. Item counts are not part of the
// schema because structured-output modes disagree on minItems/maxItems;
// the service trims and checks the count instead.
var StartersSchema = &llm.Schema{
	Name:        "conversation-starters",
	Description: "Questions a parent can ask their child after a feelings quiz",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"starters": map[string]any{
				"type":        "array",
				"description": "Open questions, one sentence each, addressed to the child",
				"items":       map[string]any{"type": "string"},
			},
		},
		"required":             []any{"starters"},
		"additionalProperties": false,
	},
}
