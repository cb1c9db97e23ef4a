package tutor

import "github.com/abhisek/proofpal/internal/llm"

// WrongConditionsSchema describes the distractor-generation reply.
var WrongConditionsSchema = &llm.Schema{
	Name:        "wrong-conditions",
	Description: "Three plausible-but-wrong conditions for a proof problem",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"wrong_conditions": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Exactly 3 plausible-but-wrong conditions reflecting common student mistakes",
			},
		},
		"required":             []any{"wrong_conditions"},
		"additionalProperties": false,
	},
}

// HintSchema describes the hint reply. do_not_reveal is deliberately not
// required: a reply that omits it still parses, and the safety firewall
// corrects it afterwards rather than rejecting the reply.
var HintSchema = &llm.Schema{
	Name:        "hint-reply",
	Description: "A single next-step hint with justification and diagnosis",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"next_hint": map[string]any{
				"type":        "string",
				"description": "The single next step only, 1-2 sentences, never the full solution",
			},
			"why": map[string]any{
				"type":        "string",
				"description": "Why that step is needed, 1-2 sentences",
			},
			"diagnosis": map[string]any{
				"type":        "string",
				"description": "Assessment of the student's current understanding, 1-2 sentences",
			},
			"do_not_reveal": map[string]any{
				"type":        "boolean",
				"description": "Must be true, certifying no complete solution was disclosed",
			},
		},
		"required": []any{"next_hint", "why", "diagnosis"},
	},
}

// GeneratedProblemSchema describes the LLM-generated problem reply.
var GeneratedProblemSchema = &llm.Schema{
	Name:        "generated-problem",
	Description: "A geometry proof problem with theorem context, givens and conclusion",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"theorem_context": map[string]any{
				"type":        "string",
				"description": "The theorem or context the problem is built on",
			},
			"given": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "The given conditions, one per entry",
			},
			"to_prove": map[string]any{
				"type":        "string",
				"description": "The conclusion to prove, mathematically consistent with the givens",
			},
		},
		"required":             []any{"theorem_context", "given", "to_prove"},
		"additionalProperties": false,
	},
}
