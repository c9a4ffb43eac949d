package tutor

import "github.com/abhisek/cbsetutor/internal/llm"

// NoteSchema defines the JSON schema for a remediation note.
var NoteSchema = &llm.Schema{
	Name:        "remediation-note",
	Description: "A short lesson on one weak concept with a worked example and a practice question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Short title for the note (3-8 words)",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "Clear explanation of the concept pitched at the student's class (3-5 sentences)",
			},
			"worked_example": map[string]any{
				"type":        "string",
				"description": "Step-by-step solution to a typical board-exam style problem, with numbered steps",
			},
			"practice_question": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"text": map[string]any{
						"type":        "string",
						"description": "An easier multiple-choice question on the same concept",
					},
					"options": map[string]any{
						"type":     "array",
						"items":    map[string]any{"type": "string"},
						"minItems": 2,
						"maxItems": 4,
					},
					"correct_option_index": map[string]any{
						"type":    "integer",
						"minimum": 0,
						"maximum": 3,
					},
					"explanation": map[string]any{
						"type":        "string",
						"description": "Why the correct option is right",
					},
				},
				"required":             []any{"text", "options", "correct_option_index", "explanation"},
				"additionalProperties": false,
			},
		},
		"required":             []any{"title", "explanation", "worked_example", "practice_question"},
		"additionalProperties": false,
	},
}
