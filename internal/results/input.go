package results

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/cbsetutor/internal/assessment"
)

// ErrInvalidInput wraps schema and consistency failures of input documents.
var ErrInvalidInput = errors.New("invalid input")

const definitions = `{
  "$defs": {
    "question": {
      "type": "object",
      "required": ["id", "conceptTag", "correctOptionIndex"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "conceptTag": {"type": "string", "minLength": 1},
        "correctOptionIndex": {"type": "integer", "minimum": 0}
      }
    },
    "answer": {
      "type": "object",
      "required": ["questionId"],
      "properties": {
        "questionId": {"type": "string", "minLength": 1},
        "selectedOptionIndex": {"type": ["integer", "null"], "minimum": 0},
        "timeSpentSeconds": {"type": "number", "minimum": 0},
        "skipped": {"type": "boolean"}
      }
    }
  }
}`

const questionSetSchema = `{
  "type": "array",
  "items": {"$ref": "defs.json#/$defs/question"}
}`

const submissionSchema = `{
  "type": "object",
  "required": ["answers"],
  "properties": {
    "userId": {"type": "string"},
    "subjectId": {"type": "string"},
    "completedAt": {"type": "string", "format": "date-time"},
    "answers": {"type": "array", "items": {"$ref": "defs.json#/$defs/answer"}}
  }
}`

const gradeRequestSchema = `{
  "type": "object",
  "required": ["questions", "answers"],
  "properties": {
    "questions": {"type": "array", "items": {"$ref": "defs.json#/$defs/question"}},
    "answers": {"type": "array", "items": {"$ref": "defs.json#/$defs/answer"}}
  }
}`

const schemaBase = "https://cbsetutor.local/schemas/"

var (
	compileOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	compileErr  error
)

func compileSchemas() (map[string]*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.AssertFormat()
		docs := map[string]string{
			"defs.json":          definitions,
			"questions.json":     questionSetSchema,
			"submission.json":    submissionSchema,
			"grade-request.json": gradeRequestSchema,
		}
		for name, src := range docs {
			doc, err := jsonschema.UnmarshalJSON(strings.NewReader(src))
			if err != nil {
				compileErr = fmt.Errorf("parse schema %s: %w", name, err)
				return
			}
			if err := c.AddResource(schemaBase+name, doc); err != nil {
				compileErr = fmt.Errorf("add schema %s: %w", name, err)
				return
			}
		}
		schemas = make(map[string]*jsonschema.Schema)
		for _, name := range []string{"questions.json", "submission.json", "grade-request.json"} {
			s, err := c.Compile(schemaBase + name)
			if err != nil {
				compileErr = fmt.Errorf("compile schema %s: %w", name, err)
				return
			}
			schemas[name] = s
		}
	})
	return schemas, compileErr
}

// decode validates data against the named schema, then unmarshals it into v.
func decode(name string, data []byte, v any) error {
	compiled, err := compileSchemas()
	if err != nil {
		return err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := compiled[name].Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

func checkQuestions(qs []assessment.Question) error {
	seen := make(map[string]bool, len(qs))
	for _, q := range qs {
		if seen[q.ID] {
			return fmt.Errorf("%w: duplicate question id %q", ErrInvalidInput, q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}

// DecodeQuestionSet parses a JSON array of questions.
func DecodeQuestionSet(data []byte) ([]assessment.Question, error) {
	var qs []assessment.Question
	if err := decode("questions.json", data, &qs); err != nil {
		return nil, err
	}
	if err := checkQuestions(qs); err != nil {
		return nil, err
	}
	return qs, nil
}

// DecodeSubmission parses a submission document.
func DecodeSubmission(data []byte) (Submission, error) {
	var sub Submission
	err := decode("submission.json", data, &sub)
	return sub, err
}

// GradeRequest is a self-contained document for grading without storage.
type GradeRequest struct {
	Questions []assessment.Question `json:"questions"`
	Answers   []assessment.Answer   `json:"answers"`
}

// DecodeGradeRequest parses a grade request document.
func DecodeGradeRequest(data []byte) (*GradeRequest, error) {
	var req GradeRequest
	if err := decode("grade-request.json", data, &req); err != nil {
		return nil, err
	}
	if err := checkQuestions(req.Questions); err != nil {
		return nil, err
	}
	return &req, nil
}
