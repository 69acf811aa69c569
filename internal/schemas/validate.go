// Package schemas provides JSON Schema validation for structured generation output.
// Schemas are embedded at compile time and enforced at the generation boundary;
// markdown fence stripping in the llm package remains a defensive fallback.
package schemas

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.json
var schemaFiles embed.FS

// Schema file names for the structured outputs the agents produce.
const (
	PlannerDecision    = "planner_decision.json"
	Question           = "question.json"
	AnswerEvaluation   = "answer_evaluation.json"
	CandidateAnalysis  = "candidate_analysis.json"
	NormalizedJob      = "normalized_job.json"
	Evaluation         = "evaluation.json"
	BehavioralQuestion = "behavioral_question.json"
)

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Schema string
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return fmt.Sprintf("output does not match schema %s: %s", e.Schema, strings.Join(msgs, "; "))
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Name  string
	Cause error
}

func (e *SchemaLoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Name, e.Cause)
}

// Validate checks raw JSON against the named embedded schema.
func Validate(name string, data []byte) error {
	schemaBytes, err := schemaFiles.ReadFile(name)
	if err != nil {
		return &SchemaLoadError{Name: name, Cause: err}
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaBytes),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return &SchemaLoadError{Name: name, Cause: err}
	}

	if !result.Valid() {
		verr := &ValidationError{Schema: name}
		for _, desc := range result.Errors() {
			verr.Errors = append(verr.Errors, FieldError{
				Field:   desc.Field(),
				Message: desc.Description(),
			})
		}
		return verr
	}
	return nil
}

// Decode validates raw JSON against the named schema and unmarshals it into v.
func Decode(name string, raw string, v any) error {
	data := []byte(raw)
	if err := Validate(name, data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s output: %w", name, err)
	}
	return nil
}
