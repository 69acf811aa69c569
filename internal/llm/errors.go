package llm

import (
	"errors"
	"fmt"
)

// ErrTimeout marks a generation call that exceeded its deadline. Callers
// must be able to distinguish this from a content failure, so it is
// surfaced as a distinct sentinel underneath GenerationError.
var ErrTimeout = errors.New("generation call timed out")

// GenerationError wraps any failure of the generation backend, including
// unparsable structured output.
type GenerationError struct {
	Model string
	Err   error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (model %s): %v", e.Model, e.Err)
}

func (e *GenerationError) Unwrap() error {
	return e.Err
}
