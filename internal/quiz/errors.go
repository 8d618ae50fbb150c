package quiz

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates a lookup referenced a question that does not
// exist. It is a client-actionable failure, surfaced distinctly from
// generation-internal failures.
var ErrNotFound = errors.New("question not found")

// InputError indicates a caller-supplied request failed preconditions.
// It is raised before any backend call.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
