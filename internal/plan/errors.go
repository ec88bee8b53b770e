package plan

import "fmt"

// ValidationError indicates malformed or out-of-range input to a plan
// mutation. Mapped to HTTP 400 by the server layer.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}
