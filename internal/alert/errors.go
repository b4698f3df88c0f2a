package alert

import (
	"fmt"
	"strings"
)

// MissingFieldError reports a required field absent from an Alert.
type MissingFieldError struct {
	// Field is the dotted path of the field, e.g. "spec.expr".
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field %s", e.Field)
}

// TypeError reports fields present with an unexpected YAML shape.
type TypeError struct {
	Errors []string
}

func (e *TypeError) Error() string {
	return "unexpected field type: " + strings.Join(e.Errors, "; ")
}
