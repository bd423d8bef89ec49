package validation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Error aggregates per-field validation failures.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return strings.Join(msgs, "; ")
}

// ErrInvalidUUID is returned for malformed UUID values
var ErrInvalidUUID = fmt.Errorf("invalid UUID format")

// ValidateUUID checks if a string is a valid UUID
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidUUID, id)
	}
	return nil
}
