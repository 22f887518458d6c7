package loots

import (
	"errors"
	"fmt"
)

// Pipeline error kinds. Callers match with errors.Is.
var (
	ErrAuth           = errors.New("loots authentication failed")
	ErrFetch          = errors.New("loots fetch failed")
	ErrSessionExpired = errors.New("loots session expired")
	ErrParse          = errors.New("loots response could not be parsed")
)

// Author normalization errors
var (
	ErrBlankAuthor      = errors.New("loots author is blank")
	ErrShortGuestHandle = errors.New("guest handle shorter than its fixed wrapping")
)

// FieldError reports a single missing or mistyped field in a tolerant decode
type FieldError struct {
	Path   string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Path, e.Reason)
}
