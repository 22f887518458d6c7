package domain

import "errors"

// Error message string constants - single source of truth for error messages
const (
	ErrMsgViewerNotFound    = "viewer not found"
	ErrMsgLootsNotFound     = "loots not found"
	ErrMsgPoolNotConfigured = "prize pool type is not configured"
	ErrMsgPrizeNotFound     = "prize not found"
	ErrMsgInvalidInput      = "invalid input"
	ErrMsgDatabaseError     = "database error"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrViewerNotFound    = errors.New(ErrMsgViewerNotFound)
	ErrLootsNotFound     = errors.New(ErrMsgLootsNotFound)
	ErrPoolNotConfigured = errors.New(ErrMsgPoolNotConfigured)
	ErrPrizeNotFound     = errors.New(ErrMsgPrizeNotFound)
	ErrInvalidInput      = errors.New(ErrMsgInvalidInput)
	ErrDatabase          = errors.New(ErrMsgDatabaseError)
)
