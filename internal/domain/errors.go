package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Reflection errors
	ErrMsgReflectionFailed  = "reflection generation failed"
	ErrMsgInvalidReflection = "invalid reflection"

	// Safety errors
	ErrMsgSafetyEscalation = "safety concern detected - escalation required"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrReflectionFailed  = errors.New(ErrMsgReflectionFailed)
	ErrInvalidReflection = errors.New(ErrMsgInvalidReflection)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
