package domain

import (
	"errors"
	"fmt"
)

// Error kinds surfaced to callers. Match with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
	ErrNotFound   = errors.New("not found")
)

// Error carries a caller-facing message and the kind it belongs to.
type Error struct {
	kind error
	msg  string
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.kind }

// Kind returns ErrValidation, ErrConflict or ErrNotFound.
func (e *Error) Kind() error { return e.kind }

func Validationf(format string, args ...any) error {
	return &Error{kind: ErrValidation, msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &Error{kind: ErrConflict, msg: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...any) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

// Cycle state machine errors.
var (
	ErrNoDailyStatus           = &Error{kind: ErrNotFound, msg: "No daily status found. Load today first."}
	ErrAlreadySwapped          = &Error{kind: ErrConflict, msg: "Prompt already swapped today"}
	ErrSwapAfterReflection     = &Error{kind: ErrConflict, msg: "Cannot swap prompt after reflection submitted"}
	ErrReflectionExists        = &Error{kind: ErrConflict, msg: "Reflection already exists for this date. Reflections cannot be edited."}
	ErrAddendumExists          = &Error{kind: ErrConflict, msg: "Addendum already exists for this date"}
	ErrAddendumNotToday        = &Error{kind: ErrConflict, msg: "Addendum can only be added for today's reflection"}
	ErrNoReflectionForAddendum = &Error{kind: ErrNotFound, msg: "No reflection exists for this date. Submit a reflection first."}
	ErrPromptChanged           = &Error{kind: ErrConflict, msg: "Today's prompt changed while saving. Please try again."}
)

// IsClientError reports whether err belongs to one of the caller-facing kinds.
func IsClientError(err error) bool {
	return errors.Is(err, ErrValidation) || errors.Is(err, ErrConflict) || errors.Is(err, ErrNotFound)
}
