package llm

import "errors"

var (
	// ErrUnavailable indicates the model backend could not be reached.
	ErrUnavailable = errors.New("model backend unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrInvalidOutput indicates the response could not be parsed
	// into the expected structured format.
	ErrInvalidOutput = errors.New("invalid llm output format")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")

	// ErrMissingAPIKey indicates no credential is configured for the backend.
	ErrMissingAPIKey = errors.New("llm api key not configured")
)
