package apperrors

import "fmt"

// ValidationError reports malformed or missing input. It is never retried
// and is surfaced to the caller immediately.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a missing resource (unknown conversation, entry).
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func NotFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}

// UpstreamKind categorizes a failure reported by an external service.
type UpstreamKind string

const (
	UpstreamQuotaExceeded UpstreamKind = "quota_exceeded"
	UpstreamUnauthorized  UpstreamKind = "unauthorized"
	UpstreamForbidden     UpstreamKind = "forbidden"
	UpstreamUnavailable   UpstreamKind = "unavailable"
)

// UpstreamError wraps a categorized failure from an external collaborator.
// Hint carries a human-readable remediation suggestion for the caller.
type UpstreamError struct {
	Kind UpstreamKind
	Hint string
	Err  error
}

func (e *UpstreamError) Error() string {
	if e.Hint != "" {
		return e.Hint
	}
	return fmt.Sprintf("upstream service error: %s", e.Kind)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// UnknownError wraps any uncategorized failure. The original error is kept
// for logging but its message is never exposed to clients.
type UnknownError struct {
	Err error
}

func (e *UnknownError) Error() string {
	return "an unexpected error occurred"
}

func (e *UnknownError) Unwrap() error {
	return e.Err
}

func Unknown(err error) *UnknownError {
	return &UnknownError{Err: err}
}
