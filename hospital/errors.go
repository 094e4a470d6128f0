package hospital

import "fmt"

// The error taxonomy for everything that crosses the hospital backend
// boundary. Callers branch on these types, never on HTTP status codes.

// ValidationError is a local or backend request-validation failure. No retry
// will change the outcome; the caller must fix its input.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// FetchError is a network or backend failure during a data load. Recoverable
// by retry; it must never corrupt existing state.
type FetchError struct {
	Op      string
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *FetchError) Unwrap() error { return e.Err }

// ConflictError is a backend business-rule rejection, e.g. a duplicate
// booking or an already-fully-paid order. Surfaced verbatim, never retried
// automatically.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// AuthError means the bearer credential is expired or invalid. The caller
// surfaces a session-expired message and triggers the logout collaborator.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string { return e.Message }

// NotFoundError means the referenced record does not exist on the backend.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}
