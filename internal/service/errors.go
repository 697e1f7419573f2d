package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/meditation-api/internal/domain"
	"github.com/phrazzld/meditation-api/internal/store"
)

// Service error taxonomy. Callers check these with errors.Is; the API layer
// maps each one to a status code.
var (
	// ErrUnauthenticated indicates the call carried no verified user identity.
	// API layer should map this to HTTP 401 Unauthorized.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrInvalidInput indicates a malformed or missing field, out-of-range
	// pagination or an update with nothing to change.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the entity does not exist or belongs to another user.
	// API layer should map this to HTTP 404 Not Found.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates an existing section was addressed through a
	// script other than its parent.
	// API layer should map this to HTTP 403 Forbidden.
	ErrForbidden = errors.New("section does not belong to the given script")
)

// ScriptServiceError wraps unexpected errors from the script service with context.
type ScriptServiceError struct {
	// Operation is the operation that failed (e.g., "create_script", "upsert_section")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ScriptServiceError.
func (e *ScriptServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("script service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("script service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ScriptServiceError) Unwrap() error {
	return e.Err
}

// NewScriptServiceError translates err into the service taxonomy.
// Not-found store errors become ErrNotFound, validation failures become
// ErrInvalidInput (keeping the original for its message), and anything
// else is wrapped in a *ScriptServiceError.
func NewScriptServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrUnauthenticated),
		errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrForbidden):
		return err
	case store.IsNotFoundError(err):
		return ErrNotFound
	case domain.IsValidationError(err), errors.Is(err, store.ErrInvalidEntity):
		return invalidInput(err)
	}

	return &ScriptServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// invalidInput marks err as ErrInvalidInput while keeping it inspectable.
func invalidInput(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}
