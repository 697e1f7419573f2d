// Package service contains the application use cases. ScriptService
// orchestrates the script and section stores (defined in internal/store) to
// authorize callers, validate input and shape results.
//
// Error handling:
//   - Expected conditions are returned as the sentinels ErrUnauthenticated,
//     ErrInvalidInput, ErrNotFound and ErrForbidden, checked with errors.Is.
//   - Unexpected failures are wrapped in *ScriptServiceError.
//   - The API layer maps both to HTTP status codes.
//
// The service depends on store interfaces only, never on a concrete database.
package service
