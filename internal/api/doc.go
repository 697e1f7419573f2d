// Package api exposes the script service over HTTP. Handlers decode and
// validate JSON requests, read the caller's user ID from the context set by
// the auth middleware and wrap results in the {success, data} envelope.
// Service errors are mapped to status codes in errors.go.
package api
