// Package logger provides structured logging functionality for the application
// using the standard log/slog package. It configures the process-wide JSON
// logger and carries request-scoped loggers through context.Context.
package logger
