// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, so ownership rules stay in the service
// layer and SQL stays in the platform layer.
package store
