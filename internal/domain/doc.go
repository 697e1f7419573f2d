// Package domain contains the core business entities of the meditation script
// service: scripts, their ordered sections, and the value types used to
// express partial updates. It is independent of storage and transport.
package domain
