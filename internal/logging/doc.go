// Package logging provides a unified logging interface for primecalc.
// It abstracts the underlying logging implementation, allowing consistent
// structured logging across the driver, server and application layers while
// supporting a zerolog backend and a standard library fallback.
package logging
