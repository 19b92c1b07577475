// Package memory provides in-memory implementations of driven ports.
// They are used by tests and by commands that run without a config directory.
package memory
