// Package driving lists what the CLI may ask of the core. The
// implementations live in internal/core/services.
package driving
