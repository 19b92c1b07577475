// Package domain defines the core entities for streamctl.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Token: An OAuth2 token record as persisted in a service config
//   - ServiceConfig: Per-service OAuth configuration and stored token
//   - ChannelInfo: Channel/stream metadata with placeholder substitution
//   - AppSettings: Application-wide settings (timeouts, pause lists)
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
