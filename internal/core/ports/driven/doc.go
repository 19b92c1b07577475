// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - TokenExchanger: OAuth2 authorization URL, code exchange and refresh
//   - CallbackListener: One-shot local listener for the authorization redirect
//   - BrowserOpener: Opens the authorization URL for the user
//   - ServiceConfigStore: Per-service configuration persistence
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - RequestObserver: Records request outcomes (metrics)
//   - ChannelSubmitter: Sends channel metadata to the platform
//   - ServiceController / ProcessSuspender: Only needed for pause scopes
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
