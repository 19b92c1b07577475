// Package file persists application settings as TOML on the local
// filesystem and can watch the file for edits made while streamctl runs.
package file
