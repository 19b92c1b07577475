// Package jsonfile persists JSON documents on the local filesystem.
//
// Load distinguishes three outcomes: success, a missing file
// (domain.ErrNotFound) and a file that exists but cannot be decoded
// (domain.ErrCorrupt). A corrupt file is copied next to itself with an
// "_error" suffix before the error is returned so it can be inspected.
//
// Save writes to a temporary file in the destination directory and renames
// it over the destination, so readers never observe a partial write.
//
// Adapters:
//   - ServiceConfigStore: one JSON file per service
//   - AssignationStore: the category assignment table
package jsonfile
