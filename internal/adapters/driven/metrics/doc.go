// Package metrics records platform API requests and token refreshes as
// prometheus metrics. The CLI has no HTTP server, so metrics are written
// in the node_exporter textfile format when the process exits.
package metrics
