// Package services holds streamctl's behaviour: service registry lookups,
// the OAuth token lifecycle, the authenticated API client, channel
// metadata updates and pause scopes. Everything outside the process is
// reached through the driven ports.
package services
