// Package twitch submits channel metadata to the Twitch Helix API.
//
// Calls go through an authenticated client so token refresh, rate
// limiting and response logging are shared with ad-hoc requests.
package twitch
