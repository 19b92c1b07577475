package domain

import (
	"encoding/json"
	"net/http"
)

// APIResponse is the outcome of an authenticated platform request.
// The body has already been read.
type APIResponse struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK returns true for 2xx status codes.
func (r *APIResponse) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Decode unmarshals the JSON body into v.
func (r *APIResponse) Decode(v any) error {
	return json.Unmarshal(r.Body, v)
}
