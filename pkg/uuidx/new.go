// Package uuidx generates the identifiers attached to outgoing API requests.
package uuidx

import "github.com/google/uuid"

// RequestIDPrefix is prepended to generated request ids.
const RequestIDPrefix = "req_"

// New generates a new version 7 UUID. It panics if the generator fails.
func New() uuid.UUID {
	return uuid.Must(uuid.NewV7())
}

// NewRequestID returns a fresh, time-ordered request id such as
// "req_0190a7c2-...". Ids sort by creation time, which keeps server-side
// logs for one client in order.
func NewRequestID() string {
	return RequestIDPrefix + New().String()
}
