// Package clients is the resilient HTTP client used to reach the remote quote service.
package clients

import "errors"

// Transport-level failures. The acl package maps them to domain errors.
var (
	// ErrCircuitOpen is returned without contacting the remote while the circuit is open.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last attempt's error once retries run out.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
