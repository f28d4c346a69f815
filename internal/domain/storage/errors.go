// Package storage holds error kinds shared by persistence adapters.
package storage

import "errors"

// ErrUnavailable marks failures of the underlying store (connection refused,
// timeouts). The HTTP layer maps it to 503 so store outages are never
// presented as client mistakes.
var ErrUnavailable = errors.New("storage: unavailable")
