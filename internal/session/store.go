// Package session is the single source of truth for "who is the current
// user, if anyone". State is durable in a flat key/value store, addressed
// per browser session: one key holds the access token verbatim, one holds
// the JSON-encoded user record. Absence of both keys is the anonymous state.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Store.Get when the key does not exist.
// Absence of a key is a valid state, not a fault.
var ErrNotFound = errors.New("session: key not found")

// Store is the durable key/value persistence layer. Each call is a single
// atomic operation from the store's perspective; corruption of one key
// never affects reads of other keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
