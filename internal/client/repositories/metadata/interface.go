// Package metadata persists small key/value items (the access token among
// them) in the client's local SQLite database, surviving restarts the way
// browser local storage survives reloads.
package metadata

import (
	"context"
)

// Repository is a key/value store. Get returns (nil, nil) for a missing key;
// Delete of a missing key is not an error.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
