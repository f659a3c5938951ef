// Package state persists the user's schedule selections as string values
// under string keys.
package state

import "context"

// Store is a string key-value store. Get returns "" for a missing key.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Ping(ctx context.Context) error
	Close() error
}
