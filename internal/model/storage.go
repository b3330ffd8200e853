package model

import "context"

// StateStore is durable client key/value storage. Get returns ErrNotFound
// for missing keys. PutAll writes every value or none of them. Deleting a
// missing key is not an error.
type StateStore interface {
	Get(ctx context.Context, key string) (string, error)
	PutAll(ctx context.Context, values map[string]string) error
	Delete(ctx context.Context, keys ...string) error
}
