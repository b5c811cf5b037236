// Package cache provides the key/value store used to cache read-heavy queries.
package cache

import (
	"context"
	"time"
)

// Store is a JSON value cache
type Store interface {
	// Get decodes the cached value into dest and reports whether it was found
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// NoopStore never holds anything
type NoopStore struct{}

func (NoopStore) Get(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NoopStore) Set(context.Context, string, interface{}, time.Duration) error { return nil }
func (NoopStore) Delete(context.Context, ...string) error { return nil }
func (NoopStore) Close() error { return nil }
