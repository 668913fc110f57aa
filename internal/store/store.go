// Package store is the durable key/value layer the planner persists its
// state into. It is treated as a fallible external collaborator: every
// failure it can produce is recoverable by the caller, typically by
// substituting a documented default value.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrKeyNotFound is returned by Get when the key has never been written or
// has been deleted. Callers treat it the same as a corrupt value: fall back
// to the default.
var ErrKeyNotFound = errors.New("key not found")

// Store is a string-keyed durable store with byte-slice values.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetJSON reads key and unmarshals it into out. A missing key surfaces as
// ErrKeyNotFound; a corrupt value as an unmarshal error. Both are recoverable.
func GetJSON(ctx context.Context, s Store, key string, out any) error {
	data, err := s.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode value for key %s: %w", key, err)
	}
	return nil
}

// SetJSON marshals value and writes it under key.
func SetJSON(ctx context.Context, s Store, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode value for key %s: %w", key, err)
	}
	return s.Set(ctx, key, data)
}
