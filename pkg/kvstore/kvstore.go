// Package kvstore provides the string-key/string-value persistence primitive
// that all dashboard state is serialized into. Values are whole documents;
// writes are atomic at key granularity.
package kvstore

import "errors"

// ErrNotFound is returned by Get when no value exists for a key.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a minimal get/set/remove surface over string keys.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
	Close() error
}
