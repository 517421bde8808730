// Package cache provides a small byte-value cache used to keep
// department reference data hot: departments are static data read on
// every routing and transfer decision.
package cache

import "time"

// Cache defines the interface for caching.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}
