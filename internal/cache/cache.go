package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache stores fetched source bodies so that a report citing the same URL
// in several claims fetches it once.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key derives a cache key from a source URL.
func Key(url string) string {
	hash := sha256.Sum256([]byte(url))
	return "inquire:v1:" + hex.EncodeToString(hash[:])
}
