// Package cache provides the response cache used for list endpoints.
package cache

import (
	"encoding/binary"
	"time"

	"github.com/die-net/lrucache"
	"github.com/gregjones/httpcache"
)

// Cache stores encoded values under string keys for a bounded time.
type Cache interface {
	// Get returns the value stored under key if it exists and has not
	// expired.
	Get(key string) ([]byte, bool)
	// Set stores value under key until ttl elapses. A non-positive ttl stores
	// nothing.
	Set(key string, value []byte, ttl time.Duration)
	// Invalidate removes key.
	Invalidate(key string)
}

const expiryLen = 8

// TTL is a [Cache] that stores entries in an [httpcache.Cache] backend,
// prefixing each value with its expiry time.
type TTL struct {
	backend httpcache.Cache
	now     func() time.Time
}

// New returns a [TTL] cache storing entries in backend.
func New(backend httpcache.Cache) *TTL {
	return &TTL{backend: backend, now: time.Now}
}

// NewLRU returns a [TTL] cache backed by a size-bounded LRU that evicts the
// least recently used entries once maxBytes is exceeded.
func NewLRU(maxBytes int64) *TTL {
	return New(lrucache.New(maxBytes, 0))
}

// NewMemory returns a [TTL] cache backed by an unbounded in-memory map.
func NewMemory() *TTL {
	return New(httpcache.NewMemoryCache())
}

// Get satisfies [Cache].
func (c *TTL) Get(key string) ([]byte, bool) {
	entry, ok := c.backend.Get(key)
	if !ok || len(entry) < expiryLen {
		return nil, false
	}
	expiry := time.Unix(0, int64(binary.BigEndian.Uint64(entry[:expiryLen]))) //nolint:gosec // round-trips Set
	if !c.now().Before(expiry) {
		c.backend.Delete(key)
		return nil, false
	}
	return entry[expiryLen:], true
}

// Set satisfies [Cache].
func (c *TTL) Set(key string, value []byte, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	entry := make([]byte, expiryLen, expiryLen+len(value))
	binary.BigEndian.PutUint64(entry, uint64(c.now().Add(ttl).UnixNano())) //nolint:gosec // round-trips in Get
	c.backend.Set(key, append(entry, value...))
}

// Invalidate satisfies [Cache].
func (c *TTL) Invalidate(key string) {
	c.backend.Delete(key)
}

// Nop is a [Cache] that never stores anything.
type Nop struct{}

// Get satisfies [Cache].
func (Nop) Get(string) ([]byte, bool) { return nil, false }

// Set satisfies [Cache].
func (Nop) Set(string, []byte, time.Duration) {}

// Invalidate satisfies [Cache].
func (Nop) Invalidate(string) {}

var (
	_ Cache = (*TTL)(nil)
	_ Cache = Nop{}
)
