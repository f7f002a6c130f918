package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTTL(t *testing.T) {
	t.Parallel()

	backends := map[string]func() *TTL{
		"lru":    func() *TTL { return NewLRU(1 << 20) },
		"memory": NewMemory,
	}

	for name, newCache := range backends {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			now := time.Unix(1_700_000_000, 0)
			c := newCache()
			c.now = func() time.Time { return now }

			_, ok := c.Get("recipes_all")
			assert.False(t, ok)

			c.Set("recipes_all", []byte(`[1,2]`), time.Minute)
			val, ok := c.Get("recipes_all")
			require.True(t, ok)
			assert.Equal(t, []byte(`[1,2]`), val)

			now = now.Add(59 * time.Second)
			_, ok = c.Get("recipes_all")
			assert.True(t, ok)

			now = now.Add(time.Second)
			_, ok = c.Get("recipes_all")
			assert.False(t, ok, "entry expires at its ttl")

			c.Set("recipes_all", []byte(`[]`), time.Minute)
			c.Invalidate("recipes_all")
			_, ok = c.Get("recipes_all")
			assert.False(t, ok)

			c.Set("recipes_all", []byte(`[]`), 0)
			_, ok = c.Get("recipes_all")
			assert.False(t, ok, "zero ttl stores nothing")
		})
	}
}

func TestNop(t *testing.T) {
	t.Parallel()

	var c Cache = Nop{}
	c.Set("key", []byte("value"), time.Hour)
	_, ok := c.Get("key")
	assert.False(t, ok)
	c.Invalidate("key")
}
