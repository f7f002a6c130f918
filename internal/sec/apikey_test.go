package sec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashKey(t *testing.T) {
	t.Parallel()

	t.Run("string key", func(t *testing.T) {
		t.Parallel()
		hash, err := HashKey("mykey")
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
		assert.NotContains(t, string(hash), "mykey")
	})

	t.Run("byte slice key", func(t *testing.T) {
		t.Parallel()
		hash, err := HashKey([]byte("mykey"))
		require.NoError(t, err)
		assert.NotEmpty(t, hash)
	})

	t.Run("salted", func(t *testing.T) {
		t.Parallel()
		first, err := HashKey("mykey")
		require.NoError(t, err)
		second, err := HashKey("mykey")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
		require.NoError(t, CompareKey("mykey", first))
		require.NoError(t, CompareKey("mykey", second))
	})
}

func TestCompareKey(t *testing.T) {
	t.Parallel()

	key := "correctkey"
	hash, err := HashKey(key)
	require.NoError(t, err)

	t.Run("correct key string", func(t *testing.T) {
		t.Parallel()
		err := CompareKey(key, hash)
		assert.NoError(t, err)
	})

	t.Run("correct key bytes", func(t *testing.T) {
		t.Parallel()
		err := CompareKey([]byte(key), hash)
		assert.NoError(t, err)
	})

	t.Run("incorrect key", func(t *testing.T) {
		t.Parallel()
		err := CompareKey("wrongkey", hash)
		assert.Error(t, err)
	})
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	first, second := GenerateKey(), GenerateKey()
	assert.NotEqual(t, first, second)
	assert.GreaterOrEqual(t, len(first), 26)

	hash, err := HashKey(first)
	require.NoError(t, err)
	require.NoError(t, CompareKey(first, hash))
}
