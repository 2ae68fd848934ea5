package priceholder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func closed(ch <-chan struct{}) bool {
	select {
	case <-ch:
		return true
	default:
		return false
	}
}

func TestStore_PutAndGet(t *testing.T) {
	s := NewStore[uint32]()

	_, ok := s.Get("symbol")
	assert.False(t, ok)

	require.NoError(t, s.Put("symbol", 1))
	v, ok := s.Get("symbol")
	require.True(t, ok)
	assert.Equal(t, uint32(1), v)

	require.NoError(t, s.Put("symbol", 2))
	v, ok = s.Get("symbol")
	require.True(t, ok)
	assert.Equal(t, uint32(2), v)

	require.NoError(t, s.Put("another_symbol", 3))
	v, ok = s.Get("another_symbol")
	require.True(t, ok)
	assert.Equal(t, uint32(3), v)

	_, ok = s.Get("not_a_symbol")
	assert.False(t, ok)
}

func TestStore_Versioning(t *testing.T) {
	s := NewStore[uint64]()

	version, _, err := s.Watch("symbol")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), version)

	require.NoError(t, s.Put("symbol", 10))
	version, _, err = s.Watch("symbol")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)

	// Republishing the same value still bumps the version.
	require.NoError(t, s.Put("symbol", 10))
	version, _, err = s.Watch("symbol")
	require.NoError(t, err)
	assert.Equal(t, uint64(2), version)
}

func TestStore_WatchSignalsOnPut(t *testing.T) {
	s := NewStore[uint64]()

	version, changed, err := s.Watch("symbol")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), version)
	assert.False(t, closed(changed))

	require.NoError(t, s.Put("symbol", 42))
	assert.True(t, closed(changed))

	// A fresh Watch sees the new version and a new, open channel.
	version, changed2, err := s.Watch("symbol")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)
	assert.False(t, closed(changed2))
}

func TestStore_WatchCreatesPlaceholder(t *testing.T) {
	s := NewStore[uint64]()

	_, _, err := s.Watch("symbol")
	require.NoError(t, err)

	// The placeholder entry holds no value yet.
	_, ok := s.Get("symbol")
	assert.False(t, ok)
	assert.Len(t, s.entries, 1)
}

func TestStore_InvalidKey(t *testing.T) {
	s := NewStore[uint64]()

	err := s.Put("", 1)
	assert.ErrorIs(t, err, ErrInvalidKey)

	_, _, err = s.Watch("")
	assert.ErrorIs(t, err, ErrInvalidKey)

	// Rejected keys must not leave an entry behind.
	assert.Empty(t, s.entries)
}

func TestStore_WakeAll(t *testing.T) {
	s := NewStore[uint64]()

	_, btc, err := s.Watch("BTC")
	require.NoError(t, err)
	_, eth, err := s.Watch("ETH")
	require.NoError(t, err)

	s.wakeAll()
	assert.True(t, closed(btc))
	assert.True(t, closed(eth))
}
