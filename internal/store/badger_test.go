package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStoreTest(t *testing.T) *BadgerStore {
	t.Helper()
	s, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestBadgerStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := setupStoreTest(t)

	require.NoError(t, s.Set(ctx, "planner:name", []byte("Summer Trip")))

	got, err := s.Get(ctx, "planner:name")
	require.NoError(t, err)
	assert.Equal(t, []byte("Summer Trip"), got)
}

func TestBadgerStore_GetMissingKey(t *testing.T) {
	ctx := context.Background()
	s := setupStoreTest(t)

	_, err := s.Get(ctx, "never-written")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestBadgerStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := setupStoreTest(t)

	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Delete(ctx, "k"))

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting an absent key is not an error.
	assert.NoError(t, s.Delete(ctx, "k"))
}

func TestBadgerStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	s := setupStoreTest(t)

	require.NoError(t, s.Set(ctx, "k", []byte("first")))
	require.NoError(t, s.Set(ctx, "k", []byte("second")))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestBadgerStore_CancelledContext(t *testing.T) {
	s := setupStoreTest(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, s.Set(ctx, "k", []byte("v")))
	_, err := s.Get(ctx, "k")
	assert.Error(t, err)
}

func TestBadgerStore_Health(t *testing.T) {
	s, err := OpenInMemory()
	require.NoError(t, err)

	assert.NoError(t, s.Health())
	require.NoError(t, s.Close())
	assert.Error(t, s.Health())
}

func TestJSONHelpers(t *testing.T) {
	ctx := context.Background()
	s := setupStoreTest(t)

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, SetJSON(ctx, s, "json-key", payload{Name: "trip", Count: 3}))

		var out payload
		require.NoError(t, GetJSON(ctx, s, "json-key", &out))
		assert.Equal(t, payload{Name: "trip", Count: 3}, out)
	})

	t.Run("missing key surfaces ErrKeyNotFound", func(t *testing.T) {
		var out payload
		assert.ErrorIs(t, GetJSON(ctx, s, "absent", &out), ErrKeyNotFound)
	})

	t.Run("corrupt value surfaces a decode error", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, "corrupt", []byte("{not json")))

		var out payload
		err := GetJSON(ctx, s, "corrupt", &out)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrKeyNotFound)
	})
}
