package kvstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dekorshop/dekorshop/pkg/sqlite"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	db, err := sqlite.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return New(db)
}

func TestSetGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	_, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "cart", []byte(`[{"quantity":2}]`)))

	got, ok, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"quantity":2}]`, string(got))

	// Overwrite replaces, not appends.
	require.NoError(t, s.Set(ctx, "cart", []byte(`[]`)))
	got, ok, err = s.Get(ctx, "cart")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, string(got))
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)

	require.NoError(t, s.Set(ctx, "orders", []byte(`[]`)))
	require.NoError(t, s.Delete(ctx, "orders"))

	_, ok, err := s.Get(ctx, "orders")
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting an absent key is not an error.
	require.NoError(t, s.Delete(ctx, "orders"))
}
