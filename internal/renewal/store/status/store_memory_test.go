package status

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relet/internal/renewal"
)

func TestInMemoryStore(t *testing.T) {
	store := NewInMemoryStore()
	ctx := context.Background()

	t.Run("missing lease returns nil without error", func(t *testing.T) {
		got, err := store.Get(ctx, 1)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("Put then Get round-trips", func(t *testing.T) {
		st := renewal.RenewalStatus{LastRenewed: 100, NextEligible: 112, Active: true, Extensions: 2}
		require.NoError(t, store.Put(ctx, 1, st))

		got, err := store.Get(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, st, *got)
	})

	t.Run("Get hands out a copy", func(t *testing.T) {
		got, err := store.Get(ctx, 1)
		require.NoError(t, err)
		got.Extensions = 99

		again, err := store.Get(ctx, 1)
		require.NoError(t, err)
		assert.EqualValues(t, 2, again.Extensions)
	})

	t.Run("suspension round-trips", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, 2, renewal.RenewalStatus{Active: false}))
		got, err := store.Get(ctx, 2)
		require.NoError(t, err)
		assert.False(t, got.Active)
	})
}
