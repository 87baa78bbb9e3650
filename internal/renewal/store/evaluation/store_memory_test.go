package evaluation

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

	t.Run("missing record returns nil", func(t *testing.T) {
		got, err := store.Get(ctx, 1, 0)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("append then get", func(t *testing.T) {
		ev := renewal.Evaluation{LeaseID: 1, ID: 0, Height: 100, MetThreshold: true, OnTimeCount: 9, TotalCount: 10, Ratio: 90}
		require.NoError(t, store.Append(ctx, ev))

		got, err := store.Get(ctx, 1, 0)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, ev, *got)
	})

	t.Run("records are write-once", func(t *testing.T) {
		err := store.Append(ctx, renewal.Evaluation{LeaseID: 1, ID: 0, Height: 200})
		require.Error(t, err)

		got, err := store.Get(ctx, 1, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 100, got.Height, "original record must survive a duplicate append")
	})

	t.Run("list orders by evaluation id", func(t *testing.T) {
		require.NoError(t, store.Append(ctx, renewal.Evaluation{LeaseID: 1, ID: 5, Height: 130}))
		require.NoError(t, store.Append(ctx, renewal.Evaluation{LeaseID: 1, ID: 2, Height: 110}))
		require.NoError(t, store.Append(ctx, renewal.Evaluation{LeaseID: 2, ID: 3, Height: 120}))

		evs, err := store.ListByLease(ctx, 1)
		require.NoError(t, err)
		require.Len(t, evs, 3)
		assert.EqualValues(t, 0, evs[0].ID)
		assert.EqualValues(t, 2, evs[1].ID)
		assert.EqualValues(t, 5, evs[2].ID)
	})
}
