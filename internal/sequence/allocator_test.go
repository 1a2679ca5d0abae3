package sequence

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mauro-rocha/portfolio-backend/internal/store"
)

func TestAllocator_NextID(t *testing.T) {
	ctx := context.Background()

	t.Run("starts at one when the counter is absent", func(t *testing.T) {
		a := New(store.NewMemStore())

		id, err := a.NextID(ctx, Projects)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("continues from the stored counter", func(t *testing.T) {
		st := store.NewMemStore()
		require.NoError(t, st.Set(ctx, CountersPath, map[string]any{Projects: int64(41)}, false))

		a := New(st)
		id, err := a.NextID(ctx, Projects)
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	t.Run("treats a non-numeric counter as zero", func(t *testing.T) {
		st := store.NewMemStore()
		require.NoError(t, st.Set(ctx, CountersPath, map[string]any{Projects: "corrupt"}, false))

		a := New(st)
		id, err := a.NextID(ctx, Projects)
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
	})

	t.Run("sequences are independent", func(t *testing.T) {
		a := New(store.NewMemStore())

		p1, err := a.NextID(ctx, Projects)
		require.NoError(t, err)
		s1, err := a.NextID(ctx, Services)
		require.NoError(t, err)

		assert.Equal(t, int64(1), p1)
		assert.Equal(t, int64(1), s1)
	})

	t.Run("concurrent allocations are distinct and above the prior counter", func(t *testing.T) {
		st := store.NewMemStore()
		require.NoError(t, st.Set(ctx, CountersPath, map[string]any{Projects: int64(10)}, false))
		a := New(st)

		const n = 50
		ids := make(chan int64, n)
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				id, err := a.NextID(ctx, Projects)
				assert.NoError(t, err)
				ids <- id
			}()
		}
		wg.Wait()
		close(ids)

		seen := map[int64]bool{}
		for id := range ids {
			assert.Greater(t, id, int64(10))
			assert.False(t, seen[id], "id %d allocated twice", id)
			seen[id] = true
		}
		assert.Len(t, seen, n)
	})

	t.Run("allocation failure surfaces as an error", func(t *testing.T) {
		st := store.NewMemStore()
		st.FailTransactions(errors.New("store unreachable"))

		a := New(st)
		_, err := a.NextID(ctx, Projects)
		assert.Error(t, err)
	})

	t.Run("nil store is an error, not a panic", func(t *testing.T) {
		a := New(nil)
		_, err := a.NextID(ctx, Projects)
		assert.Error(t, err)
	})
}
