package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemStore_MergeWrite(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	require.NoError(t, m.Set(ctx, "projects/1", map[string]any{
		"id":    int64(1),
		"title": "Original",
		"category": map[string]any{
			"pt-BR": "Web",
			"en":    "Web",
		},
	}, false))

	require.NoError(t, m.Set(ctx, "projects/1", map[string]any{
		"title": "Renamed",
		"category": map[string]any{
			"en": "Mobile",
		},
	}, true))

	doc, ok := m.Doc("projects/1")
	require.True(t, ok)
	assert.Equal(t, "Renamed", doc["title"])
	assert.EqualValues(t, 1, doc["id"])

	cat := doc["category"].(map[string]any)
	assert.Equal(t, "Web", cat["pt-BR"])
	assert.Equal(t, "Mobile", cat["en"])
}

func TestMemStore_CollectionOrdering(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	require.NoError(t, m.Set(ctx, "projects/3", map[string]any{"id": int64(3)}, false))
	require.NoError(t, m.Set(ctx, "projects/1", map[string]any{"id": int64(1)}, false))

	var got [][]Document
	unsub, err := m.SubscribeCollection(ctx, "projects", "id",
		func(docs []Document) { got = append(got, docs) },
		func(error) {})
	require.NoError(t, err)
	defer unsub()

	require.NoError(t, m.Set(ctx, "projects/2", map[string]any{"id": int64(2)}, false))

	require.Len(t, got, 2)
	last := got[len(got)-1]
	require.Len(t, last, 3)
	assert.EqualValues(t, 1, last[0].Data["id"])
	assert.EqualValues(t, 2, last[1].Data["id"])
	assert.EqualValues(t, 3, last[2].Data["id"])
}

func TestMemStore_UnsubscribeStopsDelivery(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	calls := 0
	unsub, err := m.SubscribeCollection(ctx, "projects", "id",
		func([]Document) { calls++ },
		func(error) {})
	require.NoError(t, err)
	require.Equal(t, 1, calls)

	unsub()
	require.NoError(t, m.Set(ctx, "projects/1", map[string]any{"id": int64(1)}, false))
	assert.Equal(t, 1, calls)
}

func TestMemStore_TransactionAppliesWrites(t *testing.T) {
	ctx := context.Background()
	m := NewMemStore()

	err := m.RunTransaction(ctx, func(tx Tx) error {
		_, ok, err := tx.Get("meta/counters")
		require.NoError(t, err)
		require.False(t, ok)
		return tx.Set("meta/counters", map[string]any{"projects": int64(1), "updatedAt": ServerTimestamp}, true)
	})
	require.NoError(t, err)

	doc, ok := m.Doc("meta/counters")
	require.True(t, ok)
	assert.EqualValues(t, 1, doc["projects"])
	assert.NotNil(t, doc["updatedAt"])
}
