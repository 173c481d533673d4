package redis

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adhithyan15/graphene/store"
)

func TestRedisSnapshotStore(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	s := NewRedisSnapshotStore(RedisOptions{Addr: mr.Addr()})
	defer s.Close()

	ctx := context.Background()
	now := time.Now()

	snap := &store.Snapshot{
		ID:        "snap-1",
		GraphName: "cities",
		Metadata:  map[string]json.RawMessage{"hello": json.RawMessage("6")},
		Nodes: []store.NodeRecord{
			{Key: "oslo", Derivation: "literal", Value: json.RawMessage(`"Oslo"`)},
		},
		Timestamp: now,
		Version:   1,
	}

	require.NoError(t, s.Save(ctx, snap))
	assert.True(t, mr.Exists("graphene:snapshot:snap-1"))

	loaded, err := s.Load(ctx, "snap-1")
	require.NoError(t, err)
	assert.Equal(t, "cities", loaded.GraphName)
	assert.Equal(t, snap.Nodes, loaded.Nodes)

	list, err := s.List(ctx, "cities")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "snap-1", list[0].ID)

	require.NoError(t, s.Delete(ctx, "snap-1"))
	_, err = s.Load(ctx, "snap-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	list, err = s.List(ctx, "cities")
	require.NoError(t, err)
	assert.Empty(t, list)

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, "snap-1"))

	require.NoError(t, s.Save(ctx, &store.Snapshot{ID: "snap-3", GraphName: "cities", Timestamp: now.Add(time.Second)}))
	require.NoError(t, s.Save(ctx, &store.Snapshot{ID: "snap-2", GraphName: "cities", Timestamp: now}))

	list, err = s.List(ctx, "cities")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "snap-2", list[0].ID)
	assert.Equal(t, "snap-3", list[1].ID)

	require.NoError(t, s.Clear(ctx, "cities"))
	list, err = s.List(ctx, "cities")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestRedisSnapshotStore_TTL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	s := NewRedisSnapshotStore(RedisOptions{Addr: mr.Addr(), Prefix: "t:", TTL: time.Minute})
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Save(ctx, &store.Snapshot{ID: "snap-1", GraphName: "g", Timestamp: time.Now()}))
	assert.Equal(t, time.Minute, mr.TTL("t:snapshot:snap-1"))

	mr.FastForward(2 * time.Minute)

	_, err = s.Load(ctx, "snap-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
