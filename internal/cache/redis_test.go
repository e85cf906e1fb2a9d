package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   string `json:"id"`
	Body string `json:"body"`
}

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb, err := ConnectRedis(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb, "test", 0), mr
}

func TestConnectRedis_Unreachable(t *testing.T) {
	_, err := ConnectRedis("127.0.0.1:1", "", 0)
	assert.Error(t, err)
}

func TestStore_Snapshot(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	var got []item
	assert.ErrorIs(t, store.LoadSnapshot(ctx, "items", &got), ErrMiss)

	want := []item{{ID: "1", Body: "שלום"}, {ID: "2", Body: "hello"}}
	require.NoError(t, store.SaveSnapshot(ctx, "items", want))
	require.NoError(t, store.LoadSnapshot(ctx, "items", &got))
	assert.Equal(t, want, got)

	require.NoError(t, store.DeleteSnapshot(ctx, "items"))
	assert.ErrorIs(t, store.LoadSnapshot(ctx, "items", &got), ErrMiss)
}

func TestStore_SnapshotTTL(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := ConnectRedis(mr.Addr(), "", 0)
	require.NoError(t, err)
	defer rdb.Close()
	store := NewStore(rdb, "ttl", time.Minute)
	ctx := context.Background()

	require.NoError(t, store.SaveSnapshot(ctx, "k", item{ID: "1"}))
	mr.FastForward(2 * time.Minute)

	var got item
	assert.ErrorIs(t, store.LoadSnapshot(ctx, "k", &got), ErrMiss)
}

func TestStore_PendingQueueIsFIFO(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Enqueue(ctx, "history", item{ID: "a"}))
	require.NoError(t, store.Enqueue(ctx, "history", item{ID: "b"}))

	n, err := store.Len(ctx, "history")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	var head item
	require.NoError(t, store.Head(ctx, "history", &head))
	assert.Equal(t, "a", head.ID)

	require.NoError(t, store.Dequeue(ctx, "history"))
	require.NoError(t, store.Head(ctx, "history", &head))
	assert.Equal(t, "b", head.ID)

	require.NoError(t, store.Dequeue(ctx, "history"))
	assert.ErrorIs(t, store.Head(ctx, "history", &head), ErrMiss)
	assert.ErrorIs(t, store.Dequeue(ctx, "history"), ErrMiss)
}

func TestReadThrough_RemoteSuccessRefreshesSnapshot(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	got, src, err := ReadThrough(ctx, store, "items", func(context.Context) ([]item, error) {
		return []item{{ID: "1"}}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, SourceRemote, src)
	assert.Len(t, got, 1)

	var snap []item
	require.NoError(t, store.LoadSnapshot(ctx, "items", &snap))
	assert.Equal(t, got, snap)
}

func TestReadThrough_FallsBackToSnapshot(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.SaveSnapshot(ctx, "items", []item{{ID: "old"}}))

	got, src, err := ReadThrough(ctx, store, "items", func(context.Context) ([]item, error) {
		return nil, errors.New("remote down")
	})
	require.NoError(t, err)
	assert.Equal(t, SourceCache, src)
	assert.Equal(t, []item{{ID: "old"}}, got)
}

func TestReadThrough_NoSnapshotReturnsRemoteError(t *testing.T) {
	store, _ := newTestStore(t)
	remoteErr := errors.New("remote down")

	_, _, err := ReadThrough(context.Background(), store, "items", func(context.Context) ([]item, error) {
		return nil, remoteErr
	})
	assert.ErrorIs(t, err, remoteErr)
}

func TestReadThrough_NilStore(t *testing.T) {
	remoteErr := errors.New("remote down")

	_, src, err := ReadThrough(context.Background(), nil, "items", func(context.Context) (int, error) {
		return 0, remoteErr
	})
	assert.ErrorIs(t, err, remoteErr)
	assert.Equal(t, SourceRemote, src)
}
