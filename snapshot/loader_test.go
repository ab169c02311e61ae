package snapshot

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealfeed/feedstore"
	"dealfeed/types"
)

type fakeFetcher struct {
	items     []types.DealItem
	err       error
	lastLimit int
}

func (f *fakeFetcher) GetFeed(_ context.Context, limit int) ([]types.DealItem, error) {
	f.lastLimit = limit
	return f.items, f.err
}

func TestLoadReplacesStore(t *testing.T) {
	store := feedstore.New(0)
	store.MergeOne(types.DealItem{ID: "old"})

	f := &fakeFetcher{items: []types.DealItem{{ID: "1", Score: 10}, {ID: "2", Score: 90}}}
	n, err := NewLoader(f, store, 50, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 50, f.lastLimit)

	snap := store.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "1", snap[0].ID)
	assert.Equal(t, "2", snap[1].ID)
}

func TestLoadFailureLeavesStoreUntouched(t *testing.T) {
	store := feedstore.New(0)
	store.MergeOne(types.DealItem{ID: "live"})
	version := store.Version()

	f := &fakeFetcher{err: errors.New("GET /feed failed: API returned 500: boom")}
	_, err := NewLoader(f, store, 0, nil).Load(context.Background())
	require.ErrorIs(t, err, ErrFetch)
	assert.Contains(t, err.Error(), "API returned 500")
	assert.Equal(t, version, store.Version())
	assert.Equal(t, "live", store.Snapshot()[0].ID)
}

func TestLoadEmptyAndInvalidItems(t *testing.T) {
	store := feedstore.New(0)
	store.MergeOne(types.DealItem{ID: "live"})

	f := &fakeFetcher{items: []types.DealItem{{Title: "no id"}}}
	n, err := NewLoader(f, store, 0, nil).Load(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, store.Len())
}
