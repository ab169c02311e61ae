package poller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"dealfeed/preferences"
	"dealfeed/scoring"
	"dealfeed/seen"
	"dealfeed/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 10, 6, 12, 0, 0, 0, time.UTC)

type fakeFetcher struct {
	feeds   map[string][]types.DealItem
	calls   atomic.Int32
	block   chan struct{}
	entered chan struct{}
}

func (f *fakeFetcher) FetchFeed(ctx context.Context, feedURL string, maxCount int) ([]types.DealItem, error) {
	f.calls.Add(1)
	if f.entered != nil {
		f.entered <- struct{}{}
	}
	if f.block != nil {
		<-f.block
	}
	items, ok := f.feeds[feedURL]
	if !ok {
		return nil, errors.New("feed unavailable")
	}
	return items, nil
}

type recorder struct {
	mu    sync.Mutex
	items []types.DealItem
}

func (r *recorder) Publish(_ context.Context, item types.DealItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, item)
	return nil
}

func (r *recorder) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.items))
	for _, it := range r.items {
		out = append(out, it.ID)
	}
	return out
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestPoller(fetcher FeedFetcher, feeds []string, store seen.Store, rec *recorder, opts ...scoring.Option) *Poller {
	opts = append(opts, scoring.WithClock(func() time.Time { return fixedNow }))
	return New(Config{
		Fetcher:        fetcher,
		Feeds:          feeds,
		EntriesPerFeed: 20,
		Store:          store,
		Scorer:         scoring.NewScorer(opts...),
		Preferences:    preferences.NewRegistry(),
		Publishers:     []Publisher{rec},
		Logger:         quietLogger(),
	})
}

func TestRunOnce(t *testing.T) {
	fetcher := &fakeFetcher{feeds: map[string][]types.DealItem{
		"a": {
			{ID: "1", Title: "KKR to acquire Acme"},
			{ID: "2", Title: "Blackstone term loan"},
		},
		"b": {
			{ID: "2", Title: "Blackstone term loan"},
			{ID: "3", Title: "Joint venture formed"},
		},
	}}
	store := seen.NewMemoryStore()
	rec := &recorder{}
	p := newTestPoller(fetcher, []string{"a", "down", "b"}, store, rec)

	res, err := p.RunOnce(context.Background())
	assert.ErrorContains(t, err, "feed unavailable")
	assert.Equal(t, 3, res.Feeds)
	assert.Equal(t, 4, res.Fetched)
	assert.Equal(t, 3, res.New)
	assert.Equal(t, 3, res.Published)
	assert.Equal(t, []string{"down"}, res.Failed)
	assert.Equal(t, []string{"1", "2", "3"}, rec.ids())

	all, err := store.All(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, types.EventMergersAcquisitions, all[0].EventType)
	assert.Equal(t, []string{"KKR"}, all[0].Firms)
	assert.Equal(t, []string{"Co-invested with KKR"}, all[0].RelationshipBadges)
	assert.Positive(t, all[0].Score)

	// second pass finds nothing new
	res, _ = p.RunOnce(context.Background())
	assert.Zero(t, res.New)
	assert.Len(t, rec.ids(), 3)
}

func TestRunOnceUnpublishedWhenScoreIsZero(t *testing.T) {
	fetcher := &fakeFetcher{feeds: map[string][]types.DealItem{
		"a": {{ID: "1", Title: "Quarterly dividend declared"}},
	}}
	store := seen.NewMemoryStore()
	rec := &recorder{}
	p := newTestPoller(fetcher, []string{"a"}, store, rec, scoring.WithStrictRelevance(true))

	res, err := p.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.New)
	assert.Zero(t, res.Published)
	assert.Empty(t, rec.ids())

	n, _ := store.Len(context.Background())
	assert.Equal(t, 1, n)
}

func TestRunOnceCanceled(t *testing.T) {
	p := newTestPoller(&fakeFetcher{}, []string{"a"}, seen.NewMemoryStore(), &recorder{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := p.RunOnce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSchedulerSkipsOverlappingPasses(t *testing.T) {
	fetcher := &fakeFetcher{
		feeds:   map[string][]types.DealItem{"a": {{ID: "1", Title: "x"}}},
		block:   make(chan struct{}),
		entered: make(chan struct{}, 1),
	}
	s := NewScheduler(newTestPoller(fetcher, []string{"a"}, seen.NewMemoryStore(), &recorder{}))

	done := make(chan bool)
	go func() { done <- s.Trigger(context.Background()) }()
	<-fetcher.entered

	assert.False(t, s.Trigger(context.Background()))
	close(fetcher.block)
	assert.True(t, <-done)
	assert.Equal(t, int32(1), fetcher.calls.Load())
}

func TestSchedulerStart(t *testing.T) {
	fetcher := &fakeFetcher{feeds: map[string][]types.DealItem{"a": {{ID: "1", Title: "x"}}}}
	store := seen.NewMemoryStore()
	s := NewScheduler(newTestPoller(fetcher, []string{"a"}, store, &recorder{}))

	require.NoError(t, s.Start(context.Background(), "@every 1h"))
	assert.Eventually(t, func() bool {
		n, _ := store.Len(context.Background())
		return n == 1
	}, 2*time.Second, 10*time.Millisecond)
	s.Stop()

	bad := NewScheduler(newTestPoller(fetcher, nil, store, &recorder{}))
	assert.ErrorContains(t, bad.Start(context.Background(), "not a schedule"), "failed to add cron job")
}
