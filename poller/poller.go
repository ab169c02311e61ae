// Package poller ingests deal news from RSS feeds on a schedule.
package poller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dealfeed/scoring"
	"dealfeed/seen"
	"dealfeed/types"
)

// FeedFetcher reads the newest entries of a feed
type FeedFetcher interface {
	FetchFeed(ctx context.Context, feedURL string, maxCount int) ([]types.DealItem, error)
}

// PreferenceSource supplies the preferences new items are scored with
type PreferenceSource interface {
	Get(userID string) types.Preferences
}

// Publisher receives every new item that scored above zero
type Publisher interface {
	Publish(ctx context.Context, item types.DealItem) error
}

// PublisherFunc adapts a function to Publisher
type PublisherFunc func(ctx context.Context, item types.DealItem) error

func (f PublisherFunc) Publish(ctx context.Context, item types.DealItem) error { return f(ctx, item) }

// Config wires a Poller
type Config struct {
	Fetcher        FeedFetcher
	Feeds          []string
	EntriesPerFeed int
	Store          seen.Store
	Scorer         *scoring.Scorer
	Preferences    PreferenceSource
	Publishers     []Publisher
	Logger         *slog.Logger
}

// Poller runs ingestion passes
type Poller struct {
	cfg    Config
	logger *slog.Logger
}

// Result summarises one pass
type Result struct {
	Feeds     int
	Fetched   int
	New       int
	Published int
	Failed    []string
}

// New creates a Poller
func New(cfg Config) *Poller {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Scorer == nil {
		cfg.Scorer = scoring.NewScorer()
	}
	return &Poller{cfg: cfg, logger: logger.With("component", "poller")}
}

// RunOnce fetches every feed, stores unseen items scored with the default
// user's preferences, and publishes those with a positive score. A failing feed
// is recorded and the pass moves on.
func (p *Poller) RunOnce(ctx context.Context) (Result, error) {
	res := Result{Feeds: len(p.cfg.Feeds)}
	var errs []error

	for _, feedURL := range p.cfg.Feeds {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		items, err := p.cfg.Fetcher.FetchFeed(ctx, feedURL, p.cfg.EntriesPerFeed)
		if err != nil {
			p.logger.Warn("feed fetch failed", "feed", feedURL, "error", err)
			res.Failed = append(res.Failed, feedURL)
			errs = append(errs, err)
			continue
		}
		res.Fetched += len(items)

		for _, item := range items {
			added, published, err := p.ingest(ctx, item)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			if added {
				res.New++
			}
			if published {
				res.Published++
			}
		}
	}

	p.logger.Info("poll complete",
		"feeds", res.Feeds, "fetched", res.Fetched, "new", res.New,
		"published", res.Published, "failed", len(res.Failed))
	return res, errors.Join(errs...)
}

func (p *Poller) ingest(ctx context.Context, item types.DealItem) (added, published bool, err error) {
	known, err := p.cfg.Store.Has(ctx, item.ID)
	if err != nil {
		return false, false, fmt.Errorf("seen lookup %s: %w", item.ID, err)
	}
	if known {
		return false, false, nil
	}

	item = scoring.Enrich(item)
	item = p.cfg.Scorer.Score(item, p.cfg.Preferences.Get(types.DefaultUserID))

	if err := p.cfg.Store.Put(ctx, item); err != nil {
		return false, false, fmt.Errorf("store %s: %w", item.ID, err)
	}
	if item.Score <= 0 {
		return true, false, nil
	}

	for _, pub := range p.cfg.Publishers {
		if err := pub.Publish(ctx, item); err != nil {
			p.logger.Warn("publish failed", "id", item.ID, "error", err)
		}
	}
	return true, true, nil
}
