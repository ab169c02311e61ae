// Package snapshot performs the one-shot bulk load of the deal feed.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dealfeed/types"
)

// ErrFetch wraps every failure to obtain the snapshot
var ErrFetch = errors.New("failed to load feed")

// Fetcher retrieves the deal collection
type Fetcher interface {
	GetFeed(ctx context.Context, limit int) ([]types.DealItem, error)
}

// Replacer is the store side of a snapshot load
type Replacer interface {
	ReplaceAll(items []types.DealItem)
}

// Loader fetches the feed and hands it to the store in one step
type Loader struct {
	fetcher Fetcher
	store   Replacer
	limit   int
	logger  *slog.Logger
}

// NewLoader creates a Loader. limit is sent to the server as-is and is
// independent of the store's retention cap; <= 0 means the server default.
func NewLoader(fetcher Fetcher, store Replacer, limit int, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		fetcher: fetcher,
		store:   store,
		limit:   limit,
		logger:  logger.With("component", "snapshot"),
	}
}

// Load fetches the collection and replaces the store's contents with it.
// On failure the store is left untouched and the error is readable as-is.
func (l *Loader) Load(ctx context.Context) (int, error) {
	items, err := l.fetcher.GetFeed(ctx, l.limit)
	if err != nil {
		l.logger.Warn("snapshot load failed", "error", err)
		return 0, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	valid := items[:0:0]
	for _, it := range items {
		if it.ID == "" {
			continue
		}
		valid = append(valid, it)
	}
	if dropped := len(items) - len(valid); dropped > 0 {
		l.logger.Warn("dropped snapshot items without id", "count", dropped)
	}

	l.store.ReplaceAll(valid)
	l.logger.Info("snapshot loaded", "items", len(valid))
	return len(valid), nil
}
