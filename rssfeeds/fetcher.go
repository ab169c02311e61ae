package rssfeeds

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"dealfeed/types"

	"github.com/mmcdole/gofeed"
)

// DefaultEntriesPerFeed is how many entries are read from the top of each feed
const DefaultEntriesPerFeed = 20

// Fetcher parses feeds over a shared HTTP client
type Fetcher struct {
	parser *gofeed.Parser
}

// NewFetcher creates a Fetcher; a nil client gets a 30s timeout client
func NewFetcher(httpClient *http.Client) *Fetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	parser := gofeed.NewParser()
	parser.Client = httpClient
	parser.UserAgent = "dealfeed/1.0"
	return &Fetcher{parser: parser}
}

// FetchFeed retrieves and parses an RSS/Atom feed into unscored deal items
func (f *Fetcher) FetchFeed(ctx context.Context, feedURL string, maxCount int) ([]types.DealItem, error) {
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed %s: %w", feedURL, err)
	}

	if maxCount <= 0 {
		maxCount = DefaultEntriesPerFeed
	}
	count := min(len(feed.Items), maxCount)
	items := make([]types.DealItem, 0, count)

	for _, entry := range feed.Items[:count] {
		id := EntryID(entry)
		if id == "" {
			continue
		}

		// Summary may be HTML; some feeds only carry a body
		summary := entry.Description
		if summary == "" {
			summary = entry.Content
		}

		var published *time.Time
		if entry.PublishedParsed != nil {
			t := entry.PublishedParsed.UTC()
			published = &t
		} else if entry.UpdatedParsed != nil {
			t := entry.UpdatedParsed.UTC()
			published = &t
		}

		items = append(items, types.DealItem{
			ID:                 id,
			Title:              CleanText(entry.Title),
			Link:               entry.Link,
			Summary:            CleanText(summary),
			Published:          published,
			EventType:          types.EventOther,
			Entities:           []string{},
			Firms:              []string{},
			RelationshipBadges: []string{},
		})
	}

	return items, nil
}

// EntryID derives a stable id from the entry's guid, link or title, in that order
func EntryID(entry *gofeed.Item) string {
	for _, candidate := range []string{entry.GUID, entry.Link, entry.Title} {
		if candidate != "" {
			return types.GenerateID(candidate)
		}
	}
	return ""
}
