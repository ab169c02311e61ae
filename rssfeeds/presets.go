package rssfeeds

import "sort"

// FeedConfig represents the configuration for a single RSS feed
type FeedConfig struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// FeedPresets maps friendly keys to deal-news feeds
var FeedPresets = map[string]FeedConfig{
	"pehub": {
		Name: "PE Hub",
		URL:  "https://www.pehub.com/feed/",
	},
	"prnma": {
		Name: "PR Newswire Mergers & Acquisitions",
		URL:  "https://www.prnewswire.com/rss/financial-services-latest-news/acquisitions-mergers-and-takeovers-list.rss",
	},
	"gnwma": {
		Name: "GlobeNewswire Mergers & Acquisitions",
		URL:  "https://www.globenewswire.com/RssFeed/subjectcode/27-Mergers%20and%20Acquisitions/feedTitle/GlobeNewswire%20-%20Mergers%20and%20Acquisitions",
	},
	"bwfin": {
		Name: "Business Wire Finance",
		URL:  "https://feed.businesswire.com/rss/home/?rss=G1QFDERJXkJeGVtRXw==",
	},
}

// ResolveFeedURL returns the preset URL for a key, or the input unchanged
func ResolveFeedURL(feed string) string {
	if preset, ok := FeedPresets[feed]; ok {
		return preset.URL
	}
	return feed
}

// ResolveFeeds maps each entry through ResolveFeedURL; an empty list means every preset
func ResolveFeeds(feeds []string) []string {
	if len(feeds) == 0 {
		names := make([]string, 0, len(FeedPresets))
		for name := range FeedPresets {
			names = append(names, name)
		}
		sort.Strings(names)
		feeds = names
	}

	urls := make([]string, 0, len(feeds))
	for _, f := range feeds {
		urls = append(urls, ResolveFeedURL(f))
	}
	return urls
}
