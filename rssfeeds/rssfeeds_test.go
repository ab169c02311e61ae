package rssfeeds

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"dealfeed/types"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Deals</title>
  <item>
    <guid>deal-1</guid>
    <title>KKR to acquire Acme</title>
    <link>https://news.example.com/1</link>
    <description><![CDATA[<p>KKR &amp; partners <b>agree</b> to buy Acme.</p><script>track()</script>]]></description>
    <pubDate>Mon, 06 Oct 2025 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Blackstone closes term loan</title>
    <link>https://news.example.com/2</link>
    <description>Plain text body</description>
  </item>
  <item>
    <title>Third story</title>
    <link>https://news.example.com/3</link>
  </item>
</channel>
</rss>`

func feedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchFeed(t *testing.T) {
	srv := feedServer(t, sampleRSS)

	items, err := NewFetcher(nil).FetchFeed(context.Background(), srv.URL, 20)
	require.NoError(t, err)
	require.Len(t, items, 3)

	first := items[0]
	assert.Equal(t, types.GenerateID("deal-1"), first.ID)
	assert.Equal(t, "KKR to acquire Acme", first.Title)
	assert.Equal(t, "KKR & partners agree to buy Acme.", first.Summary)
	require.NotNil(t, first.Published)
	assert.Equal(t, 2025, first.Published.Year())
	assert.Equal(t, types.EventOther, first.EventType)

	// no guid: id falls back to the link
	assert.Equal(t, types.GenerateID("https://news.example.com/2"), items[1].ID)
	assert.Nil(t, items[1].Published)
}

func TestFetchFeedLimitsEntries(t *testing.T) {
	srv := feedServer(t, sampleRSS)

	items, err := NewFetcher(nil).FetchFeed(context.Background(), srv.URL, 2)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestFetchFeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewFetcher(nil).FetchFeed(context.Background(), srv.URL, 20)
	assert.Error(t, err)
}

func TestEntryID(t *testing.T) {
	assert.Equal(t, types.GenerateID("g"), EntryID(&gofeed.Item{GUID: "g", Link: "l", Title: "t"}))
	assert.Equal(t, types.GenerateID("t"), EntryID(&gofeed.Item{Title: "t"}))
	assert.Empty(t, EntryID(&gofeed.Item{}))
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "  already   plain ", "already plain"},
		{"tags become spaces", "<p>one</p><p>two</p>", "one two"},
		{"entities", "Smith &amp; Co&nbsp;Partners", "Smith & Co Partners"},
		{"script and style dropped", "<style>p{}</style>a<script>x()</script>b", "ab"},
		{"nested", "<div><ul><li>KKR</li><li>TPG</li></ul></div>", "KKR TPG"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanText(tt.in))
		})
	}
}

func TestResolveFeeds(t *testing.T) {
	assert.Equal(t, FeedPresets["pehub"].URL, ResolveFeedURL("pehub"))
	assert.Equal(t, "https://x.example/rss", ResolveFeedURL("https://x.example/rss"))

	all := ResolveFeeds(nil)
	assert.Len(t, all, len(FeedPresets))

	got := ResolveFeeds([]string{"pehub", "https://x.example/rss"})
	assert.Equal(t, []string{FeedPresets["pehub"].URL, "https://x.example/rss"}, got)
}
