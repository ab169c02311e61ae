package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadClientDefaults(t *testing.T) {
	t.Setenv("DEALFEED_API_URL", "")
	t.Setenv("DEALFEED_WS_URL", "")
	t.Setenv("DEALFEED_STORE_CAP", "")
	t.Setenv("DEALFEED_FIRMS", "")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Empty(t, cfg.StreamURL)
	assert.Equal(t, DefaultStoreCap, cfg.StoreCap)
	assert.False(t, cfg.Reconnect)
	assert.Equal(t, []string{"KKR", "Blackstone"}, cfg.Preferences.Firms)
	assert.Equal(t, "demo", cfg.Preferences.UserID)
}

func TestLoadClientOverrides(t *testing.T) {
	t.Setenv("DEALFEED_API_URL", " https://api.example.com ")
	t.Setenv("DEALFEED_WS_URL", "wss://stream.example.com/ws")
	t.Setenv("DEALFEED_STORE_CAP", "50")
	t.Setenv("DEALFEED_FEED_LIMIT", "100")
	t.Setenv("DEALFEED_RECONNECT", "true")
	t.Setenv("DEALFEED_RECONNECT_INITIAL", "250ms")
	t.Setenv("DEALFEED_GEOS", "APAC,, EMEA ")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, "wss://stream.example.com/ws", cfg.StreamURL)
	assert.Equal(t, 50, cfg.StoreCap)
	assert.Equal(t, 100, cfg.FeedLimit)
	assert.True(t, cfg.Reconnect)
	assert.Equal(t, 250*time.Millisecond, cfg.ReconnectInitial)
	assert.Equal(t, []string{"APAC", "EMEA"}, cfg.Preferences.Geos)
}

func TestLoadClientRejectsBadValues(t *testing.T) {
	t.Setenv("DEALFEED_STORE_CAP", "lots")
	_, err := LoadClient()
	assert.ErrorContains(t, err, "DEALFEED_STORE_CAP")

	t.Setenv("DEALFEED_STORE_CAP", "0")
	_, err = LoadClient()
	assert.ErrorContains(t, err, "must be positive")

	t.Setenv("DEALFEED_STORE_CAP", "")
	t.Setenv("DEALFEED_RECONNECT_MAX", "soon")
	_, err = LoadClient()
	assert.ErrorContains(t, err, "DEALFEED_RECONNECT_MAX")
}

func TestLoadServer(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("FEEDS", "https://a.example/rss, https://b.example/rss")
	t.Setenv("S3_PREFIX", "/archive/")
	t.Setenv("KAFKA_BROKERS", "kafka:9092")
	t.Setenv("SEEN_TTL", "1h")

	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, []string{"https://a.example/rss", "https://b.example/rss"}, cfg.Feeds)
	assert.Equal(t, "archive/", cfg.S3Prefix)
	assert.Equal(t, []string{"kafka:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Hour, cfg.SeenTTL)
	assert.Equal(t, DefaultPollSchedule, cfg.PollSchedule)
	assert.Equal(t, DefaultEntriesPerFeed, cfg.EntriesPerFeed)
}
