// Package config resolves client and server settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"dealfeed/types"
)

// Client holds the terminal client's settings
type Client struct {
	APIURL         string
	StreamURL      string // explicit override; empty means derive from APIURL
	FallbackOrigin string
	StoreCap       int
	FeedLimit      int // 0 leaves the server default
	LogFile        string
	LogLevel       string

	Reconnect           bool
	ReconnectMaxTries   int
	ReconnectInitial    time.Duration
	ReconnectMaxBackoff time.Duration

	Preferences types.Preferences
}

// LoadClient reads DEALFEED_* variables
func LoadClient() (*Client, error) {
	cfg := &Client{
		APIURL:         strings.TrimSpace(getEnvOrDefault("DEALFEED_API_URL", DefaultAPIURL)),
		StreamURL:      strings.TrimSpace(os.Getenv("DEALFEED_WS_URL")),
		FallbackOrigin: getEnvOrDefault("DEALFEED_ORIGIN", DefaultOrigin),
		LogFile:        getEnvOrDefault("DEALFEED_LOG_FILE", DefaultLogFile),
		LogLevel:       getEnvOrDefault("DEALFEED_LOG_LEVEL", "info"),
		Preferences: types.Preferences{
			UserID:   getEnvOrDefault("DEALFEED_USER_ID", types.DefaultUserID),
			Keywords: types.SplitList(getEnvOrDefault("DEALFEED_KEYWORDS", "CapEx, report")),
			Firms:    types.SplitList(getEnvOrDefault("DEALFEED_FIRMS", "KKR, Blackstone")),
			Sectors:  types.SplitList(getEnvOrDefault("DEALFEED_SECTORS", "Industrial, Healthcare")),
			Geos:     types.SplitList(getEnvOrDefault("DEALFEED_GEOS", "US, Europe")),
		},
	}

	var err error
	if cfg.StoreCap, err = intFromEnv("DEALFEED_STORE_CAP", DefaultStoreCap); err != nil {
		return nil, err
	}
	if cfg.StoreCap <= 0 {
		return nil, fmt.Errorf("DEALFEED_STORE_CAP must be positive, got %d", cfg.StoreCap)
	}
	if cfg.FeedLimit, err = intFromEnv("DEALFEED_FEED_LIMIT", 0); err != nil {
		return nil, err
	}
	if cfg.Reconnect, err = boolFromEnv("DEALFEED_RECONNECT", false); err != nil {
		return nil, err
	}
	if cfg.ReconnectMaxTries, err = intFromEnv("DEALFEED_RECONNECT_MAX_ATTEMPTS", 10); err != nil {
		return nil, err
	}
	if cfg.ReconnectInitial, err = durationFromEnv("DEALFEED_RECONNECT_INITIAL", DefaultReconnectInitial); err != nil {
		return nil, err
	}
	if cfg.ReconnectMaxBackoff, err = durationFromEnv("DEALFEED_RECONNECT_MAX", DefaultReconnectMax); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Server holds the deal server's settings
type Server struct {
	Port            string
	LogLevel        string
	LogJSON         bool
	Feeds           []string
	PollSchedule    string
	EntriesPerFeed  int
	StrictRelevance bool
	InitialPush     int

	AllowedOrigins  []string
	AllowedSuffixes []string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string
	SeenTTL       time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	S3Bucket       string
	S3Prefix       string
	S3Region       string
	S3Profile      string
	S3UsePathStyle bool
}

// LoadServer reads the server's environment
func LoadServer() (*Server, error) {
	cfg := &Server{
		Port:            getEnvOrDefault("PORT", DefaultPort),
		LogLevel:        getEnvOrDefault("LOG_LEVEL", "info"),
		Feeds:           types.SplitList(os.Getenv("FEEDS")),
		PollSchedule:    getEnvOrDefault("POLL_SCHEDULE", DefaultPollSchedule),
		AllowedOrigins:  types.SplitList(os.Getenv("ALLOWED_ORIGINS")),
		AllowedSuffixes: types.SplitList(os.Getenv("ALLOWED_ORIGIN_SUFFIXES")),
		RedisAddr:       strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:   os.Getenv("REDIS_PASS"),
		RedisKey:        getEnvOrDefault("REDIS_KEY", DefaultRedisKey),
		KafkaBrokers:    types.SplitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:      getEnvOrDefault("KAFKA_TOPIC", DefaultKafkaTopic),
		S3Bucket:        strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:        strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:       strings.TrimSpace(os.Getenv("S3_PROFILE")),
	}

	if prefix := strings.TrimSpace(os.Getenv("S3_PREFIX")); prefix != "" {
		cfg.S3Prefix = strings.Trim(prefix, "/") + "/"
	}

	var err error
	if cfg.EntriesPerFeed, err = intFromEnv("ENTRIES_PER_FEED", DefaultEntriesPerFeed); err != nil {
		return nil, err
	}
	if cfg.InitialPush, err = intFromEnv("WS_INITIAL_PUSH", DefaultInitialPush); err != nil {
		return nil, err
	}
	if cfg.StrictRelevance, err = boolFromEnv("STRICT_RELEVANCE", false); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = intFromEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.SeenTTL, err = durationFromEnv("SEEN_TTL", DefaultSeenTTL); err != nil {
		return nil, err
	}
	if cfg.S3UsePathStyle, err = boolFromEnv("S3_USE_PATH_STYLE", false); err != nil {
		return nil, err
	}
	if cfg.LogJSON, err = boolFromEnv("LOG_JSON", true); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func intFromEnv(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

func boolFromEnv(key string, def bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}

func durationFromEnv(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
