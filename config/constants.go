package config

import "time"

// Client defaults
const (
	// DefaultAPIURL is the deal feed API base when none is configured
	DefaultAPIURL = "http://localhost:8000"

	// DefaultOrigin stands in for the page origin when the API base is unusable
	DefaultOrigin = "http://localhost:8000"

	// DefaultStoreCap is the number of deals kept on the client
	DefaultStoreCap = 200

	// DefaultLogFile receives client logs so they stay out of the terminal UI
	DefaultLogFile = "dealfeed.log"

	// DefaultReconnectInitial is the first wait before redialing the stream
	DefaultReconnectInitial = time.Second

	// DefaultReconnectMax caps the wait between redials
	DefaultReconnectMax = 30 * time.Second
)

// Server defaults
const (
	// DefaultPort is the API listen port
	DefaultPort = "8000"

	// DefaultPollSchedule is how often feeds are polled
	DefaultPollSchedule = "@every 60s"

	// DefaultEntriesPerFeed limits how many entries are read from each feed per poll
	DefaultEntriesPerFeed = 20

	// DefaultFeedLimit is the /feed page size when no limit is given
	DefaultFeedLimit = 50

	// DefaultInitialPush is how many top deals a new stream client receives
	DefaultInitialPush = 20

	// DefaultRedisKey holds seen deals in Redis
	DefaultRedisKey = "dealfeed:items"

	// DefaultSeenTTL expires the Redis seen set after inactivity
	DefaultSeenTTL = 72 * time.Hour

	// DefaultKafkaTopic carries deal envelopes between server instances
	DefaultKafkaTopic = "deal-items"
)
