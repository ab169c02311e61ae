package livechannel

import (
	"net/url"
	"regexp"
	"strings"
)

// DefaultFallbackOrigin stands in for "the current page" when the API base is unusable
const DefaultFallbackOrigin = "http://localhost:8000"

var repeatedSlashes = regexp.MustCompile(`/{2,}`)

// StreamURL derives the WebSocket endpoint from the API base:
// http->ws, https->wss, path + "/ws", no query or fragment.
// When apiBase is not an absolute URL the fallback origin's host is used instead.
func StreamURL(apiBase, fallbackOrigin string) string {
	u, err := url.Parse(strings.TrimSpace(apiBase))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fallbackStreamURL(fallbackOrigin)
	}

	u.Scheme = streamScheme(u.Scheme)
	u.Path = repeatedSlashes.ReplaceAllString(strings.TrimRight(u.Path, "/")+"/ws", "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""
	return u.String()
}

func fallbackStreamURL(origin string) string {
	u, err := url.Parse(strings.TrimSpace(origin))
	if err != nil || u.Host == "" {
		u, _ = url.Parse(DefaultFallbackOrigin)
	}
	return streamScheme(u.Scheme) + "://" + u.Host + "/ws"
}

func streamScheme(scheme string) string {
	switch strings.ToLower(scheme) {
	case "https", "wss":
		return "wss"
	default:
		return "ws"
	}
}
