package livechannel

import "testing"

func TestStreamURL(t *testing.T) {
	cases := []struct {
		name, base, want string
	}{
		{"http root", "http://localhost:8000", "ws://localhost:8000/ws"},
		{"https root slash", "https://deals.example.com/", "wss://deals.example.com/ws"},
		{"keeps prefix", "https://example.com/api", "wss://example.com/api/ws"},
		{"trailing slashes", "https://example.com/api///", "wss://example.com/api/ws"},
		{"double slashes in path", "http://example.com//api//v1/", "ws://example.com/api/v1/ws"},
		{"drops query and fragment", "http://example.com/x?limit=50#top", "ws://example.com/x/ws"},
		{"uppercase scheme", "HTTPS://example.com", "wss://example.com/ws"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := StreamURL(c.base, "https://page.example.org"); got != c.want {
				t.Fatalf("StreamURL(%q) = %q; want %q", c.base, got, c.want)
			}
		})
	}
}

func TestStreamURLFallback(t *testing.T) {
	cases := []struct {
		name, base, origin, want string
	}{
		{"relative base", "/api", "https://page.example.org:8443/app", "wss://page.example.org:8443/ws"},
		{"empty base", "", "http://localhost:5173", "ws://localhost:5173/ws"},
		{"garbage base", "::not a url", "http://localhost:5173", "ws://localhost:5173/ws"},
		{"no origin either", "", "", "ws://localhost:8000/ws"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := StreamURL(c.base, c.origin); got != c.want {
				t.Fatalf("StreamURL(%q, %q) = %q; want %q", c.base, c.origin, got, c.want)
			}
		})
	}
}
