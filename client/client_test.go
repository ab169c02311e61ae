package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dealfeed/types"
)

func TestGetFeed(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/feed", r.URL.Path)
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","title":"A","score":10,"event_type":"M&A"},{"id":"2","score":90}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	items, err := c.GetFeed(context.Background(), 50)
	require.NoError(t, err)
	assert.Equal(t, "limit=50", gotQuery)
	require.Len(t, items, 2)
	assert.Equal(t, types.EventMergersAcquisitions, items[0].EventType)
	assert.Equal(t, 90.0, items[1].Score)

	_, err = c.GetFeed(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, gotQuery)
}

func TestGetFeedNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	items, err := NewClient(srv.URL).GetFeed(context.Background(), 0)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestGetFeedErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).GetFeed(context.Background(), 0)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "API returned 502: upstream down")
}

func TestGetFeedTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url).GetFeed(context.Background(), 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GET /feed failed")
}

func TestSetPreferences(t *testing.T) {
	var got types.Preferences
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/preferences", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true,"applied_at":"2025-01-02T03:04:05Z"}`))
	}))
	defer srv.Close()

	ack, err := NewClient(srv.URL).SetPreferences(context.Background(), types.Preferences{
		Keywords: []string{"CapEx"},
		Firms:    []string{"KKR", "Blackstone"},
		Sectors:  []string{},
		Geos:     []string{"US"},
	})
	require.NoError(t, err)
	assert.True(t, ack.OK)
	assert.Equal(t, 2025, ack.AppliedAt.Year())
	assert.Equal(t, types.DefaultUserID, got.UserID)
	assert.Equal(t, []string{"KKR", "Blackstone"}, got.Firms)
}
