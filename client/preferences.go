package client

import (
	"context"
	"net/http"
	"time"

	"dealfeed/types"
)

// PreferencesAck is the server's answer to a preference update
type PreferencesAck struct {
	OK        bool      `json:"ok"`
	AppliedAt time.Time `json:"applied_at"`
}

// SetPreferences submits the user's scoring preferences
func (c *Client) SetPreferences(ctx context.Context, prefs types.Preferences) (*PreferencesAck, error) {
	if prefs.UserID == "" {
		prefs.UserID = types.DefaultUserID
	}

	var ack PreferencesAck
	if err := c.doJSONRequest(ctx, http.MethodPost, "/preferences", prefs, &ack); err != nil {
		return nil, err
	}
	return &ack, nil
}
