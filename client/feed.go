package client

import (
	"context"
	"net/http"
	"strconv"

	"dealfeed/types"
)

// GetFeed fetches the current deal collection. limit <= 0 leaves the
// server default in place.
func (c *Client) GetFeed(ctx context.Context, limit int) ([]types.DealItem, error) {
	path := "/feed"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}

	var items []types.DealItem
	if err := c.doJSONRequest(ctx, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []types.DealItem{}
	}
	return items, nil
}
