package api

import (
	"context"
	"net/http"
	"sort"
	"strconv"

	"dealfeed/seen"
	"dealfeed/types"

	"github.com/gin-gonic/gin"
)

const defaultFeedLimit = 50

// RegisterHealthRoutes registers the service banner and health endpoints.
func RegisterHealthRoutes(r *gin.Engine, deps Deps) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": "deal-feed"})
	})
	r.GET("/health", func(c *gin.Context) {
		n, err := deps.Store.Len(c.Request.Context())
		if err != nil {
			deps.Logger.Error("health: store unavailable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "store unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"ok": true, "items": n})
	})
}

// RegisterFeedRoutes registers the snapshot endpoint.
func RegisterFeedRoutes(r *gin.Engine, deps Deps) {
	r.GET("/feed", func(c *gin.Context) {
		limit := defaultFeedLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
				return
			}
			limit = n
		}

		items, err := TopItems(c.Request.Context(), deps.Store, limit)
		if err != nil {
			deps.Logger.Error("feed: store unavailable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
			return
		}
		c.JSON(http.StatusOK, items)
	})
}

// TopItems returns up to limit stored items with a positive score, highest first
func TopItems(ctx context.Context, store seen.Store, limit int) ([]types.DealItem, error) {
	all, err := store.All(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]types.DealItem, 0, len(all))
	for _, item := range all {
		if item.Score > 0 {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
