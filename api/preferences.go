package api

import (
	"net/http"
	"time"

	"dealfeed/types"

	"github.com/gin-gonic/gin"
)

// RegisterPreferenceRoutes registers the preference update endpoint.
func RegisterPreferenceRoutes(r *gin.Engine, deps Deps) {
	r.POST("/preferences", func(c *gin.Context) {
		var prefs types.Preferences
		if err := c.ShouldBindJSON(&prefs); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid preferences payload"})
			return
		}
		prefs = deps.Preferences.Set(prefs)
		deps.Logger.Info("preferences received", "user_id", prefs.UserID,
			"keywords", len(prefs.Keywords), "firms", len(prefs.Firms))

		ctx := c.Request.Context()
		items, err := deps.Store.All(ctx)
		if err != nil {
			deps.Logger.Error("preferences: store unavailable", "error", err)
			c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "store unavailable"})
			return
		}
		// every stored item is rescored so the next snapshot reflects the change
		for _, item := range items {
			if err := deps.Store.Put(ctx, deps.Scorer.Score(item, prefs)); err != nil {
				deps.Logger.Error("preferences: rescore failed", "id", item.ID, "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false, "error": "store unavailable"})
				return
			}
		}

		deps.Logger.Info("preferences applied", "user_id", prefs.UserID, "rescored", len(items))
		c.JSON(http.StatusOK, gin.H{
			"ok":         true,
			"applied_at": deps.Now().UTC().Format(time.RFC3339Nano),
		})
	})
}
