package api

import (
	"net/http"
	"net/url"
	"slices"
	"strings"

	"dealfeed/types"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// OriginPolicy restricts which browser origins may open the stream.
// With both lists empty every origin is accepted.
type OriginPolicy struct {
	Allowed  []string // exact origins, e.g. https://deals.example.com
	Suffixes []string // host suffixes, e.g. .vercel.app
}

// Enabled reports whether the policy restricts anything
func (p OriginPolicy) Enabled() bool {
	return len(p.Allowed) > 0 || len(p.Suffixes) > 0
}

// Permits checks an Origin header value
func (p OriginPolicy) Permits(origin string) bool {
	if !p.Enabled() {
		return true
	}
	if origin == "" {
		return false
	}
	if slices.Contains(p.Allowed, origin) {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	for _, sfx := range p.Suffixes {
		if host != "" && strings.HasSuffix(host, sfx) {
			return true
		}
	}
	return false
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// origins are checked after the upgrade so rejected clients get a policy close code
	CheckOrigin: func(*http.Request) bool { return true },
}

// RegisterStreamRoutes registers the live deal stream.
func RegisterStreamRoutes(r *gin.Engine, deps Deps) {
	r.GET("/ws", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			deps.Logger.Warn("stream upgrade failed", "error", err)
			return
		}

		client := &streamClient{conn: conn}
		if origin := c.GetHeader("Origin"); !deps.Origins.Permits(origin) {
			deps.Logger.Info("stream origin rejected", "origin", origin)
			client.closeWith(websocket.ClosePolicyViolation, "origin not allowed")
			return
		}

		client = deps.Hub.add(conn)
		defer func() {
			deps.Hub.remove(client)
			_ = conn.Close()
		}()

		// a failed initial push keeps the connection open
		top, err := TopItems(c.Request.Context(), deps.Store, deps.InitialPush)
		if err != nil {
			deps.Logger.Error("stream initial push: store unavailable", "error", err)
		}
		for _, item := range top {
			if err := client.send(types.NewDealEnvelope(item)); err != nil {
				deps.Logger.Warn("stream initial push failed", "error", err)
				break
			}
		}

		// keepalive; inbound payloads are ignored
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
