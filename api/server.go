package api

import (
	"log/slog"
	"time"

	"dealfeed/preferences"
	"dealfeed/scoring"
	"dealfeed/seen"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the HTTP surface reads and writes
type Deps struct {
	Store       seen.Store
	Scorer      *scoring.Scorer
	Preferences *preferences.Registry
	Hub         *Hub
	Origins     OriginPolicy
	InitialPush int
	Logger      *slog.Logger
	Now         func() time.Time
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(deps Deps) *gin.Engine {
	if deps.Logger == nil {
		deps.Logger = slog.Default()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.InitialPush <= 0 {
		deps.InitialPush = 20
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOriginFunc:  func(string) bool { return true },
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           10 * time.Minute,
	}))

	RegisterHealthRoutes(r, deps)
	RegisterFeedRoutes(r, deps)
	RegisterPreferenceRoutes(r, deps)
	RegisterStreamRoutes(r, deps)
	return r
}
