package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/iconidentify/vidgrab/internal/api/handler"
	mw "github.com/iconidentify/vidgrab/internal/api/middleware"
	"github.com/iconidentify/vidgrab/internal/config"
)

// DownloadsPrefix is the URL path under which merged files are served.
const DownloadsPrefix = "/downloads/"

// Handlers groups the HTTP handlers mounted by NewRouter.
type Handlers struct {
	VideoInfo *handler.VideoInfoHandler
	Health    *handler.HealthHandler
	UI        *handler.UIHandler
	Downloads *handler.DownloadsHandler
}

// NewRouter creates the HTTP router with all routes configured.
func NewRouter(h Handlers, serverCfg config.ServerConfig, limitCfg config.RateLimitConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CleanPath)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	r.Use(mw.CORS)

	timeout := serverCfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Minute
	}

	// Health endpoints
	r.Get("/health", h.Health.Live)
	r.Get("/ready", h.Health.Ready)
	r.Get("/stats", h.Health.Stats)

	// Format lookup; may block on a merge until the request timeout
	r.Group(func(r chi.Router) {
		r.Use(mw.RateLimit(limitCfg.RPS, limitCfg.Burst))
		r.Use(mw.Deadline(timeout))
		r.Get("/video-info", h.VideoInfo.Get)
	})

	// Merged output
	r.Get(DownloadsPrefix+"*", h.Downloads.Serve)

	// Web UI
	r.Get("/", h.UI.Index)
	r.Get("/*", h.UI.Assets)

	return r
}
