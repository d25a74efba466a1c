package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/miloshomes9-hub/masti-chat/internal/chat"
	"github.com/miloshomes9-hub/masti-chat/internal/http/handlers"
	httpmiddleware "github.com/miloshomes9-hub/masti-chat/internal/http/middleware"
	"github.com/miloshomes9-hub/masti-chat/internal/leads"
	"github.com/miloshomes9-hub/masti-chat/internal/playlist"
	"github.com/miloshomes9-hub/masti-chat/pkg/logging"
)

// Config holds router configuration.
type Config struct {
	Logger          *logging.Logger
	ChatHandler     *chat.Handler
	LeadsHandler    *leads.Handler
	PlaylistHandler *playlist.Handler
	HealthHandler   *handlers.HealthHandler
	TestEmail       *handlers.TestEmailHandler
	MetricsHandler  http.Handler

	CORSAllowedOrigins []string
	RateLimitPerSecond float64
	RateLimitBurst     int
	AdminAuthSecret    string
}

// New creates the chi router with all routes configured.
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints: the widget calls these cross-origin.
	r.Group(func(public chi.Router) {
		if cfg.RateLimitPerSecond > 0 {
			public.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
		}
		if cfg.HealthHandler != nil {
			public.Get("/health", cfg.HealthHandler.Health)
			public.Get("/api/ping", cfg.HealthHandler.Ping)
		}
		if cfg.ChatHandler != nil {
			public.Post("/api/chat", cfg.ChatHandler.HandleChat)
		}
		if cfg.LeadsHandler != nil {
			public.Post("/api/lead", cfg.LeadsHandler.Deliver)
		}
		if cfg.PlaylistHandler != nil {
			public.Post("/api/playlist", cfg.PlaylistHandler.Curate)
		}
	})

	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	// Admin routes, JWT protected.
	if cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			if cfg.LeadsHandler != nil {
				admin.Get("/leads", cfg.LeadsHandler.List)
			}
			if cfg.TestEmail != nil {
				admin.Get("/test-email", cfg.TestEmail.SendTest)
			}
		})
	}

	return r
}
