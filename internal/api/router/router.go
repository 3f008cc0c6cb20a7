package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wolfman30/medmatch/internal/directory"
	httpmiddleware "github.com/wolfman30/medmatch/internal/http/middleware"
	"github.com/wolfman30/medmatch/internal/search"
	"github.com/wolfman30/medmatch/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	DirectoryHandler   *directory.Handler
	SearchHandler      *search.Handler
	OwnerTokens        *httpmiddleware.OwnerTokens
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// AI endpoints are limited per client IP. Zero disables the limit.
	AIRateLimitPerSecond float64
	AIRateLimitBurst     int
}

// New creates a new Chi router with all routes configured
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

	aiLimit := httpmiddleware.RateLimit(cfg.AIRateLimitPerSecond, cfg.AIRateLimitBurst)

	r.Get("/health", health)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if h := cfg.DirectoryHandler; h != nil {
		r.Route("/doctors", func(doctors chi.Router) {
			doctors.Get("/", h.ListDoctors)
			doctors.Post("/", h.Register)
			doctors.With(aiLimit).Post("/bio", h.GenerateBio)
			doctors.Get("/{doctorID}", h.GetDoctor)
			doctors.Post("/{doctorID}/bookings", h.Book)
		})
		r.Post("/session/demo", h.DemoLogin)

		r.Route("/me", func(me chi.Router) {
			me.Use(httpmiddleware.RequireOwner(cfg.OwnerTokens))
			me.Get("/", h.Me)
			me.Patch("/", h.UpdateProfile)
			me.Post("/calendar-sync", h.ToggleCalendarSync)
			me.Post("/availability", h.AddAvailability)
			me.Get("/schedule", h.Schedule)
		})
	}

	if h := cfg.SearchHandler; h != nil {
		r.Route("/search", func(s chi.Router) {
			s.Get("/", h.Current)
			s.With(aiLimit).Post("/specialists", h.FindSpecialist)
			s.Delete("/specialists", h.ClearSearch)
			s.With(aiLimit).Post("/clinical", h.AskClinical)
			s.Put("/mode", h.SetMode)
		})
	}

	return r
}

func health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
