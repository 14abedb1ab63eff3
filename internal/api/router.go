package api

import (
	"net/http"
	"time"

	// This blank import is required by swaggo to find the API definitions.
	_ "tutorflow/backend/docs"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"tutorflow/backend/internal/ratelimit"
)

// RateLimits holds the per-user request budget of each generating feature.
// All features share one window length.
type RateLimits struct {
	Reply      int
	Regenerate int
	Summary    int
	Window     time.Duration
}

// Handlers groups everything the router dispatches to.
type Handlers struct {
	Tutor   *TutorHandler
	Summary *SummaryHandler
	Models  *ModelHandler
}

// NewRouter creates and configures a new chi router with all the application's routes.
func NewRouter(h Handlers, limiter *ratelimit.Limiter, limits RateLimits) *chi.Mux {
	r := chi.NewRouter()

	// --- Global Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// --- Public Routes ---
	r.Get("/api/swagger/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// --- API Version 1 Routes ---
	r.Route("/api/v1", func(r chi.Router) {
		// The model list is not per user.
		r.With(middleware.Timeout(60*time.Second)).Get("/models", h.Models.HandleListModels)

		r.Group(func(r chi.Router) {
			r.Use(RequireUser)

			// JSON routes get a request timeout.
			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(60 * time.Second))
				r.Get("/sessions/{sessionID}/messages", h.Tutor.HandleListMessages)
			})

			// Streaming routes must NOT have a timeout; generation bounds itself.
			r.Group(func(r chi.Router) {
				r.With(RateLimit(limiter, "reply", limits.Reply, limits.Window)).
					Post("/sessions/{sessionID}/messages", h.Tutor.HandleSendMessage)
				r.With(RateLimit(limiter, "regenerate", limits.Regenerate, limits.Window)).
					Post("/sessions/{sessionID}/regenerate", h.Tutor.HandleRegenerate)
				r.With(RateLimit(limiter, "summary", limits.Summary, limits.Window)).
					Get("/courses/{courseID}/topics/{topicID}/summary", h.Summary.HandleGetSummary)
			})
		})
	})

	return r
}
