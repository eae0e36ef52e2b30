package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Dosada05/tournament-engine/config"
	"github.com/Dosada05/tournament-engine/handlers"
	"github.com/Dosada05/tournament-engine/middleware"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/tournament-engine/docs"
)

type Handlers struct {
	Tournament *handlers.TournamentHandler
	Match      *handlers.MatchHandler
	WebSocket  *handlers.WebSocketHandler
	Health     *handlers.HealthHandler
}

func SetupRoutes(cfg *config.Config, h Handlers, logger *slog.Logger) http.Handler {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/health", h.Health.HealthCheck)
	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// WebSocket не проходит через таймаут и лимитер.
	router.Get("/ws/tournaments/{tournamentID}", h.WebSocket.ServeWs)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
		r.Use(chiMiddleware.Timeout(30 * time.Second))

		r.Route("/tournaments/{tournamentID}", func(r chi.Router) {
			r.Get("/", h.Tournament.GetByIDHandler)
			r.Get("/matches", h.Tournament.ListMatchesHandler)
			r.Get("/standings", h.Tournament.StandingsHandler)
			r.Get("/scorers", h.Tournament.TopScorersHandler)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(cfg.JWTSecretKey, logger))
				r.Post("/schedule", h.Tournament.GenerateScheduleHandler)
			})
		})

		r.Route("/matches/{matchID}", func(r chi.Router) {
			r.Get("/", h.Match.GetByIDHandler)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(cfg.JWTSecretKey, logger))
				r.Post("/complete", h.Match.CompleteHandler)
				r.Patch("/score", h.Match.UpdateScoreHandler)
			})
		})
	})

	return router
}
