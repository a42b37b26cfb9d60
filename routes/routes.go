package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/opencourt/courtplay/handlers"
)

// SetupRoutes mounts the full HTTP surface on the given router.
func SetupRoutes(
	router *chi.Mux,
	playerHandler *handlers.PlayerHandler,
	sessionHandler *handlers.SessionHandler,
	roundHandler *handlers.RoundHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/players", func(r chi.Router) {
		r.Post("/", playerHandler.CreateHandler)
		r.Get("/", playerHandler.ListHandler)
		r.Get("/{playerID}", playerHandler.GetByIDHandler)
	})

	router.Route("/sessions", func(r chi.Router) {
		r.Post("/", sessionHandler.CreateHandler)
		r.Get("/", sessionHandler.ListHandler)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", sessionHandler.GetByIDHandler)

			r.Post("/players/{playerID}/check-in", sessionHandler.CheckInHandler)
			r.Get("/check-ins", sessionHandler.ListCheckedInHandler)

			r.Post("/groups", sessionHandler.CreateGroupHandler)
			r.Get("/groups", sessionHandler.ListGroupsHandler)

			r.Post("/teams", sessionHandler.FormTeamsHandler)
			r.Delete("/teams", sessionHandler.ResetTeamsHandler)
			r.Post("/complete", sessionHandler.CompleteHandler)

			r.Post("/rounds", roundHandler.GenerateHandler)
			r.Get("/rounds/next", roundHandler.PreviewHandler)
			r.Put("/games/{gameID}/result", roundHandler.RecordResultHandler)

			r.Get("/standings", roundHandler.StandingsHandler)
			r.Get("/round-robin-complete", roundHandler.RoundRobinCompleteHandler)
		})
	})

	router.Get("/ws/sessions/{sessionID}", webSocketHandler.ServeWs)
}
