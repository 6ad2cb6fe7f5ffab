package handlers

import (
	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
)

func (h *Handler) SetRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {

		// public routes here
		r.Get("/health", h.HealthHandler)

		// Secure routes
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(h.tokenAuth))
			r.Use(jwtauth.Authenticator)
			r.Use(h.RequireUser)

			r.Get("/stats/overall", h.OverallStatsHandler)

			r.Route("/games", func(r chi.Router) {
				r.Get("/", h.ListGamesHandler)
				r.Post("/", h.CreateGameHandler)

				r.Route("/{gameID}", func(r chi.Router) {
					r.Get("/trackers", h.ListTrackersHandler)
					r.Post("/trackers", h.RecordTrackerHandler)
					r.Patch("/trackers", h.ApplyTrackerHandler)
					r.Delete("/trackers", h.DeleteTrackerHandler)
					r.Get("/stats", h.GameStatsHandler)
					r.Get("/players", h.GamePlayersHandler)
				})
			})

			r.Route("/opponents", func(r chi.Router) {
				r.Get("/", h.ListOpponentsHandler)
				r.Post("/", h.CreateOpponentHandler)
				r.Get("/{opponentID}/decks", h.ListDecksHandler)
				r.Post("/{opponentID}/decks", h.CreateDeckHandler)
			})

			r.Route("/managed-trackers", func(r chi.Router) {
				r.Get("/", h.ListManagedTrackersHandler)
				r.Post("/", h.CreateManagedTrackerHandler)
				r.Patch("/{id}", h.UpdateManagedTrackerHandler)
				r.Delete("/{id}", h.DeleteManagedTrackerHandler)
			})
		})
	})
}

// InitAuth sets the HS256 key used to verify bearer tokens.
func (h *Handler) InitAuth(secret string) *jwtauth.JWTAuth {
	h.tokenAuth = jwtauth.New("HS256", []byte(secret), nil)
	return h.tokenAuth
}
