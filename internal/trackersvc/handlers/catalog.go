package handlers

import (
	"net/http"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
)

func (h *Handler) ListGamesHandler(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.ListGames(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, games)
}

func (h *Handler) CreateGameHandler(w http.ResponseWriter, r *http.Request) {
	var req models.CreateGameRequest
	if !h.decode(w, r, &req) {
		return
	}
	created, err := h.games.CreateGame(r.Context(), userID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.CreateResponse(w, Response{Message: "game created", Code: http.StatusCreated, Data: created})
}

func (h *Handler) ListOpponentsHandler(w http.ResponseWriter, r *http.Request) {
	opponents, err := h.catalog.ListOpponents(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, opponents)
}

func (h *Handler) CreateOpponentHandler(w http.ResponseWriter, r *http.Request) {
	var req models.OpponentRequest
	if !h.decode(w, r, &req) {
		return
	}
	opponents, err := h.catalog.CreateOpponent(r.Context(), userID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, opponents)
}

func (h *Handler) ListDecksHandler(w http.ResponseWriter, r *http.Request) {
	opponentID, ok := h.pathID(w, r, "opponentID")
	if !ok {
		return
	}
	decks, err := h.catalog.ListDecks(r.Context(), userID(r), opponentID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, decks)
}

func (h *Handler) CreateDeckHandler(w http.ResponseWriter, r *http.Request) {
	opponentID, ok := h.pathID(w, r, "opponentID")
	if !ok {
		return
	}
	var req models.DeckRequest
	if !h.decode(w, r, &req) {
		return
	}
	decks, err := h.catalog.CreateDeck(r.Context(), userID(r), opponentID, req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, decks)
}

func (h *Handler) ListManagedTrackersHandler(w http.ResponseWriter, r *http.Request) {
	trackers, err := h.catalog.ListManagedTrackers(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, trackers)
}

func (h *Handler) CreateManagedTrackerHandler(w http.ResponseWriter, r *http.Request) {
	var req models.ManagedTrackerRequest
	if !h.decode(w, r, &req) {
		return
	}
	trackers, err := h.catalog.CreateManagedTracker(r.Context(), userID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, trackers)
}

func (h *Handler) UpdateManagedTrackerHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	var req models.ManagedTrackerRequest
	if !h.decode(w, r, &req) {
		return
	}
	if err := h.catalog.UpdateManagedTracker(r.Context(), userID(r), id, req); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, nil)
}

func (h *Handler) DeleteManagedTrackerHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.catalog.DeleteManagedTracker(r.Context(), userID(r), id); err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, nil)
}
