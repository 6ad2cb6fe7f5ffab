package handlers

import (
	"net/http"

	"github.com/avvvet/tracker-services/internal/trackersvc/models"
)

func (h *Handler) ListTrackersHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.pathID(w, r, "gameID")
	if !ok {
		return
	}
	trackers, err := h.trackers.List(r.Context(), gameID, userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, trackers)
}

func (h *Handler) RecordTrackerHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.pathID(w, r, "gameID")
	if !ok {
		return
	}
	var req models.RecordTrackerRequest
	if !h.decode(w, r, &req) {
		return
	}
	trackers, err := h.trackers.Record(r.Context(), gameID, userID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, trackers)
}

func (h *Handler) ApplyTrackerHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.pathID(w, r, "gameID")
	if !ok {
		return
	}
	var req models.ApplyTrackerRequest
	if !h.decode(w, r, &req) {
		return
	}
	trackers, err := h.trackers.Apply(r.Context(), gameID, userID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, trackers)
}

func (h *Handler) DeleteTrackerHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.pathID(w, r, "gameID")
	if !ok {
		return
	}
	var req models.DeleteTrackerRequest
	if !h.decode(w, r, &req) {
		return
	}
	trackers, err := h.trackers.Delete(r.Context(), gameID, userID(r), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, trackers)
}

func (h *Handler) OverallStatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.OverallStats(r.Context(), userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, stats)
}

func (h *Handler) GameStatsHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.pathID(w, r, "gameID")
	if !ok {
		return
	}
	stats, err := h.stats.GameStats(r.Context(), gameID, userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, stats)
}

func (h *Handler) GamePlayersHandler(w http.ResponseWriter, r *http.Request) {
	gameID, ok := h.pathID(w, r, "gameID")
	if !ok {
		return
	}
	seats, err := h.stats.GamePlayers(r.Context(), gameID, userID(r))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.ok(w, seats)
}
