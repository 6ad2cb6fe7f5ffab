package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/avvvet/tracker-services/internal/trackersvc/service"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	tokenAuth *jwtauth.JWTAuth
	port      string

	trackers *service.TrackerService
	stats    *service.StatsService
	catalog  *service.CatalogService
	games    *service.GameService
}

func NewHandler(port string, trackers *service.TrackerService, stats *service.StatsService,
	catalog *service.CatalogService, games *service.GameService) *Handler {
	return &Handler{
		port:     port,
		trackers: trackers,
		stats:    stats,
		catalog:  catalog,
		games:    games,
	}
}

type Response struct {
	Message string      `json:"message"`
	Code    int         `json:"code"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error"`
}

func (h *Handler) CreateResponse(w http.ResponseWriter, rsp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rsp.Code)

	if err := json.NewEncoder(w).Encode(rsp); err != nil {
		log.Errorf("encode response: %s", err)
	}
}

func (h *Handler) ok(w http.ResponseWriter, data interface{}) {
	h.CreateResponse(w, Response{Message: "ok", Code: http.StatusOK, Data: data})
}

// fail maps service errors to status codes. Causes of 500s are logged, not
// returned.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var inputErr *service.InputError
	switch {
	case errors.As(err, &inputErr):
		h.CreateResponse(w, Response{Message: "invalid request", Code: http.StatusBadRequest, Error: inputErr.Msg})
	case errors.Is(err, service.ErrTrackerNameTaken):
		h.CreateResponse(w, Response{Message: "invalid request", Code: http.StatusBadRequest, Error: err.Error()})
	case errors.Is(err, service.ErrNotFound):
		h.notFound(w)
	default:
		log.WithFields(log.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"path":       r.URL.Path,
		}).Errorf("request failed: %s", err)
		h.CreateResponse(w, Response{Message: "internal error", Code: http.StatusInternalServerError, Error: "internal server error"})
	}
}

func (h *Handler) notFound(w http.ResponseWriter) {
	h.CreateResponse(w, Response{Message: "not found", Code: http.StatusNotFound, Error: "not found"})
}

// decode reads a JSON body into v. An empty body leaves v at its zero value
// so field validation reports what is missing.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		h.CreateResponse(w, Response{Message: "invalid request", Code: http.StatusBadRequest, Error: "invalid JSON body"})
		return false
	}
	return true
}

// pathID parses a numeric URL parameter. Anything else is answered with 404.
func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		h.notFound(w)
		return 0, false
	}
	return id, true
}

type ctxKey struct{}

// RequireUser resolves the caller from the verified token's sub claim.
func (h *Handler) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		sub, _ := claims["sub"].(string)
		if err != nil || sub == "" {
			h.CreateResponse(w, Response{Message: "unauthorized", Code: http.StatusUnauthorized, Error: "missing subject"})
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sub)))
	})
}

func userID(r *http.Request) string {
	sub, _ := r.Context().Value(ctxKey{}).(string)
	return sub
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.CreateResponse(w, Response{
		Message: "tracker service is running at port " + h.port,
		Code:    http.StatusOK,
		Data:    nil,
	})
}
