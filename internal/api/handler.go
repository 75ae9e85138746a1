// Package api exposes the maze, tool catalog, analyzer, stored results and
// lead capture over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/vovakirdan/ascension/internal/games/ascension/core"
	"github.com/vovakirdan/ascension/internal/leads"
	"github.com/vovakirdan/ascension/internal/storage"
)

const defaultMaxBodySize = 1 << 20

// Handler serves the HTTP API. store and submitter may be nil; the
// endpoints that need them then answer 503.
type Handler struct {
	logger      *log.Logger
	store       *storage.Store
	submitter   leads.Submitter
	corsOrigin  string
	maxBodySize int64
}

// NewHandler creates an API handler.
func NewHandler(logger *log.Logger, store *storage.Store, submitter leads.Submitter, corsOrigin string) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Handler{
		logger:      logger,
		store:       store,
		submitter:   submitter,
		corsOrigin:  corsOrigin,
		maxBodySize: defaultMaxBodySize,
	}
}

// Router builds the chi router with all routes and middleware.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(h.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(20 * time.Second))
	r.Use(h.cors)

	r.Get("/healthz", h.health)

	r.Route("/v1", func(v1 chi.Router) {
		v1.Get("/levels", h.levels)
		v1.Get("/levels/{level}/maze", h.maze)
		v1.Get("/tools", h.tools)
		v1.Post("/analyze", h.analyze)
		v1.Get("/results", h.results)
		v1.Get("/results/profiles", h.profiles)
		v1.Get("/results/{sessionID}", h.result)
		v1.Post("/leads", h.submitLead)
	})

	return r
}

func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (h *Handler) levels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": core.Levels()})
}

func (h *Handler) maze(w http.ResponseWriter, r *http.Request) {
	level, err := strconv.Atoi(chi.URLParam(r, "level"))
	if err != nil || level < 1 {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "level must be a positive integer"})
		return
	}

	m := core.Generate(level)
	counts := make(map[string]int)
	for _, ct := range []core.CellType{core.CellCoin, core.CellMonster, core.CellGuide} {
		counts[ct.String()] = m.Count(ct)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"level":  core.LevelInfo(level),
		"size":   core.BoardSize,
		"start":  core.StartPosition,
		"goal":   core.GoalPosition,
		"rows":   m.Rows(),
		"cells":  m.Cells,
		"counts": counts,
	})
}

func (h *Handler) tools(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": core.Tools()})
}

func (h *Handler) analyze(w http.ResponseWriter, r *http.Request) {
	var data core.GameData
	if !h.decodeBody(w, r, &data, false) {
		return
	}
	writeJSON(w, http.StatusOK, core.Analyze(data))
}

func (h *Handler) results(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "results storage unavailable"})
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "limit must be between 1 and 500"})
			return
		}
		limit = n
	}

	items, err := h.store.RecentResults(limit)
	if err != nil {
		h.logger.Error("list results failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}
	if items == nil {
		items = []storage.SessionResult{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (h *Handler) result(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "results storage unavailable"})
		return
	}
	id := chi.URLParam(r, "sessionID")
	res, err := h.store.ResultBySession(id)
	if err != nil {
		h.logger.Error("get result failed", "session", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}
	if res == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "session not found"})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handler) profiles(w http.ResponseWriter, _ *http.Request) {
	if h.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "results storage unavailable"})
		return
	}
	counts, err := h.store.ProfileCounts()
	if err != nil {
		h.logger.Error("profile counts failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal error"})
		return
	}
	if counts == nil {
		counts = []storage.ProfileCount{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": counts})
}

func (h *Handler) submitLead(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email     string `json:"email"`
		SessionID string `json:"sessionId"`
		Profile   string `json:"profile"`
	}
	if !h.decodeBody(w, r, &req, true) {
		return
	}
	email, err := leads.NormalizeEmail(req.Email)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "email must contain @"})
		return
	}
	if h.submitter == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"error": "lead capture unavailable"})
		return
	}

	err = h.submitter.Submit(r.Context(), leads.Submission{
		Email:     email,
		SessionID: req.SessionID,
		Profile:   req.Profile,
		Source:    "api",
	})
	if err != nil {
		if errors.Is(err, leads.ErrInvalidEmail) {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "email must contain @"})
			return
		}
		h.logger.Warn("lead submission failed", "err", err)
		writeJSON(w, http.StatusBadGateway, map[string]any{"error": "lead submission failed"})
		return
	}
	writeJSON(w, http.StatusAccepted, map[string]any{"status": "accepted"})
}

func (h *Handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		h.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func (h *Handler) cors(next http.Handler) http.Handler {
	origin := h.corsOrigin
	if origin == "" {
		origin = "*"
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, v any, strict bool) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	if strict {
		dec.DisallowUnknownFields()
	}
	if err := dec.Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
