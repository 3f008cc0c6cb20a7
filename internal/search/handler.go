package search

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/wolfman30/medmatch/internal/session"
	"github.com/wolfman30/medmatch/pkg/logging"
)

// SessionHeader carries the visitor's session id in both directions.
const SessionHeader = "X-Session-ID"

// Handler exposes the search service over HTTP.
type Handler struct {
	service *Service
	logger  *logging.Logger
}

// NewHandler creates a search handler.
func NewHandler(service *Service, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{service: service, logger: logger}
}

type queryRequest struct {
	Query string `json:"query"`
}

type modeRequest struct {
	Mode string `json:"mode"`
}

// Current handles GET /search
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.CurrentView(r.Context(), r.Header.Get(SessionHeader))
	h.respond(w, page, err)
}

// FindSpecialist handles POST /search/specialists
func (h *Handler) FindSpecialist(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	page, err := h.service.FindSpecialist(r.Context(), r.Header.Get(SessionHeader), req.Query)
	h.respond(w, page, err)
}

// ClearSearch handles DELETE /search/specialists
func (h *Handler) ClearSearch(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.ClearSearch(r.Context(), r.Header.Get(SessionHeader))
	h.respond(w, page, err)
}

// AskClinical handles POST /search/clinical
func (h *Handler) AskClinical(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	page, err := h.service.AskClinical(r.Context(), r.Header.Get(SessionHeader), req.Query)
	h.respond(w, page, err)
}

// SetMode handles PUT /search/mode
func (h *Handler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req modeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	mode, err := session.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	page, err := h.service.SetMode(r.Context(), r.Header.Get(SessionHeader), mode)
	h.respond(w, page, err)
}

func (h *Handler) respond(w http.ResponseWriter, page Page, err error) {
	switch {
	case errors.Is(err, ErrEmptyQuery), errors.Is(err, session.ErrUnknownMode):
		writeError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		h.logger.Error("search request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "search unavailable")
		return
	}
	w.Header().Set(SessionHeader, page.SessionID)
	writeJSON(w, http.StatusOK, page)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
