package directory

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/medmatch/internal/http/middleware"
	"github.com/wolfman30/medmatch/pkg/logging"
)

// TokenIssuer signs owner tokens for a doctor id.
type TokenIssuer interface {
	Issue(doctorID string) (string, error)
}

// Handler handles HTTP requests for doctor profiles and the owner dashboard.
type Handler struct {
	store  *Store
	bios   BioWriter
	tokens TokenIssuer
	newID  IDGenerator
	logger *logging.Logger
}

// NewHandler creates a directory handler. bios may be nil, in which case the
// bio helper endpoint reports 503.
func NewHandler(store *Store, bios BioWriter, tokens TokenIssuer, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:  store,
		bios:   bios,
		tokens: tokens,
		logger: logger,
	}
}

// RegisterResponse is returned after a successful registration.
type RegisterResponse struct {
	Doctor Doctor `json:"doctor"`
	Token  string `json:"token"`
}

// ListDoctors handles GET /doctors
func (h *Handler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"doctors": h.store.List(r.Context()),
	})
}

// GetDoctor handles GET /doctors/{doctorID}
func (h *Handler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Get(r.Context(), chi.URLParam(r, "doctorID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// Register handles POST /doctors
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	doc := NewDoctor(req, h.newID)
	if err := h.store.Register(r.Context(), doc); err != nil {
		h.logger.Error("failed to register doctor", "error", err)
		writeError(w, http.StatusConflict, err.Error())
		return
	}

	token, err := h.issue(doc.ID)
	if err != nil {
		h.logger.Warn("registered doctor without owner token", "doctor_id", doc.ID, "error", err)
	}
	h.logger.Info("doctor registered", "doctor_id", doc.ID, "specialty", doc.Specialty)
	writeJSON(w, http.StatusCreated, RegisterResponse{Doctor: doc, Token: token})
}

// GenerateBio handles POST /doctors/bio
func (h *Handler) GenerateBio(w http.ResponseWriter, r *http.Request) {
	if h.bios == nil {
		writeError(w, http.StatusServiceUnavailable, "bio helper unavailable")
		return
	}
	var req BioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"bio": h.bios.GenerateBio(r.Context(), req),
	})
}

// Book handles POST /doctors/{doctorID}/bookings
func (h *Handler) Book(w http.ResponseWriter, r *http.Request) {
	doc, err := h.store.Get(r.Context(), chi.URLParam(r, "doctorID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, NewBookingIntent(doc))
}

// DemoLogin handles POST /session/demo. It signs in as the first doctor in the
// directory so the dashboard can be explored without registering.
func (h *Handler) DemoLogin(w http.ResponseWriter, r *http.Request) {
	doctors := h.store.List(r.Context())
	if len(doctors) == 0 {
		writeError(w, http.StatusNotFound, "no doctors registered")
		return
	}
	token, err := h.issue(doctors[0].ID)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, RegisterResponse{Doctor: doctors[0], Token: token})
}

// Me handles GET /me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.OwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner")
		return
	}
	doc, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

// UpdateProfile handles PATCH /me
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.OwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner")
		return
	}
	var patch ProfilePatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := patch.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	doc, updated := h.store.UpdateProfile(r.Context(), id, patch)
	if !updated {
		writeError(w, http.StatusNotFound, ErrDoctorNotFound.Error())
		return
	}
	h.logger.Info("doctor profile updated", "doctor_id", id)
	writeJSON(w, http.StatusOK, doc)
}

// ToggleCalendarSync handles POST /me/calendar-sync
func (h *Handler) ToggleCalendarSync(w http.ResponseWriter, r *http.Request) {
	h.modify(w, r, ToggleCalendarSync)
}

// AddAvailability handles POST /me/availability
func (h *Handler) AddAvailability(w http.ResponseWriter, r *http.Request) {
	var slot AvailabilitySlot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h.modify(w, r, AddSlot(slot))
}

// Schedule handles GET /me/schedule
func (h *Handler) Schedule(w http.ResponseWriter, r *http.Request) {
	id, ok := middleware.OwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner")
		return
	}
	doc, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"calendarSynced": doc.CalendarSynced,
		"days":           WeeklySchedule(doc),
	})
}

func (h *Handler) modify(w http.ResponseWriter, r *http.Request, fn func(Doctor) (ProfilePatch, error)) {
	id, ok := middleware.OwnerIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing owner")
		return
	}
	doc, err := h.store.Modify(r.Context(), id, fn)
	switch {
	case errors.Is(err, ErrDoctorNotFound):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (h *Handler) issue(doctorID string) (string, error) {
	if h.tokens == nil {
		return "", middleware.ErrOwnerTokenDisabled
	}
	return h.tokens.Issue(doctorID)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
