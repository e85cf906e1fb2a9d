package messages

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/flight-notify-service/internal/auth"
	"github.com/sangkips/flight-notify-service/internal/handlers"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterMessageRoutes(r chi.Router) {
	r.Post("/", h.recordMessage)
	r.Get("/", h.listMessages)
	r.Get("/{id}", h.getMessage)
}

func (h *Handler) recordMessage(w http.ResponseWriter, r *http.Request) {
	var req RecordRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondWithValidationError(w, err)
		return
	}

	m, pending, err := h.svc.Record(r.Context(), FromRequest(req, auth.UserID(r.Context())))
	if err != nil {
		log.Error().Err(err).Msg("Failed to record message")
		handlers.RespondWithError(w, http.StatusInternalServerError, "MESSAGE_RECORD_FAILED", "Failed to record message")
		return
	}

	status := http.StatusCreated
	if pending {
		status = http.StatusAccepted
	}
	handlers.RespondWithJSON(w, status, RecordResponse{Message: m, Pending: pending})
}

func (h *Handler) listMessages(w http.ResponseWriter, r *http.Request) {
	limit := DefaultListLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			handlers.RespondWithError(w, http.StatusBadRequest, "INVALID_LIMIT", "limit must be a number")
			return
		}
		limit = n
	}

	resp, err := h.svc.List(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list messages")
		handlers.RespondWithError(w, http.StatusInternalServerError, "MESSAGES_LIST_FAILED", "Failed to list messages")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *Handler) getMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	m, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMessageNotFound) {
			handlers.RespondWithError(w, http.StatusNotFound, "MESSAGE_NOT_FOUND", "Message with ID "+id+" not found")
			return
		}
		log.Error().Err(err).Str("message_id", id).Msg("Failed to get message")
		handlers.RespondWithError(w, http.StatusInternalServerError, "MESSAGE_GET_FAILED", "Failed to get message")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, m)
}
