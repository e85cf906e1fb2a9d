package templates

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/flight-notify-service/internal/handlers"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterTemplateRoutes(r chi.Router) {
	r.Post("/", h.createTemplate)
	r.Get("/", h.listTemplates)
	r.Get("/{id}", h.getTemplate)
	r.Put("/{id}", h.updateTemplate)
	r.Delete("/{id}", h.deleteTemplate)
}

func (h *Handler) respondWithRepoError(w http.ResponseWriter, err error, id, code, action string) {
	if errors.Is(err, ErrTemplateNotFound) {
		handlers.RespondWithError(w, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "Template with ID "+id+" not found")
		return
	}
	log.Error().Err(err).Str("template_id", id).Msg("Template " + action + " failed")
	handlers.RespondWithError(w, http.StatusInternalServerError, code, "Failed to "+action+" template")
}

func (h *Handler) createTemplate(w http.ResponseWriter, r *http.Request) {
	var req TemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondWithValidationError(w, err)
		return
	}

	t, err := h.svc.Create(r.Context(), req)
	if err != nil {
		h.respondWithRepoError(w, err, "", "TEMPLATE_CREATE_FAILED", "create")
		return
	}

	handlers.RespondWithJSON(w, http.StatusCreated, t)
}

func (h *Handler) listTemplates(w http.ResponseWriter, r *http.Request) {
	activeOnly, _ := strconv.ParseBool(r.URL.Query().Get("active"))

	list, err := h.svc.List(r.Context(), activeOnly)
	if err != nil {
		h.respondWithRepoError(w, err, "", "TEMPLATES_LIST_FAILED", "list")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"data": list})
}

func (h *Handler) getTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	t, err := h.svc.Get(r.Context(), id)
	if err != nil {
		h.respondWithRepoError(w, err, id, "TEMPLATE_GET_FAILED", "get")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, t)
}

func (h *Handler) updateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req TemplateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondWithValidationError(w, err)
		return
	}

	t, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		h.respondWithRepoError(w, err, id, "TEMPLATE_UPDATE_FAILED", "update")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, t)
}

func (h *Handler) deleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		h.respondWithRepoError(w, err, id, "TEMPLATE_DELETE_FAILED", "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
