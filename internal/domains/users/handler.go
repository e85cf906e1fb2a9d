package users

import (
	"errors"
	"net/http"

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

func (h *Handler) RegisterUserRoutes(r chi.Router) {
	r.Post("/", h.createUser)
	r.Get("/", h.listUsers)
	r.Get("/{id}", h.getUser)
	r.Put("/{id}", h.updateUser)
	r.Delete("/{id}", h.deleteUser)
}

func respondWithError(w http.ResponseWriter, err error, code, action string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		handlers.RespondWithError(w, http.StatusNotFound, "USER_NOT_FOUND", "User not found")
	case errors.Is(err, ErrEmailTaken):
		handlers.RespondWithError(w, http.StatusConflict, "EMAIL_TAKEN", "A user with this email already exists")
	default:
		log.Error().Err(err).Msg("User " + action + " failed")
		handlers.RespondWithError(w, http.StatusInternalServerError, code, "Failed to "+action+" user")
	}
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondWithValidationError(w, err)
		return
	}

	u, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respondWithError(w, err, "USER_CREATE_FAILED", "create")
		return
	}

	handlers.RespondWithJSON(w, http.StatusCreated, u)
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.svc.List(r.Context())
	if err != nil {
		respondWithError(w, err, "USERS_LIST_FAILED", "list")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, err, "USER_GET_FAILED", "get")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, u)
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondWithValidationError(w, err)
		return
	}

	u, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondWithError(w, err, "USER_UPDATE_FAILED", "update")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, u)
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithError(w, err, "USER_DELETE_FAILED", "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
