package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/flight-notify-service/internal/handlers"
)

type Handler struct {
	svc            *Service
	maxUploadBytes int64
}

func NewHandler(svc *Service, maxUploadBytes int64) *Handler {
	return &Handler{svc: svc, maxUploadBytes: maxUploadBytes}
}

func (h *Handler) RegisterRouteRoutes(r chi.Router) {
	r.Post("/", h.createRoute)
	r.Get("/", h.listRoutes)
	r.Post("/import", h.importRoutes)
	r.Get("/lookup/{flightNumber}", h.lookupRoute)
	r.Get("/{id}", h.getRoute)
	r.Put("/{id}", h.updateRoute)
	r.Delete("/{id}", h.deleteRoute)
}

func respondWithError(w http.ResponseWriter, err error, code, action string) {
	var verr *handlers.ValidationError
	switch {
	case errors.Is(err, ErrRouteNotFound):
		handlers.RespondWithError(w, http.StatusNotFound, "ROUTE_NOT_FOUND", "Route not found")
	case errors.As(err, &verr):
		handlers.RespondWithValidationError(w, err)
	default:
		log.Error().Err(err).Msg("Route " + action + " failed")
		handlers.RespondWithError(w, http.StatusInternalServerError, code, "Failed to "+action+" route")
	}
}

func (h *Handler) createRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondWithValidationError(w, err)
		return
	}

	route, err := h.svc.Create(r.Context(), req)
	if err != nil {
		respondWithError(w, err, "ROUTE_CREATE_FAILED", "create")
		return
	}

	handlers.RespondWithJSON(w, http.StatusCreated, route)
}

func (h *Handler) listRoutes(w http.ResponseWriter, r *http.Request) {
	list, err := h.svc.List(r.Context())
	if err != nil {
		respondWithError(w, err, "ROUTES_LIST_FAILED", "list")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, map[string]interface{}{"data": list})
}

func (h *Handler) getRoute(w http.ResponseWriter, r *http.Request) {
	route, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, err, "ROUTE_GET_FAILED", "get")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, route)
}

func (h *Handler) lookupRoute(w http.ResponseWriter, r *http.Request) {
	route, err := h.svc.Lookup(r.Context(), chi.URLParam(r, "flightNumber"))
	if err != nil {
		respondWithError(w, err, "ROUTE_LOOKUP_FAILED", "look up")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, route)
}

func (h *Handler) updateRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondWithValidationError(w, err)
		return
	}

	route, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondWithError(w, err, "ROUTE_UPDATE_FAILED", "update")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, route)
}

func (h *Handler) deleteRoute(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondWithError(w, err, "ROUTE_DELETE_FAILED", "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) importRoutes(w http.ResponseWriter, r *http.Request) {
	if h.maxUploadBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		handlers.RespondWithError(w, http.StatusBadRequest, "MISSING_FILE", "A .csv or .xlsx file is required in field 'file'")
		return
	}
	defer file.Close()

	result, err := h.svc.Import(r.Context(), header.Filename, file)
	if err != nil {
		if errors.Is(err, ErrInvalidFile) {
			handlers.RespondWithError(w, http.StatusBadRequest, "INVALID_ROUTE_FILE", err.Error())
			return
		}
		respondWithError(w, err, "ROUTE_IMPORT_FAILED", "import")
		return
	}

	handlers.RespondWithJSON(w, http.StatusOK, result)
}
