package rider

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/auth"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/user"
)

// Handler exposes admin rider-management endpoints.
type Handler struct {
	service Service
	jwtKey  []byte
}

func NewHandler(service Service, jwtKey []byte) *Handler {
	return &Handler{service: service, jwtKey: jwtKey}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/admin/riders", func(r chi.Router) {
		r.Use(auth.Authenticator(h.jwtKey))
		r.Use(auth.RequireRole(user.RoleAdmin))
		r.Post("/", h.createRider)      // POST   /api/v1/admin/riders
		r.Get("/", h.listRiders)        // GET    /api/v1/admin/riders
		r.Get("/{id}", h.getRider)      // GET    /api/v1/admin/riders/{id}
		r.Patch("/{id}", h.updateRider) // PATCH  /api/v1/admin/riders/{id}
		r.Delete("/{id}", h.deleteRider) // DELETE /api/v1/admin/riders/{id}
	})
}

func (h *Handler) createRider(w http.ResponseWriter, r *http.Request) {
	var req CreateRiderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rd, err := h.service.CreateRider(r.Context(), req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, rd)
}

func (h *Handler) listRiders(w http.ResponseWriter, r *http.Request) {
	riders, err := h.service.ListRiders(r.Context())
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, riders)
}

func (h *Handler) getRider(w http.ResponseWriter, r *http.Request) {
	rd, err := h.service.GetRider(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rd)
}

func (h *Handler) updateRider(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req UpdateRiderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.service.UpdateRider(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, result)
}

func (h *Handler) deleteRider(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteRider(r.Context(), chi.URLParam(r, "id")); err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusNoContent, nil)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if body == nil {
		w.WriteHeader(status)
		return
	}
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
