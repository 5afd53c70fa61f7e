package inventory

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/auth"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/user"
)

// Handler exposes admin inventory endpoints.
type Handler struct {
	service Service
	jwtKey  []byte
}

func NewHandler(service Service, jwtKey []byte) *Handler {
	return &Handler{service: service, jwtKey: jwtKey}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/admin/inventory", func(r chi.Router) {
		r.Use(auth.Authenticator(h.jwtKey))
		r.Use(auth.RequireRole(user.RoleAdmin))
		r.Get("/", h.listStock)                       // GET   /api/v1/admin/inventory
		r.Get("/low", h.listLowStock)                 // GET   /api/v1/admin/inventory/low
		r.Get("/{product_id}", h.getStock)            // GET   /api/v1/admin/inventory/{product_id}
		r.Post("/{product_id}/adjust", h.adjustStock) // POST  /api/v1/admin/inventory/{product_id}/adjust
		r.Patch("/{product_id}/min", h.setMinStock)   // PATCH /api/v1/admin/inventory/{product_id}/min
	})
}

func (h *Handler) listStock(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListStock(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, records)
}

func (h *Handler) listLowStock(w http.ResponseWriter, r *http.Request) {
	records, err := h.service.ListLowStock(r.Context())
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, records)
}

func (h *Handler) getStock(w http.ResponseWriter, r *http.Request) {
	rec, err := h.service.GetStock(r.Context(), chi.URLParam(r, "product_id"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rec)
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request) {
	var req AdjustStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rec, err := h.service.AdjustStock(r.Context(), chi.URLParam(r, "product_id"), req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rec)
}

func (h *Handler) setMinStock(w http.ResponseWriter, r *http.Request) {
	var req SetMinStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	rec, err := h.service.SetMinStock(r.Context(), chi.URLParam(r, "product_id"), req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, rec)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
