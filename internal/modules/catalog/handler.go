package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/auth"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/user"
)

// Handler exposes catalog HTTP endpoints. Listing is open to any
// authenticated user (the ordering page needs it); writes are admin-only.
type Handler struct {
	service Service
	jwtKey  []byte
}

func NewHandler(service Service, jwtKey []byte) *Handler {
	return &Handler{service: service, jwtKey: jwtKey}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/products", func(r chi.Router) {
		r.Use(auth.Authenticator(h.jwtKey))

		r.Get("/", h.listProducts)   // GET /api/v1/products?active=true
		r.Get("/{id}", h.getProduct) // GET /api/v1/products/{id}

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRole(user.RoleAdmin))
			r.Post("/", h.createProduct)     // POST  /api/v1/products
			r.Patch("/{id}", h.updateProduct) // PATCH /api/v1/products/{id}
		})
	})
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active") == "true"
	products, err := h.service.ListProducts(r.Context(), activeOnly)
	if err != nil {
		respond(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, p)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
