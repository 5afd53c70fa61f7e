package auth

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
)

// Handler exposes authentication HTTP endpoints.
type Handler struct {
	service Service
	jwtKey  []byte
}

func NewHandler(service Service, jwtKey []byte) *Handler {
	return &Handler{service: service, jwtKey: jwtKey}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Post("/api/v1/auth/login", h.login)
	router.Group(func(r chi.Router) {
		r.Use(Authenticator(h.jwtKey))
		r.Get("/api/v1/auth/status", h.status)
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		code := http.StatusUnauthorized
		if s := apperr.HTTPStatus(err); s == http.StatusForbidden {
			code = s
		}
		respond(w, code, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	actor, _ := ActorFromContext(r.Context())

	u, err := h.service.Whoami(r.Context(), actor.UserID)
	if err != nil {
		respond(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, u)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
