package order

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/auth"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/user"
)

// Handler exposes the order and delivery endpoints.
type Handler struct {
	service Service
	jwtKey  []byte
}

func NewHandler(service Service, jwtKey []byte) *Handler {
	return &Handler{service: service, jwtKey: jwtKey}
}

func (h *Handler) RegisterRoutes(router *chi.Mux) {
	router.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(auth.Authenticator(h.jwtKey))

		r.Post("/", h.placeOrder)              // POST /api/v1/orders
		r.Get("/mine", h.listMyOrders)         // GET  /api/v1/orders/mine
		r.Get("/{id}", h.getOrder)             // GET  /api/v1/orders/{id}
		r.Get("/{id}/history", h.listHistory)  // GET  /api/v1/orders/{id}/history
		r.Post("/{id}/cancel", h.cancelOrder)  // POST /api/v1/orders/{id}/cancel
		r.Post("/{id}/retry", h.retryDelivery) // POST /api/v1/orders/{id}/retry

		r.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(user.RoleAdmin))
			admin.Get("/", h.listOrders)               // GET  /api/v1/orders?status=
			admin.Get("/number/{orderNumber}", h.getOrderByNumber) // GET /api/v1/orders/number/{orderNumber}
			admin.Post("/{id}/confirm", h.confirmOrder) // POST /api/v1/orders/{id}/confirm
			admin.Post("/{id}/assign", h.assignRider)   // POST /api/v1/orders/{id}/assign
			admin.Post("/{id}/reject", h.rejectOrder)   // POST /api/v1/orders/{id}/reject
		})
	})

	router.Route("/api/v1/deliveries", func(r chi.Router) {
		r.Use(auth.Authenticator(h.jwtKey))
		r.Use(auth.RequireRole(user.RoleDelivery))
		r.Get("/tasks", h.listRiderTasks)       // GET   /api/v1/deliveries/tasks
		r.Patch("/{id}/status", h.advanceDelivery) // PATCH /api/v1/deliveries/{id}/status
	})
}

func (h *Handler) placeOrder(w http.ResponseWriter, r *http.Request) {
	actor, ok := auth.ActorFromContext(r.Context())
	if !ok {
		respond(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	o, err := h.service.PlaceOrder(r.Context(), actor, req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) listMyOrders(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	orders, err := h.service.ListMyOrders(r.Context(), actor)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	o, err := h.service.GetOrder(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) getOrderByNumber(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrderByNumber(r.Context(), chi.URLParam(r, "orderNumber"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	entries, err := h.service.ListHistory(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, entries)
}

func (h *Handler) confirmOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	o, err := h.service.ConfirmOrder(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) assignRider(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req AssignRiderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	d, err := h.service.AssignRider(r.Context(), actor, chi.URLParam(r, "id"), req.RiderID)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, d)
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req CancelOrderRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	o, err := h.service.CancelOrder(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) rejectOrder(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req RejectOrderRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	o, err := h.service.RejectOrder(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) retryDelivery(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	o, err := h.service.RetryDelivery(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) listRiderTasks(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())
	tasks, err := h.service.ListRiderTasks(r.Context(), actor)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, tasks)
}

func (h *Handler) advanceDelivery(w http.ResponseWriter, r *http.Request) {
	actor, _ := auth.ActorFromContext(r.Context())

	var req AdvanceDeliveryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	d, err := h.service.AdvanceDelivery(r.Context(), actor, chi.URLParam(r, "id"), req)
	if err != nil {
		respond(w, apperr.HTTPStatus(err), map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusOK, d)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
