package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/auth"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/user"
)

// Service is the order lifecycle manager. It owns the state of an order
// and its delivery, validates every transition regardless of caller, and
// records one history entry per transition in the same transaction.
type Service interface {
	// PlaceOrder validates the cart against the live catalog, prices it
	// (applying the reseller bulk rule), decrements stock, and persists
	// the order atomically.
	PlaceOrder(ctx context.Context, actor auth.Actor, req PlaceOrderRequest) (*Order, error)

	// ConfirmOrder moves a PENDING order to CONFIRMED.
	ConfirmOrder(ctx context.Context, actor auth.Actor, orderID string) (*Order, error)

	// AssignRider attaches an ACTIVE rider. From CONFIRMED it creates the
	// delivery; from ESCALATED_TO_ADMIN it reuses the existing delivery
	// record, resets the attempt counter, and clears the escalation flag.
	AssignRider(ctx context.Context, actor auth.Actor, orderID, riderID string) (*Delivery, error)

	// AdvanceDelivery progresses a rider's own delivery through
	// PICKED_UP / IN_TRANSIT / DELIVERED / FAILED. Failures require a
	// reason and drive the attempt counter and escalation routing.
	AdvanceDelivery(ctx context.Context, actor auth.Actor, deliveryID string, req AdvanceDeliveryRequest) (*Delivery, error)

	// RetryDelivery is the customer's one recovery action after a first
	// failed attempt.
	RetryDelivery(ctx context.Context, actor auth.Actor, orderID string) (*Order, error)

	// CancelOrder cancels from PENDING, DELIVERY_FAILED, or
	// ESCALATED_TO_ADMIN. Stock is never restored.
	CancelOrder(ctx context.Context, actor auth.Actor, orderID string, req CancelOrderRequest) (*Order, error)

	// RejectOrder is the admin refusal path from PENDING or
	// ESCALATED_TO_ADMIN.
	RejectOrder(ctx context.Context, actor auth.Actor, orderID string, req RejectOrderRequest) (*Order, error)

	GetOrder(ctx context.Context, actor auth.Actor, id string) (*Order, error)
	GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error)
	ListOrders(ctx context.Context, status string) ([]*Order, error)
	ListMyOrders(ctx context.Context, actor auth.Actor) ([]*Order, error)
	ListRiderTasks(ctx context.Context, actor auth.Actor) ([]*Delivery, error)
	ListHistory(ctx context.Context, actor auth.Actor, orderID string) ([]*HistoryEntry, error)
}

type service struct {
	repo Repository
	cfg  Config
}

// NewService creates the lifecycle manager with the given business thresholds.
func NewService(repo Repository, cfg Config) Service {
	return &service{repo: repo, cfg: cfg}
}

func (s *service) PlaceOrder(ctx context.Context, actor auth.Actor, req PlaceOrderRequest) (*Order, error) {
	if actor.Role != user.RoleCustomer {
		return nil, fmt.Errorf("only customers place orders: %w", apperr.ErrUnauthorized)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("order must contain at least one item: %w", apperr.ErrValidation)
	}
	if strings.TrimSpace(req.DeliveryBarangay) == "" {
		return nil, fmt.Errorf("delivery barangay is required: %w", apperr.ErrValidation)
	}
	if len(strings.TrimSpace(req.DeliveryAddress)) < 5 {
		return nil, fmt.Errorf("delivery address is too short: %w", apperr.ErrValidation)
	}
	payment := PaymentMethod(strings.ToUpper(req.PaymentMethod))
	if payment == "" {
		payment = PaymentCOD
	}
	if payment != PaymentCOD && payment != PaymentGCash && payment != PaymentPayMaya {
		return nil, fmt.Errorf("unknown payment method %q: %w", req.PaymentMethod, apperr.ErrValidation)
	}

	cust, err := s.repo.GetCustomerByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err, "customer profile")
	}

	productIDs := make([]string, 0, len(req.Items))
	for _, ci := range req.Items {
		if ci.Quantity <= 0 {
			return nil, fmt.Errorf("quantity must be > 0 for product %s: %w", ci.ProductID, apperr.ErrValidation)
		}
		productIDs = append(productIDs, ci.ProductID)
	}

	catalog, err := s.repo.GetProductLines(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	items, total, err := s.priceCart(req.Items, catalog, cust.Type)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	o := &Order{
		ID:               uuid.New(),
		OrderNumber:      generateOrderNumber(),
		CustomerID:       cust.ID,
		Status:           StatusPending,
		DeliveryType:     DeliveryTypeFor(req.DeliveryBarangay),
		DeliveryBarangay: req.DeliveryBarangay,
		DeliveryAddress:  req.DeliveryAddress,
		DeliveryNotes:    req.DeliveryNotes,
		PaymentMethod:    payment,
		TotalAmount:      total,
		Items:            items,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, item := range items {
		item.OrderID = o.ID
	}

	entry := s.historyEntry(o.ID, StatusPending, "Order placed", actor)
	if err := s.repo.CreateOrder(ctx, o, entry); err != nil {
		return nil, err
	}
	return o, nil
}

// priceCart snapshots catalog prices onto the cart, applying the outlet
// reseller override when the water-unit total reaches the threshold.
// Pure function of (cart, catalog snapshot, customer type).
func (s *service) priceCart(cart []CartItem, catalog map[string]*ProductLine, customerType string) ([]*OrderItem, float64, error) {
	var totalWaterUnits int
	for _, ci := range cart {
		p, ok := catalog[ci.ProductID]
		if !ok {
			return nil, 0, fmt.Errorf("product %s: %w", ci.ProductID, apperr.ErrNotFound)
		}
		if !p.IsActive {
			return nil, 0, fmt.Errorf("product %s is not available: %w", p.Name, apperr.ErrValidation)
		}
		if p.Stock < ci.Quantity {
			return nil, 0, fmt.Errorf("insufficient stock for %s: %w", p.Name, apperr.ErrInsufficientStock)
		}
		if p.Type == "WATER" {
			totalWaterUnits += ci.Quantity
		}
	}

	applyDiscount := customerType == "OUTLET_RESELLER" && totalWaterUnits >= s.cfg.BulkDiscountMinUnits

	var items []*OrderItem
	var total float64
	for _, ci := range cart {
		p := catalog[ci.ProductID]
		unitPrice := p.Price
		if applyDiscount && p.Type == "WATER" {
			unitPrice = s.cfg.BulkDiscountPrice
		}
		subtotal := unitPrice * float64(ci.Quantity)
		total += subtotal

		items = append(items, &OrderItem{
			ID:          uuid.New(),
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    ci.Quantity,
			UnitPrice:   unitPrice,
			Subtotal:    subtotal,
		})
	}
	return items, total, nil
}

func (s *service) ConfirmOrder(ctx context.Context, actor auth.Actor, orderID string) (*Order, error) {
	if actor.Role != user.RoleAdmin {
		return nil, fmt.Errorf("only admins confirm orders: %w", apperr.ErrUnauthorized)
	}
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order")
	}
	if !CanTransition(o.Status, StatusConfirmed) {
		return nil, fmt.Errorf("cannot confirm order in %s: %w", o.Status, apperr.ErrInvalidState)
	}

	o.Status = StatusConfirmed
	entry := s.historyEntry(o.ID, StatusConfirmed, "Admin confirmed order", actor)
	if err := s.repo.SaveTransition(ctx, o, nil, entry); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) AssignRider(ctx context.Context, actor auth.Actor, orderID, riderID string) (*Delivery, error) {
	if actor.Role != user.RoleAdmin {
		return nil, fmt.Errorf("only admins assign riders: %w", apperr.ErrUnauthorized)
	}
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order")
	}
	rider, err := s.repo.GetRider(ctx, riderID)
	if err != nil {
		return nil, notFoundOr(err, "rider")
	}
	if rider.AccountStatus != string(user.StatusActive) {
		return nil, fmt.Errorf("rider %s is not active: %w", rider.Name, apperr.ErrRiderUnavailable)
	}
	if !CanTransition(o.Status, StatusAssigned) {
		return nil, fmt.Errorf("cannot assign rider to order in %s: %w", o.Status, apperr.ErrInvalidState)
	}

	existing, err := s.repo.GetDeliveryByOrderID(ctx, orderID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	now := time.Now()
	var d *Delivery
	var entry *HistoryEntry

	escalated := NormalizeStatus(o.Status) == StatusEscalated

	switch {
	case escalated && existing != nil:
		// Reassignment reuses the one delivery record attached to the order.
		d = existing
		d.RiderID = rider.ID
		d.Status = DeliveryAssigned
		d.AssignedAt = now
		d.PickedUpAt = nil
		d.DeliveredAt = nil
		o.DeliveryAttempts = 0
		o.EscalatedToAdmin = false
		o.EscalatedAt = nil
		entry = s.historyEntry(o.ID, StatusAssigned,
			fmt.Sprintf("Admin reassigned delivery to %s", rider.Name), actor)

	case existing != nil:
		return nil, fmt.Errorf("order already has a delivery: %w", apperr.ErrInvalidState)

	default:
		d = &Delivery{
			ID:           uuid.New(),
			OrderID:      o.ID,
			RiderID:      rider.ID,
			DeliveryType: o.DeliveryType,
			Status:       DeliveryAssigned,
			AssignedAt:   now,
			CreatedAt:    now,
		}
		entry = s.historyEntry(o.ID, StatusAssigned,
			fmt.Sprintf("Rider %s assigned to order", rider.Name), actor)
	}

	o.Status = StatusAssigned
	if err := s.repo.SaveTransition(ctx, o, d, entry); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) AdvanceDelivery(ctx context.Context, actor auth.Actor, deliveryID string, req AdvanceDeliveryRequest) (*Delivery, error) {
	if actor.Role != user.RoleDelivery {
		return nil, fmt.Errorf("only riders update deliveries: %w", apperr.ErrUnauthorized)
	}
	d, err := s.repo.GetDeliveryByID(ctx, deliveryID)
	if err != nil {
		return nil, notFoundOr(err, "delivery")
	}

	rider, err := s.repo.GetRider(ctx, d.RiderID.String())
	if err != nil {
		return nil, notFoundOr(err, "rider")
	}
	if rider.UserID.String() != actor.UserID {
		return nil, fmt.Errorf("delivery not assigned to you: %w", apperr.ErrNotFound)
	}
	if rider.AccountStatus != string(user.StatusActive) {
		return nil, fmt.Errorf("rider account is not active: %w", apperr.ErrRiderUnavailable)
	}

	next := DeliveryStatus(strings.ToUpper(req.Status))
	switch next {
	case DeliveryPickedUp, DeliveryInTransit, DeliveryDelivered, DeliveryFailed:
	default:
		return nil, fmt.Errorf("unknown delivery status %q: %w", req.Status, apperr.ErrValidation)
	}
	if !CanAdvanceDelivery(d.Status, next) {
		return nil, fmt.Errorf("cannot move delivery from %s to %s: %w", d.Status, next, apperr.ErrInvalidState)
	}
	if next == DeliveryFailed && strings.TrimSpace(req.FailureReason) == "" {
		return nil, fmt.Errorf("failure reason is required: %w", apperr.ErrValidation)
	}

	o, err := s.repo.GetOrderByID(ctx, d.OrderID.String())
	if err != nil {
		return nil, notFoundOr(err, "order")
	}

	now := time.Now()
	d.Status = next
	if req.Notes != "" {
		d.Notes = req.Notes
	}

	var entry *HistoryEntry
	switch next {
	case DeliveryPickedUp:
		d.PickedUpAt = &now
		if err := s.moveOrder(o, StatusOutForDelivery); err != nil {
			return nil, err
		}
		entry = s.historyEntry(o.ID, o.Status, "Rider picked up the order", actor)

	case DeliveryInTransit:
		if err := s.moveOrder(o, StatusOutForDelivery); err != nil {
			return nil, err
		}
		entry = s.historyEntry(o.ID, o.Status, "Delivery in transit", actor)

	case DeliveryDelivered:
		d.DeliveredAt = &now
		if err := s.moveOrder(o, StatusDelivered); err != nil {
			return nil, err
		}
		entry = s.historyEntry(o.ID, o.Status, "Order delivered", actor)

	case DeliveryFailed:
		o.DeliveryAttempts++
		o.FailureReasons = append(o.FailureReasons, req.FailureReason)

		if o.DeliveryAttempts >= s.cfg.MaxDeliveryAttempts {
			if err := s.moveOrder(o, StatusEscalated); err != nil {
				return nil, err
			}
			o.EscalatedToAdmin = true
			o.EscalatedAt = &now
			entry = s.historyEntry(o.ID, o.Status,
				fmt.Sprintf("Delivery failed %d times, escalated to admin", o.DeliveryAttempts), actor)
			entry.FailureReason = req.FailureReason
			entry.IsEscalation = true
		} else {
			if err := s.moveOrder(o, StatusDeliveryFailed); err != nil {
				return nil, err
			}
			entry = s.historyEntry(o.ID, o.Status, "Delivery attempt failed", actor)
			entry.FailureReason = req.FailureReason
		}
	}

	if err := s.repo.SaveTransition(ctx, o, d, entry); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *service) RetryDelivery(ctx context.Context, actor auth.Actor, orderID string) (*Order, error) {
	o, err := s.ownedOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if NormalizeStatus(o.Status) != StatusDeliveryFailed {
		return nil, fmt.Errorf("only failed deliveries can be retried: %w", apperr.ErrInvalidState)
	}
	if o.DeliveryAttempts >= s.cfg.MaxDeliveryAttempts {
		return nil, fmt.Errorf("maximum retry attempts reached, contact support: %w", apperr.ErrAttemptLimit)
	}

	d, err := s.repo.GetDeliveryByOrderID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "delivery")
	}

	o.Status = StatusOutForDelivery
	d.Status = DeliveryInTransit
	entry := s.historyEntry(o.ID, StatusOutForDelivery, "Customer requested delivery retry", actor)
	if err := s.repo.SaveTransition(ctx, o, d, entry); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) CancelOrder(ctx context.Context, actor auth.Actor, orderID string, req CancelOrderRequest) (*Order, error) {
	if actor.Role == user.RoleDelivery {
		return nil, fmt.Errorf("riders cannot cancel orders: %w", apperr.ErrUnauthorized)
	}
	o, err := s.ownedOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(o.Status, StatusCancelled) {
		return nil, fmt.Errorf("order cannot be cancelled in %s: %w", o.Status, apperr.ErrInvalidState)
	}

	// A live delivery record is closed out; stock is deliberately not restored.
	d, err := s.repo.GetDeliveryByOrderID(ctx, orderID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if d != nil && d.Status != DeliveryDelivered {
		d.Status = DeliveryFailed
	} else {
		d = nil
	}

	desc := "Customer cancelled order"
	if actor.Role == user.RoleAdmin {
		desc = "Admin cancelled order"
	}
	if req.Reason != "" {
		desc = fmt.Sprintf("%s. Reason: %s", desc, req.Reason)
	}

	o.Status = StatusCancelled
	entry := s.historyEntry(o.ID, StatusCancelled, desc, actor)
	if err := s.repo.SaveTransition(ctx, o, d, entry); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) RejectOrder(ctx context.Context, actor auth.Actor, orderID string, req RejectOrderRequest) (*Order, error) {
	if actor.Role != user.RoleAdmin {
		return nil, fmt.Errorf("only admins reject orders: %w", apperr.ErrUnauthorized)
	}
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order")
	}
	if !CanTransition(o.Status, StatusRejected) {
		return nil, fmt.Errorf("order cannot be rejected in %s: %w", o.Status, apperr.ErrInvalidState)
	}
	if NormalizeStatus(o.Status) == StatusEscalated && strings.TrimSpace(req.Reason) == "" {
		return nil, fmt.Errorf("rejection reason is required for escalated orders: %w", apperr.ErrValidation)
	}

	d, err := s.repo.GetDeliveryByOrderID(ctx, orderID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if d != nil && d.Status != DeliveryDelivered {
		d.Status = DeliveryFailed
	} else {
		d = nil
	}

	desc := "Admin rejected order"
	if req.Reason != "" {
		desc = fmt.Sprintf("Admin rejected order. Reason: %s", req.Reason)
	}

	o.Status = StatusRejected
	entry := s.historyEntry(o.ID, StatusRejected, desc, actor)
	if err := s.repo.SaveTransition(ctx, o, d, entry); err != nil {
		return nil, err
	}
	return o, nil
}

// ── Queries ───────────────────────────────────────────────────────────────────

func (s *service) GetOrder(ctx context.Context, actor auth.Actor, id string) (*Order, error) {
	o, err := s.ownedOrder(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if err := s.attachDelivery(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) GetOrderByNumber(ctx context.Context, orderNumber string) (*Order, error) {
	o, err := s.repo.GetOrderByNumber(ctx, orderNumber)
	if err != nil {
		return nil, notFoundOr(err, "order")
	}
	if err := s.attachDelivery(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *service) ListOrders(ctx context.Context, status string) ([]*Order, error) {
	orders, err := s.repo.ListOrders(ctx, status)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if err := s.attachDelivery(ctx, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *service) ListMyOrders(ctx context.Context, actor auth.Actor) ([]*Order, error) {
	cust, err := s.repo.GetCustomerByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err, "customer profile")
	}
	orders, err := s.repo.ListOrdersByCustomer(ctx, cust.ID.String())
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		if err := s.attachDelivery(ctx, o); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (s *service) ListRiderTasks(ctx context.Context, actor auth.Actor) ([]*Delivery, error) {
	rider, err := s.repo.GetRiderByUserID(ctx, actor.UserID)
	if err != nil {
		return nil, notFoundOr(err, "rider")
	}
	// Deactivated riders see no tasks rather than an error.
	if rider.AccountStatus != string(user.StatusActive) {
		return []*Delivery{}, nil
	}
	return s.repo.ListRiderTasks(ctx, rider.ID.String())
}

func (s *service) ListHistory(ctx context.Context, actor auth.Actor, orderID string) ([]*HistoryEntry, error) {
	if _, err := s.ownedOrder(ctx, actor, orderID); err != nil {
		return nil, err
	}
	return s.repo.ListHistory(ctx, orderID)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// ownedOrder fetches an order and, for customer actors, enforces ownership.
func (s *service) ownedOrder(ctx context.Context, actor auth.Actor, orderID string) (*Order, error) {
	o, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, notFoundOr(err, "order")
	}
	if actor.Role == user.RoleCustomer {
		cust, err := s.repo.GetCustomerByUserID(ctx, actor.UserID)
		if err != nil {
			return nil, notFoundOr(err, "customer profile")
		}
		if o.CustomerID != cust.ID {
			return nil, fmt.Errorf("order: %w", apperr.ErrNotFound)
		}
	}
	return o, nil
}

// attachDelivery hangs the order's delivery record, if one exists, off the
// order for read responses.
func (s *service) attachDelivery(ctx context.Context, o *Order) error {
	d, err := s.repo.GetDeliveryByOrderID(ctx, o.ID.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	o.Delivery = d
	return nil
}

// moveOrder applies a checked status transition, tolerating a no-op when
// the order is already in the target status.
func (s *service) moveOrder(o *Order, next OrderStatus) error {
	if NormalizeStatus(o.Status) == next {
		return nil
	}
	if !CanTransition(o.Status, next) {
		return fmt.Errorf("cannot move order from %s to %s: %w", o.Status, next, apperr.ErrInvalidState)
	}
	o.Status = next
	return nil
}

func (s *service) historyEntry(orderID uuid.UUID, status OrderStatus, description string, actor auth.Actor) *HistoryEntry {
	createdBy, _ := uuid.Parse(actor.UserID)
	return &HistoryEntry{
		ID:          uuid.New(),
		OrderID:     orderID,
		Status:      status,
		Description: description,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}
}

func notFoundOr(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", what, apperr.ErrNotFound)
	}
	return err
}
