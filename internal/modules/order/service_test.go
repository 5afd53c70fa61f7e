package order

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/auth"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/user"
)

// memRepo is an in-memory Repository for service tests.
type memRepo struct {
	customers    map[string]*CustomerRef // keyed by user ID
	products     map[string]*ProductLine
	riders       map[string]*RiderRef // keyed by rider ID
	orders       map[string]*Order
	deliveries   map[string]*Delivery // keyed by delivery ID
	history      map[string][]*HistoryEntry
	saveCount    int
}

func newMemRepo() *memRepo {
	return &memRepo{
		customers:  map[string]*CustomerRef{},
		products:   map[string]*ProductLine{},
		riders:     map[string]*RiderRef{},
		orders:     map[string]*Order{},
		deliveries: map[string]*Delivery{},
		history:    map[string][]*HistoryEntry{},
	}
}

func (m *memRepo) GetCustomerByUserID(_ context.Context, userID string) (*CustomerRef, error) {
	c, ok := m.customers[userID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return c, nil
}

func (m *memRepo) GetProductLines(_ context.Context, ids []string) (map[string]*ProductLine, error) {
	out := map[string]*ProductLine{}
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (m *memRepo) GetRider(_ context.Context, riderID string) (*RiderRef, error) {
	r, ok := m.riders[riderID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func (m *memRepo) GetRiderByUserID(_ context.Context, userID string) (*RiderRef, error) {
	for _, r := range m.riders {
		if r.UserID.String() == userID {
			return r, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memRepo) CreateOrder(_ context.Context, o *Order, entry *HistoryEntry) error {
	for _, item := range o.Items {
		p := m.products[item.ProductID.String()]
		if p == nil || p.Stock < item.Quantity {
			return apperr.ErrInsufficientStock
		}
	}
	for _, item := range o.Items {
		m.products[item.ProductID.String()].Stock -= item.Quantity
	}
	m.orders[o.ID.String()] = o
	m.history[o.ID.String()] = append(m.history[o.ID.String()], entry)
	return nil
}

func (m *memRepo) SaveTransition(_ context.Context, o *Order, d *Delivery, entry *HistoryEntry) error {
	m.saveCount++
	m.orders[o.ID.String()] = o
	if d != nil {
		m.deliveries[d.ID.String()] = d
	}
	m.history[o.ID.String()] = append(m.history[o.ID.String()], entry)
	return nil
}

func (m *memRepo) GetOrderByID(_ context.Context, id string) (*Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return o, nil
}

func (m *memRepo) GetOrderByNumber(_ context.Context, num string) (*Order, error) {
	for _, o := range m.orders {
		if o.OrderNumber == num {
			return o, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memRepo) ListOrders(_ context.Context, status string) ([]*Order, error) {
	out := []*Order{}
	for _, o := range m.orders {
		if status == "" || string(o.Status) == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memRepo) ListOrdersByCustomer(_ context.Context, customerID string) ([]*Order, error) {
	out := []*Order{}
	for _, o := range m.orders {
		if o.CustomerID.String() == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memRepo) GetDeliveryByID(_ context.Context, id string) (*Delivery, error) {
	d, ok := m.deliveries[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return d, nil
}

func (m *memRepo) GetDeliveryByOrderID(_ context.Context, orderID string) (*Delivery, error) {
	for _, d := range m.deliveries {
		if d.OrderID.String() == orderID {
			return d, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memRepo) ListRiderTasks(_ context.Context, riderID string) ([]*Delivery, error) {
	out := []*Delivery{}
	for _, d := range m.deliveries {
		if d.RiderID.String() != riderID {
			continue
		}
		for _, s := range ActiveDeliveryStatuses {
			if d.Status == s {
				out = append(out, d)
				break
			}
		}
	}
	return out, nil
}

func (m *memRepo) ListHistory(_ context.Context, orderID string) ([]*HistoryEntry, error) {
	return m.history[orderID], nil
}

// ── Fixtures ──────────────────────────────────────────────────────────────────

type fixture struct {
	repo    *memRepo
	svc     Service
	admin   auth.Actor
	cust    auth.Actor
	riderUA auth.Actor

	customerID uuid.UUID
	waterID    uuid.UUID
	riderID    uuid.UUID
}

func newFixture(t *testing.T, customerType string) *fixture {
	t.Helper()
	repo := newMemRepo()

	f := &fixture{
		repo:       repo,
		svc:        NewService(repo, DefaultConfig()),
		customerID: uuid.New(),
		waterID:    uuid.New(),
		riderID:    uuid.New(),
	}

	custUser := uuid.New()
	riderUser := uuid.New()

	f.admin = auth.Actor{UserID: uuid.New().String(), Role: user.RoleAdmin}
	f.cust = auth.Actor{UserID: custUser.String(), Role: user.RoleCustomer}
	f.riderUA = auth.Actor{UserID: riderUser.String(), Role: user.RoleDelivery}

	repo.customers[custUser.String()] = &CustomerRef{
		ID: f.customerID, UserID: custUser, Type: customerType,
	}
	repo.products[f.waterID.String()] = &ProductLine{
		ID: f.waterID, Name: "5-Gallon Mineral Refill", Type: "WATER",
		Price: 25.00, IsActive: true, Stock: 100,
	}
	repo.riders[f.riderID.String()] = &RiderRef{
		ID: f.riderID, UserID: riderUser, Name: "Berto", AccountStatus: "ACTIVE",
	}
	return f
}

func (f *fixture) placeOrder(t *testing.T, qty int) *Order {
	t.Helper()
	o, err := f.svc.PlaceOrder(context.Background(), f.cust, PlaceOrderRequest{
		Items:            []CartItem{{ProductID: f.waterID.String(), Quantity: qty}},
		DeliveryBarangay: "Zone 3",
		DeliveryAddress:  "Purok 2, near the chapel",
	})
	require.NoError(t, err)
	return o
}

// outForDelivery walks a fresh order to OUT_FOR_DELIVERY with an in-transit
// delivery.
func (f *fixture) outForDelivery(t *testing.T) (*Order, *Delivery) {
	t.Helper()
	ctx := context.Background()
	o := f.placeOrder(t, 2)

	_, err := f.svc.ConfirmOrder(ctx, f.admin, o.ID.String())
	require.NoError(t, err)

	d, err := f.svc.AssignRider(ctx, f.admin, o.ID.String(), f.riderID.String())
	require.NoError(t, err)

	_, err = f.svc.AdvanceDelivery(ctx, f.riderUA, d.ID.String(), AdvanceDeliveryRequest{Status: "PICKED_UP"})
	require.NoError(t, err)
	_, err = f.svc.AdvanceDelivery(ctx, f.riderUA, d.ID.String(), AdvanceDeliveryRequest{Status: "IN_TRANSIT"})
	require.NoError(t, err)

	return o, d
}

// ── Pricing ───────────────────────────────────────────────────────────────────

func TestPlaceOrderRegularCustomerPaysListPrice(t *testing.T) {
	f := newFixture(t, "REGULAR")
	o := f.placeOrder(t, 12)

	assert.Equal(t, 25.00*12, o.TotalAmount)
	assert.Equal(t, 25.00, o.Items[0].UnitPrice)
	assert.Equal(t, StatusPending, o.Status)
}

func TestPlaceOrderResellerBulkDiscount(t *testing.T) {
	f := newFixture(t, "OUTLET_RESELLER")
	o := f.placeOrder(t, 12)

	assert.Equal(t, 20.00, o.Items[0].UnitPrice)
	assert.Equal(t, 20.00*12, o.TotalAmount)
}

func TestPlaceOrderResellerBelowThresholdPaysListPrice(t *testing.T) {
	f := newFixture(t, "OUTLET_RESELLER")
	o := f.placeOrder(t, 9)

	assert.Equal(t, 25.00, o.Items[0].UnitPrice)
}

func TestPlaceOrderTotalMatchesSubtotals(t *testing.T) {
	f := newFixture(t, "REGULAR")
	container := uuid.New()
	f.repo.products[container.String()] = &ProductLine{
		ID: container, Name: "Empty 5-Gallon Container", Type: "CONTAINER",
		Price: 250.00, IsActive: true, Stock: 10,
	}

	o, err := f.svc.PlaceOrder(context.Background(), f.cust, PlaceOrderRequest{
		Items: []CartItem{
			{ProductID: f.waterID.String(), Quantity: 3},
			{ProductID: container.String(), Quantity: 1},
		},
		DeliveryBarangay: "Buray",
		DeliveryAddress:  "Sitio Ilaya, first house",
	})
	require.NoError(t, err)

	var sum float64
	for _, item := range o.Items {
		sum += item.Subtotal
	}
	assert.Equal(t, sum, o.TotalAmount)
}

func TestPlaceOrderDecrementsStock(t *testing.T) {
	f := newFixture(t, "REGULAR")
	f.placeOrder(t, 5)

	assert.Equal(t, 95, f.repo.products[f.waterID.String()].Stock)
}

func TestPlaceOrderInsufficientStock(t *testing.T) {
	f := newFixture(t, "REGULAR")
	f.repo.products[f.waterID.String()].Stock = 3

	_, err := f.svc.PlaceOrder(context.Background(), f.cust, PlaceOrderRequest{
		Items:            []CartItem{{ProductID: f.waterID.String(), Quantity: 5}},
		DeliveryBarangay: "Zone 1",
		DeliveryAddress:  "Camia Street 7",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrInsufficientStock))
	assert.Empty(t, f.repo.orders)
	assert.Equal(t, 3, f.repo.products[f.waterID.String()].Stock)
}

func TestPlaceOrderInactiveProductRejected(t *testing.T) {
	f := newFixture(t, "REGULAR")
	f.repo.products[f.waterID.String()].IsActive = false

	_, err := f.svc.PlaceOrder(context.Background(), f.cust, PlaceOrderRequest{
		Items:            []CartItem{{ProductID: f.waterID.String(), Quantity: 1}},
		DeliveryBarangay: "Zone 1",
		DeliveryAddress:  "Camia Street 7",
	})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestPlaceOrderDerivesDeliveryType(t *testing.T) {
	f := newFixture(t, "REGULAR")

	o, err := f.svc.PlaceOrder(context.Background(), f.cust, PlaceOrderRequest{
		Items:            []CartItem{{ProductID: f.waterID.String(), Quantity: 1}},
		DeliveryBarangay: "Tutubigan",
		DeliveryAddress:  "Roadside, green gate",
	})
	require.NoError(t, err)
	assert.Equal(t, DeliveryScheduled, o.DeliveryType)
}

// ── Assignment ────────────────────────────────────────────────────────────────

func TestAssignRiderCreatesDelivery(t *testing.T) {
	f := newFixture(t, "REGULAR")
	ctx := context.Background()
	o := f.placeOrder(t, 1)

	_, err := f.svc.ConfirmOrder(ctx, f.admin, o.ID.String())
	require.NoError(t, err)

	d, err := f.svc.AssignRider(ctx, f.admin, o.ID.String(), f.riderID.String())
	require.NoError(t, err)

	assert.Equal(t, DeliveryAssigned, d.Status)
	assert.Equal(t, f.riderID, d.RiderID)
	assert.Equal(t, StatusAssigned, f.repo.orders[o.ID.String()].Status)
}

func TestAssignInactiveRiderRejected(t *testing.T) {
	f := newFixture(t, "REGULAR")
	ctx := context.Background()
	o := f.placeOrder(t, 1)
	_, err := f.svc.ConfirmOrder(ctx, f.admin, o.ID.String())
	require.NoError(t, err)

	f.repo.riders[f.riderID.String()].AccountStatus = "INACTIVE"

	_, err = f.svc.AssignRider(ctx, f.admin, o.ID.String(), f.riderID.String())
	assert.True(t, errors.Is(err, apperr.ErrRiderUnavailable))
	assert.Empty(t, f.repo.deliveries)
	assert.Equal(t, StatusConfirmed, f.repo.orders[o.ID.String()].Status)
}

func TestAssignRiderFromPendingRejected(t *testing.T) {
	f := newFixture(t, "REGULAR")
	o := f.placeOrder(t, 1)

	_, err := f.svc.AssignRider(context.Background(), f.admin, o.ID.String(), f.riderID.String())
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
}

// ── Failure, retry, escalation ────────────────────────────────────────────────

func TestFailedDeliveryRecordsReasonAndAttempt(t *testing.T) {
	f := newFixture(t, "REGULAR")
	o, d := f.outForDelivery(t)

	_, err := f.svc.AdvanceDelivery(context.Background(), f.riderUA, d.ID.String(),
		AdvanceDeliveryRequest{Status: "FAILED", FailureReason: "Customer not home"})
	require.NoError(t, err)

	got := f.repo.orders[o.ID.String()]
	assert.Equal(t, StatusDeliveryFailed, got.Status)
	assert.Equal(t, 1, got.DeliveryAttempts)
	assert.Equal(t, []string{"Customer not home"}, got.FailureReasons)
	assert.False(t, got.EscalatedToAdmin)
}

func TestFailWithoutReasonRejected(t *testing.T) {
	f := newFixture(t, "REGULAR")
	_, d := f.outForDelivery(t)

	_, err := f.svc.AdvanceDelivery(context.Background(), f.riderUA, d.ID.String(),
		AdvanceDeliveryRequest{Status: "FAILED"})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestSecondFailureEscalates(t *testing.T) {
	f := newFixture(t, "REGULAR")
	ctx := context.Background()
	o, d := f.outForDelivery(t)

	_, err := f.svc.AdvanceDelivery(ctx, f.riderUA, d.ID.String(),
		AdvanceDeliveryRequest{Status: "FAILED", FailureReason: "Customer not home"})
	require.NoError(t, err)

	_, err = f.svc.RetryDelivery(ctx, f.cust, o.ID.String())
	require.NoError(t, err)
	assert.Equal(t, StatusOutForDelivery, f.repo.orders[o.ID.String()].Status)

	_, err = f.svc.AdvanceDelivery(ctx, f.riderUA, d.ID.String(),
		AdvanceDeliveryRequest{Status: "FAILED", FailureReason: "Address unreachable"})
	require.NoError(t, err)

	got := f.repo.orders[o.ID.String()]
	assert.Equal(t, StatusEscalated, got.Status)
	assert.Equal(t, 2, got.DeliveryAttempts)
	assert.True(t, got.EscalatedToAdmin)
	require.NotNil(t, got.EscalatedAt)
	assert.Equal(t, []string{"Customer not home", "Address unreachable"}, got.FailureReasons)

	entries := f.repo.history[o.ID.String()]
	last := entries[len(entries)-1]
	assert.True(t, last.IsEscalation)
	assert.Equal(t, "Address unreachable", last.FailureReason)
}

func TestRetryBlockedAtAttemptLimit(t *testing.T) {
	f := newFixture(t, "REGULAR")
	o, _ := f.outForDelivery(t)

	got := f.repo.orders[o.ID.String()]
	got.Status = StatusDeliveryFailed
	got.DeliveryAttempts = 2

	_, err := f.svc.RetryDelivery(context.Background(), f.cust, o.ID.String())
	assert.True(t, errors.Is(err, apperr.ErrAttemptLimit))
}

func TestRetryByAnotherCustomerNotFound(t *testing.T) {
	f := newFixture(t, "REGULAR")
	o, d := f.outForDelivery(t)
	_, err := f.svc.AdvanceDelivery(context.Background(), f.riderUA, d.ID.String(),
		AdvanceDeliveryRequest{Status: "FAILED", FailureReason: "Customer not home"})
	require.NoError(t, err)

	otherUser := uuid.New()
	f.repo.customers[otherUser.String()] = &CustomerRef{
		ID: uuid.New(), UserID: otherUser, Type: "REGULAR",
	}
	other := auth.Actor{UserID: otherUser.String(), Role: user.RoleCustomer}

	_, err = f.svc.RetryDelivery(context.Background(), other, o.ID.String())
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestReassignmentAfterEscalationResetsAttempts(t *testing.T) {
	f := newFixture(t, "REGULAR")
	ctx := context.Background()
	o, d := f.outForDelivery(t)

	for _, reason := range []string{"Customer not home", "Customer not home"} {
		_, err := f.svc.AdvanceDelivery(ctx, f.riderUA, d.ID.String(),
			AdvanceDeliveryRequest{Status: "FAILED", FailureReason: reason})
		require.NoError(t, err)
		if f.repo.orders[o.ID.String()].Status == StatusDeliveryFailed {
			_, err = f.svc.RetryDelivery(ctx, f.cust, o.ID.String())
			require.NoError(t, err)
		}
	}
	require.Equal(t, StatusEscalated, f.repo.orders[o.ID.String()].Status)

	newRiderUser := uuid.New()
	newRider := uuid.New()
	f.repo.riders[newRider.String()] = &RiderRef{
		ID: newRider, UserID: newRiderUser, Name: "Nilo", AccountStatus: "ACTIVE",
	}

	d2, err := f.svc.AssignRider(ctx, f.admin, o.ID.String(), newRider.String())
	require.NoError(t, err)

	got := f.repo.orders[o.ID.String()]
	assert.Equal(t, StatusAssigned, got.Status)
	assert.Equal(t, 0, got.DeliveryAttempts)
	assert.False(t, got.EscalatedToAdmin)
	assert.Nil(t, got.EscalatedAt)

	assert.Equal(t, d.ID, d2.ID) // same delivery record, new rider
	assert.Equal(t, newRider, d2.RiderID)
	assert.Equal(t, DeliveryAssigned, d2.Status)
	assert.Nil(t, d2.PickedUpAt)
}

// ── Delivery ownership ────────────────────────────────────────────────────────

func TestAdvanceDeliveryByCustomerUnauthorized(t *testing.T) {
	f := newFixture(t, "REGULAR")
	o, d := f.outForDelivery(t)

	_, err := f.svc.AdvanceDelivery(context.Background(), f.cust, d.ID.String(),
		AdvanceDeliveryRequest{Status: "DELIVERED"})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	_, err = f.svc.AdvanceDelivery(context.Background(), f.admin, d.ID.String(),
		AdvanceDeliveryRequest{Status: "FAILED", FailureReason: "made up"})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))

	got := f.repo.orders[o.ID.String()]
	assert.Equal(t, StatusOutForDelivery, got.Status)
	assert.Zero(t, got.DeliveryAttempts)
	assert.Equal(t, DeliveryInTransit, d.Status)
}

func TestAdvanceDeliveryByWrongRiderNotFound(t *testing.T) {
	f := newFixture(t, "REGULAR")
	_, d := f.outForDelivery(t)

	stranger := auth.Actor{UserID: uuid.New().String(), Role: user.RoleDelivery}
	_, err := f.svc.AdvanceDelivery(context.Background(), stranger, d.ID.String(),
		AdvanceDeliveryRequest{Status: "DELIVERED"})
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestDeliveredSetsTimestamps(t *testing.T) {
	f := newFixture(t, "REGULAR")
	o, d := f.outForDelivery(t)

	got, err := f.svc.AdvanceDelivery(context.Background(), f.riderUA, d.ID.String(),
		AdvanceDeliveryRequest{Status: "DELIVERED"})
	require.NoError(t, err)

	assert.Equal(t, DeliveryDelivered, got.Status)
	require.NotNil(t, got.DeliveredAt)
	assert.Equal(t, StatusDelivered, f.repo.orders[o.ID.String()].Status)
}

func TestRiderTasksEmptyWhenDeactivated(t *testing.T) {
	f := newFixture(t, "REGULAR")
	f.outForDelivery(t)

	f.repo.riders[f.riderID.String()].AccountStatus = "SUSPENDED"

	tasks, err := f.svc.ListRiderTasks(context.Background(), f.riderUA)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

// ── Read side ─────────────────────────────────────────────────────────────────

func TestGetOrderIncludesDelivery(t *testing.T) {
	f := newFixture(t, "REGULAR")
	o, d := f.outForDelivery(t)

	got, err := f.svc.GetOrder(context.Background(), f.cust, o.ID.String())
	require.NoError(t, err)

	require.NotNil(t, got.Delivery)
	assert.Equal(t, d.ID, got.Delivery.ID)
	assert.Equal(t, f.riderID, got.Delivery.RiderID)
}

func TestGetUnassignedOrderHasNoDelivery(t *testing.T) {
	f := newFixture(t, "REGULAR")
	o := f.placeOrder(t, 1)

	got, err := f.svc.GetOrder(context.Background(), f.cust, o.ID.String())
	require.NoError(t, err)
	assert.Nil(t, got.Delivery)
}

func TestListMyOrdersIncludesDelivery(t *testing.T) {
	f := newFixture(t, "REGULAR")
	_, d := f.outForDelivery(t)

	orders, err := f.svc.ListMyOrders(context.Background(), f.cust)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.NotNil(t, orders[0].Delivery)
	assert.Equal(t, d.ID, orders[0].Delivery.ID)
}

// ── Cancel and reject ─────────────────────────────────────────────────────────

func TestCancelPendingOrder(t *testing.T) {
	f := newFixture(t, "REGULAR")
	o := f.placeOrder(t, 4)

	got, err := f.svc.CancelOrder(context.Background(), f.cust, o.ID.String(), CancelOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, got.Status)

	// Stock stays decremented after cancellation.
	assert.Equal(t, 96, f.repo.products[f.waterID.String()].Stock)
}

func TestDoubleCancelRejectedWithoutDuplicateHistory(t *testing.T) {
	f := newFixture(t, "REGULAR")
	ctx := context.Background()
	o := f.placeOrder(t, 1)

	_, err := f.svc.CancelOrder(ctx, f.cust, o.ID.String(), CancelOrderRequest{})
	require.NoError(t, err)
	before := len(f.repo.history[o.ID.String()])
	saves := f.repo.saveCount

	_, err = f.svc.CancelOrder(ctx, f.cust, o.ID.String(), CancelOrderRequest{})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
	assert.Equal(t, before, len(f.repo.history[o.ID.String()]))
	assert.Equal(t, saves, f.repo.saveCount) // rejected repeat writes nothing
}

func TestCancelOutForDeliveryRejected(t *testing.T) {
	f := newFixture(t, "REGULAR")
	o, _ := f.outForDelivery(t)

	_, err := f.svc.CancelOrder(context.Background(), f.cust, o.ID.String(), CancelOrderRequest{})
	assert.True(t, errors.Is(err, apperr.ErrInvalidState))
}

func TestRejectEscalatedOrderRequiresReason(t *testing.T) {
	f := newFixture(t, "REGULAR")
	ctx := context.Background()
	o, d := f.outForDelivery(t)

	for range [2]struct{}{} {
		_, err := f.svc.AdvanceDelivery(ctx, f.riderUA, d.ID.String(),
			AdvanceDeliveryRequest{Status: "FAILED", FailureReason: "Customer not home"})
		require.NoError(t, err)
		if f.repo.orders[o.ID.String()].Status == StatusDeliveryFailed {
			_, err = f.svc.RetryDelivery(ctx, f.cust, o.ID.String())
			require.NoError(t, err)
		}
	}
	require.Equal(t, StatusEscalated, f.repo.orders[o.ID.String()].Status)

	_, err := f.svc.RejectOrder(ctx, f.admin, o.ID.String(), RejectOrderRequest{})
	assert.True(t, errors.Is(err, apperr.ErrValidation))

	got, err := f.svc.RejectOrder(ctx, f.admin, o.ID.String(),
		RejectOrderRequest{Reason: "Address outside service area"})
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, got.Status)
}

func TestRejectPendingOrderWithoutReason(t *testing.T) {
	f := newFixture(t, "REGULAR")
	o := f.placeOrder(t, 1)

	got, err := f.svc.RejectOrder(context.Background(), f.admin, o.ID.String(), RejectOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, got.Status)
}

func TestCancelByRiderUnauthorized(t *testing.T) {
	f := newFixture(t, "REGULAR")
	o := f.placeOrder(t, 1)

	_, err := f.svc.CancelOrder(context.Background(), f.riderUA, o.ID.String(), CancelOrderRequest{})
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}
