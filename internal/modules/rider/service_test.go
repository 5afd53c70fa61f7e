package rider

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

type memRepo struct {
	riders       map[string]*Rider
	emails       map[string]bool
	activeCounts map[string]int

	cascadeCalls []string // statuses passed to CascadeStatus
	escalateN    int      // orders CascadeStatus reports escalated
	deleted      []string
}

func newMemRepo() *memRepo {
	return &memRepo{
		riders:       map[string]*Rider{},
		emails:       map[string]bool{},
		activeCounts: map[string]int{},
	}
}

func (m *memRepo) CreateRider(_ context.Context, r *Rider, _ string) error {
	m.riders[r.ID.String()] = r
	m.emails[r.Email] = true
	return nil
}

func (m *memRepo) GetRiderByID(_ context.Context, id string) (*Rider, error) {
	r, ok := m.riders[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r, nil
}

func (m *memRepo) ListRiders(_ context.Context) ([]*Rider, error) {
	out := []*Rider{}
	for _, r := range m.riders {
		out = append(out, r)
	}
	return out, nil
}

func (m *memRepo) EmailExists(_ context.Context, email string) (bool, error) {
	return m.emails[email], nil
}

func (m *memRepo) UpdateProfile(_ context.Context, r *Rider) error {
	m.riders[r.ID.String()] = r
	return nil
}

func (m *memRepo) SetPassword(_ context.Context, _, _ string) error { return nil }

func (m *memRepo) CountActiveDeliveries(_ context.Context, riderID string) (int, error) {
	return m.activeCounts[riderID], nil
}

func (m *memRepo) CascadeStatus(_ context.Context, riderID, status, _ string) (int, error) {
	m.cascadeCalls = append(m.cascadeCalls, status)
	if r, ok := m.riders[riderID]; ok {
		r.Status = user.AccountStatus(status)
	}
	if status == string(user.StatusActive) {
		return 0, nil
	}
	return m.escalateN, nil
}

func (m *memRepo) DeleteRider(_ context.Context, riderID string) error {
	delete(m.riders, riderID)
	m.deleted = append(m.deleted, riderID)
	return nil
}

func seedRider(repo *memRepo) *Rider {
	r := &Rider{
		ID:          uuid.New(),
		UserID:      uuid.New(),
		Name:        "Berto",
		Email:       "berto@example.com",
		Phone:       "09171234567",
		VehicleType: VehicleTricycle,
		Status:      user.StatusActive,
	}
	repo.riders[r.ID.String()] = r
	repo.emails[r.Email] = true
	return r
}

func adminActor() auth.Actor {
	return auth.Actor{UserID: uuid.New().String(), Role: user.RoleAdmin}
}

func TestCreateRider(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)

	r, err := svc.CreateRider(context.Background(), CreateRiderRequest{
		Name:        "Nilo",
		Email:       "nilo@example.com",
		Phone:       "09179876543",
		Password:    "secret1",
		VehicleType: "truck",
	})
	require.NoError(t, err)

	assert.Equal(t, VehicleTruck, r.VehicleType)
	assert.Equal(t, user.StatusActive, r.Status)
	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.NotEqual(t, uuid.Nil, r.UserID)
}

func TestCreateRiderDuplicateEmail(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	seedRider(repo)

	_, err := svc.CreateRider(context.Background(), CreateRiderRequest{
		Name:     "Berto Twin",
		Email:    "berto@example.com",
		Phone:    "09170000000",
		Password: "secret1",
	})
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestDeactivationCascadesEscalations(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	r := seedRider(repo)
	repo.escalateN = 3

	status := "INACTIVE"
	result, err := svc.UpdateRider(context.Background(), adminActor(), r.ID.String(),
		UpdateRiderRequest{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, 3, result.EscalatedOrders)
	assert.Equal(t, user.StatusInactive, result.Rider.Status)
	assert.Equal(t, []string{"INACTIVE"}, repo.cascadeCalls)
}

func TestStatusUnchangedSkipsCascade(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	r := seedRider(repo)

	status := "ACTIVE"
	result, err := svc.UpdateRider(context.Background(), adminActor(), r.ID.String(),
		UpdateRiderRequest{Status: &status})
	require.NoError(t, err)

	assert.Zero(t, result.EscalatedOrders)
	assert.Empty(t, repo.cascadeCalls)
}

func TestReactivationDoesNotEscalate(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	r := seedRider(repo)
	r.Status = user.StatusSuspended
	repo.escalateN = 5

	status := "ACTIVE"
	result, err := svc.UpdateRider(context.Background(), adminActor(), r.ID.String(),
		UpdateRiderRequest{Status: &status})
	require.NoError(t, err)

	assert.Zero(t, result.EscalatedOrders)
	assert.Equal(t, user.StatusActive, result.Rider.Status)
}

func TestDeleteRiderBlockedWhileCarryingDeliveries(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	r := seedRider(repo)
	repo.activeCounts[r.ID.String()] = 2

	err := svc.DeleteRider(context.Background(), r.ID.String())
	assert.True(t, errors.Is(err, apperr.ErrConflict))
	assert.Empty(t, repo.deleted)
}

func TestDeleteIdleRider(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	r := seedRider(repo)

	require.NoError(t, svc.DeleteRider(context.Background(), r.ID.String()))
	assert.Equal(t, []string{r.ID.String()}, repo.deleted)
}

func TestUpdateRiderUnknownStatus(t *testing.T) {
	repo := newMemRepo()
	svc := NewService(repo)
	r := seedRider(repo)

	status := "RETIRED"
	_, err := svc.UpdateRider(context.Background(), adminActor(), r.ID.String(),
		UpdateRiderRequest{Status: &status})
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}
