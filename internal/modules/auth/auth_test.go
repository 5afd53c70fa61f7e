package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/filsammy/mariclaire-waterstation-system/internal/apperr"
	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/user"
)

var testKey = []byte("test-secret")

type memUserRepo struct {
	byEmail map[string]*user.User
}

func (m *memUserRepo) CreateCustomerAccount(_ context.Context, u *user.User, _, _ string) error {
	m.byEmail[u.Email] = u
	return nil
}

func (m *memUserRepo) GetUserByID(_ context.Context, id string) (*user.User, error) {
	for _, u := range m.byEmail {
		if u.ID.String() == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUserRepo) GetUserByEmail(_ context.Context, email string) (*user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (m *memUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

func seedUser(t *testing.T, repo *memUserRepo, status user.AccountStatus) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)

	u := &user.User{
		ID:           uuid.New(),
		Email:        "maria@example.com",
		PasswordHash: string(hash),
		Name:         "Maria Santos",
		Role:         user.RoleCustomer,
		Status:       status,
	}
	repo.byEmail[u.Email] = u
	return u
}

func TestLoginIssuesToken(t *testing.T) {
	repo := &memUserRepo{byEmail: map[string]*user.User{}}
	u := seedUser(t, repo, user.StatusActive)
	svc := NewService(repo, testKey)

	tokenString, err := svc.Login(context.Background(), "maria@example.com", "secret1")
	require.NoError(t, err)

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return testKey, nil })
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, u.ID.String(), claims.Subject)
	assert.Equal(t, "CUSTOMER", claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &memUserRepo{byEmail: map[string]*user.User{}}
	seedUser(t, repo, user.StatusActive)
	svc := NewService(repo, testKey)

	_, err := svc.Login(context.Background(), "maria@example.com", "wrong")
	assert.Error(t, err)
}

func TestLoginSuspendedAccount(t *testing.T) {
	repo := &memUserRepo{byEmail: map[string]*user.User{}}
	seedUser(t, repo, user.StatusSuspended)
	svc := NewService(repo, testKey)

	_, err := svc.Login(context.Background(), "maria@example.com", "secret1")
	assert.True(t, errors.Is(err, apperr.ErrUnauthorized))
}

func TestAuthenticatorAttachesActor(t *testing.T) {
	repo := &memUserRepo{byEmail: map[string]*user.User{}}
	u := seedUser(t, repo, user.StatusActive)
	svc := NewService(repo, testKey)

	tokenString, err := svc.Login(context.Background(), "maria@example.com", "secret1")
	require.NoError(t, err)

	var got Actor
	handler := Authenticator(testKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = ActorFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, u.ID.String(), got.UserID)
	assert.Equal(t, user.RoleCustomer, got.Role)
}

func TestAuthenticatorRejectsMissingToken(t *testing.T) {
	handler := Authenticator(testKey)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRoleForbidsOtherRoles(t *testing.T) {
	handler := RequireRole(user.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	ctx := context.WithValue(context.Background(), actorKey,
		Actor{UserID: uuid.New().String(), Role: user.RoleCustomer})
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
