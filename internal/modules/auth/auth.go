package auth

import (
	"context"

	"github.com/filsammy/mariclaire-waterstation-system/internal/modules/user"
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login verifies credentials and returns a signed token.
	Login(ctx context.Context, email, password string) (string, error)

	// Whoami resolves the user behind an authenticated actor, used by clients
	// to detect mid-session account deactivation.
	Whoami(ctx context.Context, userID string) (*user.User, error)
}

// Actor is the authenticated identity attached to a request.
type Actor struct {
	UserID string
	Role   user.Role
}
