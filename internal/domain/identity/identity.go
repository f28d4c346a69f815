package identity

import (
	"context"
	"errors"
)

var (
	ErrUnauthenticated = errors.New("identity: missing or invalid credentials")
	ErrForbidden       = errors.New("identity: insufficient privileges")
)

const RoleAdmin = "admin"

// Identity is the authenticated principal attached to each request by the
// session provider.
type Identity struct {
	UserID string
	Role   string
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// Provider stands in for the external identity/session service: it resolves a
// bearer token to an identity and rejects revoked sessions.
type Provider interface {
	Authenticate(ctx context.Context, token string) (Identity, error)
}
