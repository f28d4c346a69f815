package httpapi

import (
	"context"
	"net/http"
	"strings"

	domidentity "github.com/freshkart/storefront/internal/domain/identity"
)

type identityKey struct{}

// IdentityFrom returns the authenticated identity attached by RequireUser.
func IdentityFrom(ctx context.Context) (domidentity.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(domidentity.Identity)
	return id, ok
}

// Auth guards routes with the external identity provider. Tokens come from
// the Authorization header (Bearer scheme) or the legacy "token" cookie.
type Auth struct {
	provider domidentity.Provider
}

func NewAuth(provider domidentity.Provider) *Auth {
	return &Auth{provider: provider}
}

func (a *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeError(w, http.StatusUnauthorized, domidentity.ErrUnauthenticated)
			return
		}
		id, err := a.provider.Authenticate(r.Context(), token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, domidentity.ErrUnauthenticated)
			return
		}
		ctx := context.WithValue(r.Context(), identityKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, _ := IdentityFrom(r.Context())
		if !id.IsAdmin() {
			writeError(w, http.StatusForbidden, domidentity.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func bearerToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if after, ok := strings.CutPrefix(h, "Bearer "); ok {
			return after
		}
	}
	if c, err := r.Cookie("token"); err == nil {
		return c.Value
	}
	return ""
}
