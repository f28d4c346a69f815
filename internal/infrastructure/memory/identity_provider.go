package memory

import (
	"context"
	"sync"

	domain "github.com/freshkart/storefront/internal/domain/identity"
)

// TokenProvider is an in-memory stand-in for the external identity/session
// service: a token table with revocation.
type TokenProvider struct {
	mu     sync.RWMutex
	tokens map[string]domain.Identity
}

func NewTokenProvider() *TokenProvider {
	return &TokenProvider{
		tokens: make(map[string]domain.Identity),
	}
}

func (p *TokenProvider) Register(token string, id domain.Identity) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.tokens[token] = id
}

func (p *TokenProvider) Revoke(token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.tokens, token)
}

func (p *TokenProvider) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	_ = ctx

	p.mu.RLock()
	defer p.mu.RUnlock()

	id, ok := p.tokens[token]
	if !ok {
		return domain.Identity{}, domain.ErrUnauthenticated
	}
	return id, nil
}
