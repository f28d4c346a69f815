package memory

import (
	"context"
	"fmt"
	"sync"

	domain "github.com/freshkart/storefront/internal/domain/catalog"
)

// ProductRepository is an in-memory catalog store that doubles as the stock
// ledger. Reserve performs the conditional decrement inside one critical
// section, which is what keeps stock from ever going negative under
// concurrent checkouts.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{
		products: make(map[string]*domain.Product),
	}
}

func (r *ProductRepository) Get(ctx context.Context, productID string) (*domain.Product, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[productID]
	if !ok {
		return nil, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}
	return p.Clone(), nil
}

func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) error {
	_ = ctx
	if product == nil || product.ID == "" {
		return fmt.Errorf("product repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.products[product.ID] = product.Clone()
	return nil
}

// Reserve atomically decrements stock when enough is available. The check and
// the decrement share the same lock hold, so interleaved reservations for the
// same product serialize here.
func (r *ProductRepository) Reserve(ctx context.Context, productID string, quantity int) (int, error) {
	_ = ctx
	if quantity <= 0 {
		return 0, domain.ErrInvalidQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return 0, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}
	if !p.IsActive {
		return 0, fmt.Errorf("product %s: %w", productID, domain.ErrInactive)
	}
	if p.Stock < quantity {
		return 0, fmt.Errorf("product %s: %w", productID, domain.ErrInsufficientStock)
	}

	p.Stock -= quantity
	return p.Stock, nil
}

// Release returns previously reserved units. Only the checkout rollback path
// calls this; it is not exposed as a restock operation.
func (r *ProductRepository) Release(ctx context.Context, productID string, quantity int) error {
	_ = ctx
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.products[productID]
	if !ok {
		return fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}

	p.Stock += quantity
	return nil
}
