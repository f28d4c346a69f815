package catalog

import "context"

// Repository provides read access to the product catalog. Writes other than
// stock reservations belong to the (out-of-scope) catalog CRUD surface.
type Repository interface {
	Get(ctx context.Context, productID string) (*Product, error)
	Save(ctx context.Context, product *Product) error
}

// Ledger owns the per-product stock count.
//
// Reserve is an atomic conditional decrement: stock is checked and decremented
// inside a single critical section so that concurrent checkouts can never
// drive it below zero. It returns the remaining stock on success.
//
// Release returns previously reserved units and exists solely so a failed
// multi-line checkout can compensate reservations made earlier in the same
// request. It is not a general restock operation.
type Ledger interface {
	Reserve(ctx context.Context, productID string, quantity int) (int, error)
	Release(ctx context.Context, productID string, quantity int) error
}
