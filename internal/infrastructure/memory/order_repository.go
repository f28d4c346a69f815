package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	domain "github.com/freshkart/storefront/internal/domain/order"
)

type OrderRepository struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
	seq    []string
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{
		orders: make(map[string]*domain.Order),
	}
}

func (r *OrderRepository) Insert(ctx context.Context, o *domain.Order) error {
	_ = ctx
	if o == nil || o.ID == "" {
		return fmt.Errorf("order repository: id is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[o.ID]; exists {
		return domain.ErrConflict
	}

	r.orders[o.ID] = o.Clone()
	r.seq = append(r.seq, o.ID)
	return nil
}

func (r *OrderRepository) Get(ctx context.Context, id string) (*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return o.Clone(), nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*domain.Order
	for i := len(r.seq) - 1; i >= 0; i-- {
		if o, ok := r.orders[r.seq[i]]; ok && o.UserID == userID {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

func (r *OrderRepository) ListAll(ctx context.Context) ([]*domain.Order, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Order, 0, len(r.seq))
	for i := len(r.seq) - 1; i >= 0; i-- {
		if o, ok := r.orders[r.seq[i]]; ok {
			out = append(out, o.Clone())
		}
	}
	return out, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) (*domain.Order, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	o, ok := r.orders[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	o.Status = status
	o.UpdatedAt = time.Now().UTC()
	return o.Clone(), nil
}

func (r *OrderRepository) UpdateStatusByUser(ctx context.Context, userID string, status domain.Status) (int, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	count := 0
	for _, o := range r.orders {
		if o.UserID == userID {
			o.Status = status
			o.UpdatedAt = now
			count++
		}
	}
	return count, nil
}
