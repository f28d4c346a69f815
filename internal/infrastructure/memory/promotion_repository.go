package memory

import (
	"context"
	"sync"
	"time"

	domain "github.com/freshkart/storefront/internal/domain/promotion"
)

// PromotionRepository keeps the full window history plus an explicit pointer
// to the single current window. Swap replaces that pointer while holding the
// write lock, so two concurrent activations can never leave two windows
// active.
type PromotionRepository struct {
	mu        sync.RWMutex
	windows   map[string]*domain.Window
	order     []string
	currentID string
}

func NewPromotionRepository() *PromotionRepository {
	return &PromotionRepository{
		windows: make(map[string]*domain.Window),
	}
}

func (r *PromotionRepository) Swap(ctx context.Context, w *domain.Window) error {
	_ = ctx
	if w == nil || w.ID == "" {
		return domain.ErrNotFound
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentID != "" {
		if cur, ok := r.windows[r.currentID]; ok {
			cur.IsActive = false
		}
	}

	r.windows[w.ID] = w.Clone()
	r.order = append(r.order, w.ID)
	r.currentID = w.ID
	return nil
}

func (r *PromotionRepository) Current(ctx context.Context, now time.Time) (*domain.Window, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.currentID == "" {
		return nil, domain.ErrNotFound
	}
	w, ok := r.windows[r.currentID]
	if !ok || !w.ActiveAt(now) {
		return nil, domain.ErrNotFound
	}
	return w.Clone(), nil
}

func (r *PromotionRepository) Deactivate(ctx context.Context) (int, error) {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.currentID == "" {
		return 0, nil
	}
	flipped := 0
	if w, ok := r.windows[r.currentID]; ok && w.IsActive {
		w.IsActive = false
		flipped = 1
	}
	r.currentID = ""
	return flipped, nil
}

func (r *PromotionRepository) List(ctx context.Context) ([]*domain.Window, error) {
	_ = ctx

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Window, 0, len(r.order))
	for i := len(r.order) - 1; i >= 0; i-- {
		if w, ok := r.windows[r.order[i]]; ok {
			out = append(out, w.Clone())
		}
	}
	return out, nil
}

func (r *PromotionRepository) Delete(ctx context.Context, id string) error {
	_ = ctx

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.windows[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.windows, id)
	for i, wid := range r.order {
		if wid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	if r.currentID == id {
		r.currentID = ""
	}
	return nil
}
