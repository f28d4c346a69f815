package cart

import "context"

// Repository stores one cart per user. Get returns an empty cart when the user
// has none yet; concurrent writes by the same user are last-write-wins.
type Repository interface {
	Get(ctx context.Context, userID string) (*Cart, error)
	Save(ctx context.Context, c *Cart) error
	Clear(ctx context.Context, userID string) error
}
