package order

import "context"

type Repository interface {
	// Insert stores a new order; the stored record's lines are immutable.
	Insert(ctx context.Context, o *Order) error
	Get(ctx context.Context, id string) (*Order, error)
	// ListByUser returns the user's orders, newest first.
	ListByUser(ctx context.Context, userID string) ([]*Order, error)
	// ListAll returns every order, newest first.
	ListAll(ctx context.Context) ([]*Order, error)
	// UpdateStatus replaces the status of one order and returns the updated
	// record.
	UpdateStatus(ctx context.Context, id string, status Status) (*Order, error)
	// UpdateStatusByUser applies one status to every order of a user and
	// returns how many orders were touched.
	UpdateStatusByUser(ctx context.Context, userID string, status Status) (int, error)
}
