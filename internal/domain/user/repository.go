package user

import "context"

type Repository interface {
	Get(ctx context.Context, id string) (*User, error)
	Save(ctx context.Context, u *User) error
	// AppendOrder records an order id in the user's order history.
	AppendOrder(ctx context.Context, userID, orderID string) error
}
