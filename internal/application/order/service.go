package order

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/freshkart/storefront/internal/domain/event"
	domain "github.com/freshkart/storefront/internal/domain/order"
	"github.com/freshkart/storefront/internal/pkg/logging"
)

// Service exposes order queries and the admin status-transition operations.
type Service struct {
	orders domain.Repository
	bus    event.Publisher
}

func NewService(orders domain.Repository, bus event.Publisher) *Service {
	return &Service{
		orders: orders,
		bus:    bus,
	}
}

// ListForUser returns the caller's orders, newest first.
func (s *Service) ListForUser(ctx context.Context, userID string) ([]*domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// ListAll returns every order, newest first. Admin only; authorization is
// enforced at the transport layer.
func (s *Service) ListAll(ctx context.Context) ([]*domain.Order, error) {
	return s.orders.ListAll(ctx)
}

// UpdateStatus replaces one order's status. Transitions are permissive by
// policy; only the status value itself is validated.
func (s *Service) UpdateStatus(ctx context.Context, orderID, status string) (*domain.Order, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	o, err := s.orders.UpdateStatus(ctx, orderID, st)
	if err != nil {
		return nil, err
	}

	s.publishStatusChanged(ctx, o.ID, o.UserID, st)
	return o, nil
}

// BulkUpdateStatus applies one status to every order of a user.
func (s *Service) BulkUpdateStatus(ctx context.Context, userID, status string) (int, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return 0, err
	}

	count, err := s.orders.UpdateStatusByUser(ctx, userID, st)
	if err != nil {
		return 0, fmt.Errorf("order: bulk status update: %w", err)
	}
	if count > 0 {
		s.publishStatusChanged(ctx, "", userID, st)
	}
	return count, nil
}

func (s *Service) publishStatusChanged(ctx context.Context, orderID, userID string, st domain.Status) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, domain.NewStatusChangedEvent(orderID, userID, st)); err != nil {
		logging.FromContext(ctx).Warn("order_status_event_publish_failed",
			zap.String("order_id", orderID),
			zap.Error(err),
		)
	}
}
