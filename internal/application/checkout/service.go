package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	domcart "github.com/freshkart/storefront/internal/domain/cart"
	domcatalog "github.com/freshkart/storefront/internal/domain/catalog"
	"github.com/freshkart/storefront/internal/domain/event"
	domorder "github.com/freshkart/storefront/internal/domain/order"
	"github.com/freshkart/storefront/internal/domain/pricing"
	dompromo "github.com/freshkart/storefront/internal/domain/promotion"
	domuser "github.com/freshkart/storefront/internal/domain/user"
	"github.com/freshkart/storefront/internal/infrastructure/id"
	"github.com/freshkart/storefront/internal/pkg/logging"
)

var (
	ErrNoItems           = errors.New("checkout: at least one item is required")
	ErrInvalidQuantity   = errors.New("checkout: item quantity must be at least one")
	ErrIncompleteAddress = errors.New("checkout: shipping address is incomplete")
	ErrMissingPhone      = errors.New("checkout: a phone number is required")
)

// Service is the order placement engine. It re-validates the submitted items,
// resolves the effective price per line, reserves stock atomically per line,
// and persists the order. Any line failure aborts the whole placement and
// releases every reservation made earlier in the same request.
type Service struct {
	products domcatalog.Repository
	ledger   domcatalog.Ledger
	carts    domcart.Repository
	users    domuser.Repository
	orders   domorder.Repository
	windows  dompromo.Repository
	ids      id.Generator
	bus      event.Publisher
	now      func() time.Time
}

func NewService(
	products domcatalog.Repository,
	ledger domcatalog.Ledger,
	carts domcart.Repository,
	users domuser.Repository,
	orders domorder.Repository,
	windows dompromo.Repository,
	ids id.Generator,
	bus event.Publisher,
) *Service {
	return &Service{
		products: products,
		ledger:   ledger,
		carts:    carts,
		users:    users,
		orders:   orders,
		windows:  windows,
		ids:      ids,
		bus:      bus,
		now:      time.Now,
	}
}

type Item struct {
	ProductID string
	Quantity  int
}

type PlaceOrderInput struct {
	UserID          string
	Items           []Item
	ShippingAddress domorder.Address
	PaymentMethod   string
}

type reservation struct {
	productID string
	quantity  int
}

// PlaceOrder converts the submitted items into a persisted order.
//
// Preconditions are checked before any stock is touched. Lines are processed
// in submission order; the promotion window is fetched once per line so a
// window expiring mid-checkout stops discounting the remaining lines. The
// cart is cleared only after the order is durably stored.
func (s *Service) PlaceOrder(ctx context.Context, in PlaceOrderInput) (*domorder.Order, error) {
	logger := logging.FromContext(ctx).With(
		zap.String("component", "checkout_service"),
		zap.String("user_id", in.UserID),
	)

	if len(in.Items) == 0 {
		return nil, ErrNoItems
	}
	for _, it := range in.Items {
		if it.Quantity < 1 {
			return nil, fmt.Errorf("%w: product %s", ErrInvalidQuantity, it.ProductID)
		}
	}
	if missing, ok := in.ShippingAddress.Complete(); !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrIncompleteAddress, missing)
	}
	method, err := domorder.ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return nil, err
	}

	u, err := s.users.Get(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if u.Phone == "" {
		return nil, ErrMissingPhone
	}

	addr := in.ShippingAddress
	if addr.Country == "" {
		addr.Country = domorder.DefaultCountry
	}
	region := addr.Country
	currency, _ := pricing.CurrencyFor(region)
	now := s.now()

	lines := make([]domorder.Line, 0, len(in.Items))
	reserved := make([]reservation, 0, len(in.Items))

	for _, it := range in.Items {
		p, err := s.products.Get(ctx, it.ProductID)
		if err != nil {
			s.rollback(ctx, reserved, logger)
			return nil, err
		}
		if !p.IsActive {
			s.rollback(ctx, reserved, logger)
			return nil, fmt.Errorf("product %s: %w", p.ID, domcatalog.ErrInactive)
		}

		// Fetched per line, not per order, so a window expiring mid-checkout
		// is honoured for the lines that follow.
		window, err := s.windows.Current(ctx, s.now())
		if err != nil && !errors.Is(err, dompromo.ErrNotFound) {
			s.rollback(ctx, reserved, logger)
			return nil, fmt.Errorf("checkout: promotion lookup: %w", err)
		}

		quote := pricing.Resolve(p, region, window, s.now())

		if _, err := s.ledger.Reserve(ctx, p.ID, it.Quantity); err != nil {
			s.rollback(ctx, reserved, logger)
			return nil, err
		}
		reserved = append(reserved, reservation{productID: p.ID, quantity: it.Quantity})

		lines = append(lines, domorder.Line{
			ProductID:       p.ID,
			ProductName:     p.Name,
			Quantity:        it.Quantity,
			UnitPrice:       quote.UnitPrice,
			OriginalPrice:   quote.OriginalPrice,
			DiscountPercent: quote.DiscountPercent,
		})
	}

	o, err := domorder.New(s.ids.NewID(), in.UserID, lines, addr, method, currency, now)
	if err != nil {
		s.rollback(ctx, reserved, logger)
		return nil, err
	}

	if err := s.orders.Insert(ctx, o); err != nil {
		s.rollback(ctx, reserved, logger)
		return nil, fmt.Errorf("checkout: persist order: %w", err)
	}

	// The order is durable from here on; follow-up failures are logged, not
	// surfaced, and reservations stay committed.
	if err := s.users.AppendOrder(ctx, in.UserID, o.ID); err != nil {
		logger.Warn("order_history_append_failed", zap.String("order_id", o.ID), zap.Error(err))
	}
	if err := s.carts.Clear(ctx, in.UserID); err != nil {
		logger.Warn("cart_clear_failed", zap.String("order_id", o.ID), zap.Error(err))
	}
	if s.bus != nil {
		if err := s.bus.Publish(ctx, domorder.NewPlacedEvent(o)); err != nil {
			logger.Warn("order_placed_event_publish_failed", zap.String("order_id", o.ID), zap.Error(err))
		}
	}

	logger.Info("order_placed",
		zap.String("order_id", o.ID),
		zap.Int("lines", len(o.Lines)),
		zap.String("total_amount", o.TotalAmount.StringFixed(2)),
		zap.String("total_savings", o.TotalSavings.StringFixed(2)),
	)
	return o, nil
}

// rollback releases reservations committed earlier in a failed placement, in
// reverse order.
func (s *Service) rollback(ctx context.Context, reserved []reservation, logger *zap.Logger) {
	for i := len(reserved) - 1; i >= 0; i-- {
		res := reserved[i]
		if err := s.ledger.Release(ctx, res.productID, res.quantity); err != nil {
			logger.Error("reservation_release_failed",
				zap.String("product_id", res.productID),
				zap.Int("quantity", res.quantity),
				zap.Error(err),
			)
		}
	}
}
