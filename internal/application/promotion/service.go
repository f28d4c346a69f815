package promotion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	domcatalog "github.com/freshkart/storefront/internal/domain/catalog"
	"github.com/freshkart/storefront/internal/domain/event"
	dompromo "github.com/freshkart/storefront/internal/domain/promotion"
	"github.com/freshkart/storefront/internal/infrastructure/id"
	"github.com/freshkart/storefront/internal/pkg/logging"
)

// Service manages the single globally-active promotion window.
type Service struct {
	windows  dompromo.Repository
	products domcatalog.Repository
	ids      id.Generator
	bus      event.Publisher
	now      func() time.Time
}

func NewService(windows dompromo.Repository, products domcatalog.Repository, ids id.Generator, bus event.Publisher) *Service {
	return &Service{
		windows:  windows,
		products: products,
		ids:      ids,
		bus:      bus,
		now:      time.Now,
	}
}

// Activate installs a new window, replacing any currently active one. Forced
// replacement is the documented policy: activating over a live window is not
// an error.
func (s *Service) Activate(ctx context.Context, actorID, productID string, discountPercent int, endTime time.Time) (*dompromo.Window, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "promotion_service"))

	if _, err := s.products.Get(ctx, productID); err != nil {
		return nil, err
	}

	w, err := dompromo.NewWindow(s.ids.NewID(), productID, actorID, discountPercent, endTime, s.now())
	if err != nil {
		return nil, err
	}

	if err := s.windows.Swap(ctx, w); err != nil {
		return nil, fmt.Errorf("promotion: swap: %w", err)
	}

	if s.bus != nil {
		if err := s.bus.Publish(ctx, dompromo.NewActivatedEvent(w)); err != nil {
			logger.Warn("promotion_event_publish_failed", zap.Error(err))
		}
	}

	logger.Info("promotion_activated",
		zap.String("window_id", w.ID),
		zap.String("product_id", w.ProductID),
		zap.Int("discount_percent", w.DiscountPercent),
	)
	return w, nil
}

// Stop deactivates the current window. Idempotent when none is active.
func (s *Service) Stop(ctx context.Context) (int, error) {
	flipped, err := s.windows.Deactivate(ctx)
	if err != nil {
		return 0, fmt.Errorf("promotion: deactivate: %w", err)
	}
	if flipped > 0 && s.bus != nil {
		if err := s.bus.Publish(ctx, dompromo.NewStoppedEvent()); err != nil {
			logging.FromContext(ctx).Warn("promotion_event_publish_failed", zap.Error(err))
		}
	}
	return flipped, nil
}

// CurrentSale is the public projection of the active window with display
// metadata for the referenced product and the computed countdown.
type CurrentSale struct {
	Window    *dompromo.Window
	Product   *domcatalog.Product
	Remaining time.Duration
	Countdown string
}

// Current returns the active, unexpired window or nil when there is none.
func (s *Service) Current(ctx context.Context) (*CurrentSale, error) {
	now := s.now()
	w, err := s.windows.Current(ctx, now)
	if errors.Is(err, dompromo.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("promotion: current: %w", err)
	}

	sale := &CurrentSale{
		Window:    w,
		Remaining: w.Remaining(now),
		Countdown: dompromo.FormatRemaining(w.Remaining(now)),
	}
	if p, err := s.products.Get(ctx, w.ProductID); err == nil {
		sale.Product = p
	}
	return sale, nil
}

func (s *Service) List(ctx context.Context) ([]*dompromo.Window, error) {
	return s.windows.List(ctx)
}

func (s *Service) Delete(ctx context.Context, windowID string) error {
	return s.windows.Delete(ctx, windowID)
}
