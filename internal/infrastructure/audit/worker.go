package audit

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/freshkart/storefront/internal/domain/event"
	domorder "github.com/freshkart/storefront/internal/domain/order"
	dompromo "github.com/freshkart/storefront/internal/domain/promotion"
)

// Worker subscribes to order and promotion lifecycle events and turns them
// into an audit trail: one structured log line and one counter tick per event.
type Worker struct {
	subscriber event.Subscriber
	log        *zap.Logger
	events     *prometheus.CounterVec
}

func New(subscriber event.Subscriber, logger *zap.Logger, events *prometheus.CounterVec) *Worker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Worker{
		subscriber: subscriber,
		log:        logger.With(zap.String("component", "audit_worker")),
		events:     events,
	}
}

func (w *Worker) Start() {
	if w.subscriber == nil {
		return
	}
	w.subscriber.Subscribe(domorder.PlacedEvent{}.EventName(), w.handle)
	w.subscriber.Subscribe(domorder.StatusChangedEvent{}.EventName(), w.handle)
	w.subscriber.Subscribe(dompromo.ActivatedEvent{}.EventName(), w.handle)
	w.subscriber.Subscribe(dompromo.StoppedEvent{}.EventName(), w.handle)
}

func (w *Worker) handle(ctx context.Context, e event.Event) error {
	_ = ctx

	if w.events != nil {
		w.events.WithLabelValues(e.EventName()).Inc()
	}

	switch evt := e.(type) {
	case domorder.PlacedEvent:
		w.log.Info("order_placed",
			zap.String("order_id", evt.OrderID),
			zap.String("user_id", evt.UserID),
			zap.Int("lines", evt.LineCount),
			zap.String("total", evt.TotalAmount),
			zap.String("currency", evt.Currency),
		)
	case domorder.StatusChangedEvent:
		w.log.Info("order_status_changed",
			zap.String("order_id", evt.OrderID),
			zap.String("user_id", evt.UserID),
			zap.String("status", string(evt.Status)),
		)
	case dompromo.ActivatedEvent:
		w.log.Info("promotion_activated",
			zap.String("window_id", evt.WindowID),
			zap.String("product_id", evt.ProductID),
			zap.Int("discount_percent", evt.DiscountPercent),
			zap.Time("end_time", evt.EndTime),
		)
	case dompromo.StoppedEvent:
		w.log.Info("promotion_stopped")
	default:
		w.log.Debug("unhandled_event", zap.String("event", e.EventName()))
	}
	return nil
}
