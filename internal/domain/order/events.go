package order

import "time"

// PlacedEvent is emitted after an order has been durably persisted.
type PlacedEvent struct {
	OrderID     string
	UserID      string
	LineCount   int
	TotalAmount string
	Currency    string
	OccurredAt  time.Time
}

func (PlacedEvent) EventName() string { return "order.placed" }

func NewPlacedEvent(o *Order) PlacedEvent {
	return PlacedEvent{
		OrderID:     o.ID,
		UserID:      o.UserID,
		LineCount:   len(o.Lines),
		TotalAmount: o.TotalAmount.StringFixed(2),
		Currency:    o.Currency,
		OccurredAt:  time.Now().UTC(),
	}
}

// StatusChangedEvent is emitted on per-order and bulk status transitions. For
// bulk transitions OrderID is empty and UserID identifies the affected user.
type StatusChangedEvent struct {
	OrderID    string
	UserID     string
	Status     Status
	OccurredAt time.Time
}

func (StatusChangedEvent) EventName() string { return "order.status_changed" }

func NewStatusChangedEvent(orderID, userID string, status Status) StatusChangedEvent {
	return StatusChangedEvent{
		OrderID:    orderID,
		UserID:     userID,
		Status:     status,
		OccurredAt: time.Now().UTC(),
	}
}
