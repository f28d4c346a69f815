package promotion

import "time"

// ActivatedEvent is emitted when a new promotion window replaces the current one.
type ActivatedEvent struct {
	WindowID        string
	ProductID       string
	DiscountPercent int
	EndTime         time.Time
	OccurredAt      time.Time
}

func (ActivatedEvent) EventName() string { return "promotion.activated" }

func NewActivatedEvent(w *Window) ActivatedEvent {
	return ActivatedEvent{
		WindowID:        w.ID,
		ProductID:       w.ProductID,
		DiscountPercent: w.DiscountPercent,
		EndTime:         w.EndTime,
		OccurredAt:      time.Now().UTC(),
	}
}

// StoppedEvent is emitted when the current window is explicitly stopped.
type StoppedEvent struct {
	OccurredAt time.Time
}

func (StoppedEvent) EventName() string { return "promotion.stopped" }

func NewStoppedEvent() StoppedEvent {
	return StoppedEvent{OccurredAt: time.Now().UTC()}
}
