package promotion

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNotFound         = errors.New("promotion: window not found")
	ErrInvalidDiscount  = errors.New("promotion: discount must be between 1 and 99")
	ErrEndTimeNotFuture = errors.New("promotion: end time must be in the future")
)

// Window is a time-bounded, single-product percentage discount. At most one
// window is active system-wide; activating a new one replaces the current one.
type Window struct {
	ID              string
	ProductID       string
	DiscountPercent int
	StartTime       time.Time
	EndTime         time.Time
	IsActive        bool
	CreatedBy       string
	CreatedAt       time.Time
}

func NewWindow(id, productID, createdBy string, discountPercent int, endTime, now time.Time) (*Window, error) {
	if discountPercent < 1 || discountPercent > 99 {
		return nil, ErrInvalidDiscount
	}
	if !endTime.After(now) {
		return nil, ErrEndTimeNotFuture
	}
	return &Window{
		ID:              id,
		ProductID:       productID,
		DiscountPercent: discountPercent,
		StartTime:       now,
		EndTime:         endTime,
		IsActive:        true,
		CreatedBy:       createdBy,
		CreatedAt:       now,
	}, nil
}

// ActiveAt reports whether the window applies at the given instant. Expiry is
// evaluated at read time; a window past its end is inactive even if no writer
// has flipped the flag yet.
func (w *Window) ActiveAt(now time.Time) bool {
	return w != nil && w.IsActive && w.EndTime.After(now)
}

// Remaining returns the time left before the window ends, never negative.
func (w *Window) Remaining(now time.Time) time.Duration {
	if w == nil || !w.EndTime.After(now) {
		return 0
	}
	return w.EndTime.Sub(now)
}

// FormatRemaining renders a duration as a zero-padded HH:MM:SS countdown.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

func (w *Window) Clone() *Window {
	if w == nil {
		return nil
	}
	clone := *w
	return &clone
}
