package promotion

import (
	"context"
	"time"
)

// Repository stores promotion windows with an explicit singleton "current"
// pointer, so activation is a single atomic swap rather than a two-step
// "deactivate all, then insert" scan.
type Repository interface {
	// Swap atomically deactivates the current window (if any) and installs
	// w as the new current one.
	Swap(ctx context.Context, w *Window) error
	// Current returns the active window, applying read-time expiry against
	// now. ErrNotFound when no window applies.
	Current(ctx context.Context, now time.Time) (*Window, error)
	// Deactivate stops the current window and returns how many windows were
	// flipped. Idempotent when none is active.
	Deactivate(ctx context.Context) (int, error)
	// List returns every stored window, newest first.
	List(ctx context.Context) ([]*Window, error)
	// Delete removes a window by id; deleting the current window also clears
	// the current pointer.
	Delete(ctx context.Context, id string) error
}
