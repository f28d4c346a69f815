package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/freshkart/storefront/internal/domain/promotion"
)

func window(id, productID string, end time.Time) *domain.Window {
	return &domain.Window{
		ID:              id,
		ProductID:       productID,
		DiscountPercent: 10,
		StartTime:       time.Now().Add(-time.Minute),
		EndTime:         end,
		IsActive:        true,
	}
}

func TestSwapReplacesActiveWindow(t *testing.T) {
	repo := NewPromotionRepository()
	now := time.Now()

	require.NoError(t, repo.Swap(context.Background(), window("wa", "productA", now.Add(time.Hour))))
	require.NoError(t, repo.Swap(context.Background(), window("wb", "productB", now.Add(time.Hour))))

	cur, err := repo.Current(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, "wb", cur.ID)
	require.Equal(t, "productB", cur.ProductID)

	windows, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, windows, 2)

	active := 0
	for _, w := range windows {
		if w.IsActive {
			active++
			require.Equal(t, "wb", w.ID)
		}
	}
	require.Equal(t, 1, active, "at most one window may be active")
}

func TestCurrentAppliesReadTimeExpiry(t *testing.T) {
	repo := NewPromotionRepository()
	now := time.Now()

	require.NoError(t, repo.Swap(context.Background(), window("wa", "productA", now.Add(time.Minute))))

	_, err := repo.Current(context.Background(), now)
	require.NoError(t, err)

	// Past the end time the window is inactive to every reader even though
	// nobody flipped the flag.
	_, err = repo.Current(context.Background(), now.Add(2*time.Minute))
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeactivateIsIdempotent(t *testing.T) {
	repo := NewPromotionRepository()
	now := time.Now()

	require.NoError(t, repo.Swap(context.Background(), window("wa", "productA", now.Add(time.Hour))))

	flipped, err := repo.Deactivate(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, flipped)

	flipped, err = repo.Deactivate(context.Background())
	require.NoError(t, err)
	require.Zero(t, flipped)

	_, err = repo.Current(context.Background(), now)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteClearsCurrentPointer(t *testing.T) {
	repo := NewPromotionRepository()
	now := time.Now()

	require.NoError(t, repo.Swap(context.Background(), window("wa", "productA", now.Add(time.Hour))))
	require.NoError(t, repo.Delete(context.Background(), "wa"))

	_, err := repo.Current(context.Background(), now)
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.ErrorIs(t, repo.Delete(context.Background(), "wa"), domain.ErrNotFound)
}
