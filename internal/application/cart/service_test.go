package cart

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	domcart "github.com/freshkart/storefront/internal/domain/cart"
	domcatalog "github.com/freshkart/storefront/internal/domain/catalog"
	"github.com/freshkart/storefront/internal/infrastructure/memory"
)

func newTestService(t *testing.T) (*Service, *memory.ProductRepository) {
	t.Helper()
	products := memory.NewProductRepository()
	carts := memory.NewCartRepository()
	return NewService(carts, products), products
}

func seedProduct(t *testing.T, products *memory.ProductRepository, id string, active bool) {
	t.Helper()
	err := products.Save(context.Background(), &domcatalog.Product{
		ID:       id,
		Name:     "Widget " + id,
		Price:    decimal.RequireFromString("49.90"),
		Stock:    10,
		Images:   []string{"https://cdn.example.com/" + id + ".jpg"},
		IsActive: active,
	})
	require.NoError(t, err)
}

func TestAddItemMergesQuantities(t *testing.T) {
	svc, products := newTestService(t)
	seedProduct(t, products, "p1", true)

	_, err := svc.AddItem(context.Background(), "u1", "p1", 2)
	require.NoError(t, err)

	view, err := svc.AddItem(context.Background(), "u1", "p1", 3)
	require.NoError(t, err)

	require.Len(t, view.Lines, 1, "re-adding a product must merge, not duplicate")
	require.Equal(t, 5, view.Lines[0].Quantity)
}

func TestAddItemUnknownOrInactiveProduct(t *testing.T) {
	svc, products := newTestService(t)
	seedProduct(t, products, "inactive", false)

	_, err := svc.AddItem(context.Background(), "u1", "ghost", 1)
	require.ErrorIs(t, err, domcatalog.ErrNotFound)

	_, err = svc.AddItem(context.Background(), "u1", "inactive", 1)
	require.ErrorIs(t, err, domcatalog.ErrNotFound)
}

func TestAddItemRejectsBadQuantity(t *testing.T) {
	svc, products := newTestService(t)
	seedProduct(t, products, "p1", true)

	_, err := svc.AddItem(context.Background(), "u1", "p1", 0)
	require.ErrorIs(t, err, domcart.ErrInvalidQuantity)
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	svc, products := newTestService(t)
	seedProduct(t, products, "p1", true)

	_, err := svc.AddItem(context.Background(), "u1", "p1", 2)
	require.NoError(t, err)

	view, err := svc.SetQuantity(context.Background(), "u1", "p1", 0)
	require.NoError(t, err)
	require.Empty(t, view.Lines)
}

func TestSetQuantityMissingItem(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.SetQuantity(context.Background(), "u1", "p1", 3)
	require.ErrorIs(t, err, domcart.ErrItemNotFound)
}

func TestRemoveItemIsNoOpForAbsentProduct(t *testing.T) {
	svc, products := newTestService(t)
	seedProduct(t, products, "p1", true)

	_, err := svc.AddItem(context.Background(), "u1", "p1", 1)
	require.NoError(t, err)

	view, err := svc.RemoveItem(context.Background(), "u1", "other")
	require.NoError(t, err)
	require.Len(t, view.Lines, 1)
}

func TestViewProjectsProductFields(t *testing.T) {
	svc, products := newTestService(t)
	seedProduct(t, products, "p1", true)

	view, err := svc.AddItem(context.Background(), "u1", "p1", 2)
	require.NoError(t, err)

	line := view.Lines[0]
	require.Equal(t, "Widget p1", line.Name)
	require.Equal(t, "49.90", line.Price.StringFixed(2))
	require.Equal(t, 10, line.Stock)
	require.NotEmpty(t, line.Images)
}
