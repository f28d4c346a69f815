package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/freshkart/storefront/internal/domain/catalog"
	"github.com/freshkart/storefront/internal/domain/promotion"
)

func product(id, base string) *catalog.Product {
	return &catalog.Product{
		ID:       id,
		Name:     "Test Product",
		Price:    decimal.RequireFromString(base),
		IsActive: true,
	}
}

func TestResolveBaseConversion(t *testing.T) {
	now := time.Now()
	p := product("p1", "100")

	tests := []struct {
		country  string
		price    string
		currency string
	}{
		{"USA", "100.00", "USD"},
		{"INDIA", "8350.00", "INR"},
		{"UK", "79.00", "GBP"},
		{"CANADA", "135.00", "CAD"},
		{"AUSTRALIA", "152.00", "AUD"},
		{"ATLANTIS", "100.00", "USD"}, // unknown country falls back to USD
	}
	for _, tc := range tests {
		t.Run(tc.country, func(t *testing.T) {
			q := Resolve(p, tc.country, nil, now)
			require.Equal(t, tc.price, q.UnitPrice.StringFixed(2))
			require.Equal(t, tc.price, q.OriginalPrice.StringFixed(2))
			require.Equal(t, tc.currency, q.Currency)
			require.Zero(t, q.DiscountPercent)
		})
	}
}

func TestResolveRegionOverride(t *testing.T) {
	now := time.Now()
	p := product("p1", "100")
	p.RegionPrices = map[string]catalog.RegionPrice{
		"INDIA": {Price: decimal.RequireFromString("7999"), Currency: "INR"},
		"UK":    {Price: decimal.Zero, Currency: "GBP"}, // zero means no override
	}

	q := Resolve(p, "INDIA", nil, now)
	require.Equal(t, "7999.00", q.UnitPrice.StringFixed(2))
	require.Equal(t, "INR", q.Currency)

	q = Resolve(p, "UK", nil, now)
	require.Equal(t, "79.00", q.UnitPrice.StringFixed(2), "zero override must fall back to conversion")
}

func TestResolveDiscount(t *testing.T) {
	now := time.Now()
	p := product("p1", "100")
	w := &promotion.Window{
		ID:              "w1",
		ProductID:       "p1",
		DiscountPercent: 20,
		StartTime:       now.Add(-time.Hour),
		EndTime:         now.Add(time.Hour),
		IsActive:        true,
	}

	q := Resolve(p, "USA", w, now)
	require.Equal(t, "80.00", q.UnitPrice.StringFixed(2))
	require.Equal(t, "100.00", q.OriginalPrice.StringFixed(2))
	require.Equal(t, 20, q.DiscountPercent)
}

func TestResolveRoundingAfterDiscount(t *testing.T) {
	now := time.Now()
	p := product("p1", "99.99")
	w := &promotion.Window{
		ID:              "w1",
		ProductID:       "p1",
		DiscountPercent: 15,
		EndTime:         now.Add(time.Hour),
		IsActive:        true,
	}

	// 99.99 * 0.85 = 84.9915, rounded after the multiplication.
	q := Resolve(p, "USA", w, now)
	require.Equal(t, "84.99", q.UnitPrice.StringFixed(2))
}

func TestResolveWindowDoesNotApply(t *testing.T) {
	now := time.Now()
	p := product("p1", "100")

	expired := &promotion.Window{ID: "w1", ProductID: "p1", DiscountPercent: 20, EndTime: now.Add(-time.Minute), IsActive: true}
	stopped := &promotion.Window{ID: "w2", ProductID: "p1", DiscountPercent: 20, EndTime: now.Add(time.Hour), IsActive: false}
	other := &promotion.Window{ID: "w3", ProductID: "p2", DiscountPercent: 20, EndTime: now.Add(time.Hour), IsActive: true}

	for name, w := range map[string]*promotion.Window{
		"nil": nil, "expired": expired, "stopped": stopped, "other_product": other,
	} {
		t.Run(name, func(t *testing.T) {
			q := Resolve(p, "USA", w, now)
			require.Equal(t, "100.00", q.UnitPrice.StringFixed(2))
			require.Zero(t, q.DiscountPercent)
		})
	}
}
