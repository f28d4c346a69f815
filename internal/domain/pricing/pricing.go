package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/freshkart/storefront/internal/domain/catalog"
	"github.com/freshkart/storefront/internal/domain/promotion"
)

// Fixed conversion table from the currency-neutral base price. Rates are
// deliberately static; live FX is not this core's concern.
var currencyRates = map[string]decimal.Decimal{
	"INR": decimal.RequireFromString("83.5"),
	"USD": decimal.RequireFromString("1"),
	"GBP": decimal.RequireFromString("0.79"),
	"CAD": decimal.RequireFromString("1.35"),
	"AUD": decimal.RequireFromString("1.52"),
}

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"GBP": "£",
	"CAD": "C$",
	"AUD": "A$",
}

var countryCurrency = map[string]string{
	"INDIA":     "INR",
	"USA":       "USD",
	"UK":        "GBP",
	"CANADA":    "CAD",
	"AUSTRALIA": "AUD",
}

// CurrencyFor maps a shipping country to its currency code and symbol,
// defaulting to USD for unknown countries.
func CurrencyFor(country string) (string, string) {
	code, ok := countryCurrency[country]
	if !ok {
		code = "USD"
	}
	return code, currencySymbols[code]
}

// Quote is the resolved effective price for one unit of a product in a region
// at a given instant.
type Quote struct {
	UnitPrice       decimal.Decimal
	OriginalPrice   decimal.Decimal
	DiscountPercent int
	Currency        string
	Symbol          string
}

// Resolve computes the effective unit price for product in the given region.
//
// The candidate price is the per-region override when present and positive,
// otherwise the base price converted at the fixed rate. Rounding to two
// decimal places happens after the conversion and again after the discount
// multiplication — never before — so results are reproducible.
//
// The window applies only when it targets this exact product and is active at
// now (read-time expiry included).
func Resolve(p *catalog.Product, country string, w *promotion.Window, now time.Time) Quote {
	var candidate decimal.Decimal
	var currency, symbol string

	if override, ok := p.RegionOverride(country); ok {
		candidate = override.Price
		currency = override.Currency
		symbol = currencySymbols[currency]
	} else {
		currency, symbol = CurrencyFor(country)
		candidate = p.Price.Mul(currencyRates[currency]).Round(2)
	}

	q := Quote{
		UnitPrice:     candidate,
		OriginalPrice: candidate,
		Currency:      currency,
		Symbol:        symbol,
	}

	if w.ActiveAt(now) && w.ProductID == p.ID {
		factor := decimal.NewFromInt(int64(100 - w.DiscountPercent)).Div(decimal.NewFromInt(100))
		q.UnitPrice = candidate.Mul(factor).Round(2)
		q.DiscountPercent = w.DiscountPercent
	}

	return q
}
