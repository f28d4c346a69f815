package catalog

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = errors.New("catalog: product not found")
	ErrInactive          = errors.New("catalog: product is inactive")
	ErrInsufficientStock = errors.New("catalog: insufficient stock")
	ErrInvalidQuantity   = errors.New("catalog: quantity must be greater than zero")
)

// RegionPrice is an optional fixed price override for one shipping region.
// A zero price means "no override" and falls back to the converted base price.
type RegionPrice struct {
	Price    decimal.Decimal
	Currency string
}

// Product is owned by the catalog context and read-only to the order core,
// except for the stock field which is mutated via Ledger reservations only.
type Product struct {
	ID           string
	Name         string
	Description  string
	Price        decimal.Decimal
	Category     string
	Images       []string
	Stock        int
	Brand        string
	Rating       float64
	NumReviews   int
	IsActive     bool
	RegionPrices map[string]RegionPrice
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RegionOverride returns the per-region price override when one is set with a
// positive price.
func (p *Product) RegionOverride(region string) (RegionPrice, bool) {
	rp, ok := p.RegionPrices[region]
	if !ok || !rp.Price.IsPositive() {
		return RegionPrice{}, false
	}
	return rp, true
}

func (p *Product) Clone() *Product {
	if p == nil {
		return nil
	}
	clone := *p
	clone.Images = append([]string(nil), p.Images...)
	if p.RegionPrices != nil {
		clone.RegionPrices = make(map[string]RegionPrice, len(p.RegionPrices))
		for k, v := range p.RegionPrices {
			clone.RegionPrices[k] = v
		}
	}
	return &clone
}
