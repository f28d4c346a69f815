package order

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = errors.New("order: not found")
	ErrConflict        = errors.New("order: already exists")
	ErrNoLines         = errors.New("order: at least one line is required")
	ErrInvalidQuantity = errors.New("order: quantity must be greater than zero")
)

// Address is the shipping address snapshot stored on the order. Country doubles
// as the pricing region.
type Address struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// DefaultCountry is applied when the shipping address omits one.
const DefaultCountry = "INDIA"

// Complete reports whether all required address parts are populated and, when
// not, which part is missing.
func (a Address) Complete() (string, bool) {
	switch {
	case a.Street == "":
		return "street", false
	case a.City == "":
		return "city", false
	case a.State == "":
		return "state", false
	case a.ZipCode == "":
		return "zipCode", false
	}
	return "", true
}

// Line is the immutable record of what was charged for one product: unit price
// after region and promotion resolution, the pre-discount price, and a product
// name snapshot independent of later catalog changes.
type Line struct {
	ProductID       string
	ProductName     string
	Quantity        int
	UnitPrice       decimal.Decimal
	OriginalPrice   decimal.Decimal
	DiscountPercent int
}

// Savings is the monetary difference between the pre-discount and charged
// price across the line's quantity.
func (l Line) Savings() decimal.Decimal {
	return l.OriginalPrice.Sub(l.UnitPrice).Mul(decimal.NewFromInt(int64(l.Quantity)))
}

func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Order struct {
	ID              string
	UserID          string
	Lines           []Line
	TotalAmount     decimal.Decimal
	TotalSavings    decimal.Decimal
	Currency        string
	Status          Status
	ShippingAddress Address
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// New assembles an order from resolved lines. Totals are derived from the
// lines here, once, and the lines are never mutated afterwards.
func New(id, userID string, lines []Line, addr Address, method PaymentMethod, currency string, now time.Time) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrNoLines
	}
	total := decimal.Zero
	savings := decimal.Zero
	for _, l := range lines {
		if l.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		total = total.Add(l.Subtotal())
		savings = savings.Add(l.Savings())
	}
	if addr.Country == "" {
		addr.Country = DefaultCountry
	}
	return &Order{
		ID:              id,
		UserID:          userID,
		Lines:           lines,
		TotalAmount:     total,
		TotalSavings:    savings,
		Currency:        currency,
		Status:          StatusPending,
		ShippingAddress: addr,
		PaymentMethod:   method,
		PaymentStatus:   PaymentPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	clone := *o
	clone.Lines = append([]Line(nil), o.Lines...)
	return &clone
}
