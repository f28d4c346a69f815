package cart

import "errors"

var (
	ErrInvalidQuantity = errors.New("cart: quantity must be at least one")
	ErrItemNotFound    = errors.New("cart: item not in cart")
)

// Line is one product entry in a cart. Carts are keyed by product: adding an
// existing product merges quantities instead of appending a duplicate line.
type Line struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type Cart struct {
	UserID string `json:"user_id"`
	Lines  []Line `json:"lines"`
}

func New(userID string) *Cart {
	return &Cart{UserID: userID}
}

// Add merges quantity into an existing line or appends a new one.
func (c *Cart) Add(productID string, quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += quantity
			return nil
		}
	}
	c.Lines = append(c.Lines, Line{ProductID: productID, Quantity: quantity})
	return nil
}

// Remove drops the line for productID. Removing an absent product is a no-op.
func (c *Cart) Remove(productID string) {
	filtered := c.Lines[:0]
	for _, l := range c.Lines {
		if l.ProductID != productID {
			filtered = append(filtered, l)
		}
	}
	c.Lines = filtered
}

// SetQuantity replaces the quantity of an existing line. A quantity of zero or
// less removes the line (caller contract mirrored from the HTTP surface).
func (c *Cart) SetQuantity(productID string, quantity int) error {
	if quantity <= 0 {
		c.Remove(productID)
		return nil
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrItemNotFound
}

func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

func (c *Cart) Clone() *Cart {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Lines = append([]Line(nil), c.Lines...)
	return &clone
}
