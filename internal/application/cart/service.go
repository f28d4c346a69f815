package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	domcart "github.com/freshkart/storefront/internal/domain/cart"
	domcatalog "github.com/freshkart/storefront/internal/domain/catalog"
)

// Service implements the per-user cart operations. The product fields on the
// returned views are an advisory display projection; checkout re-resolves
// prices independently and never trusts them.
type Service struct {
	carts    domcart.Repository
	products domcatalog.Repository
}

func NewService(carts domcart.Repository, products domcatalog.Repository) *Service {
	return &Service{
		carts:    carts,
		products: products,
	}
}

type LineView struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Stock     int
	Images    []string
	Quantity  int
}

type View struct {
	UserID string
	Lines  []LineView
}

func (s *Service) AddItem(ctx context.Context, userID, productID string, quantity int) (*View, error) {
	if quantity < 1 {
		return nil, domcart.ErrInvalidQuantity
	}

	p, err := s.products.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !p.IsActive {
		// An inactive product is invisible to shoppers, same as a missing one.
		return nil, fmt.Errorf("product %s: %w", productID, domcatalog.ErrNotFound)
	}

	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cart: load: %w", err)
	}
	if err := c.Add(productID, quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("cart: save: %w", err)
	}

	return s.view(ctx, c)
}

func (s *Service) RemoveItem(ctx context.Context, userID, productID string) (*View, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cart: load: %w", err)
	}
	c.Remove(productID)
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("cart: save: %w", err)
	}
	return s.view(ctx, c)
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (s *Service) SetQuantity(ctx context.Context, userID, productID string, quantity int) (*View, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cart: load: %w", err)
	}
	if err := c.SetQuantity(productID, quantity); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("cart: save: %w", err)
	}
	return s.view(ctx, c)
}

func (s *Service) Get(ctx context.Context, userID string) (*View, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("cart: load: %w", err)
	}
	return s.view(ctx, c)
}

func (s *Service) view(ctx context.Context, c *domcart.Cart) (*View, error) {
	v := &View{UserID: c.UserID, Lines: make([]LineView, 0, len(c.Lines))}
	for _, l := range c.Lines {
		p, err := s.products.Get(ctx, l.ProductID)
		if errors.Is(err, domcatalog.ErrNotFound) {
			// Product vanished from the catalog since it was carted.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("cart: project product %s: %w", l.ProductID, err)
		}
		v.Lines = append(v.Lines, LineView{
			ProductID: l.ProductID,
			Name:      p.Name,
			Price:     p.Price,
			Stock:     p.Stock,
			Images:    p.Images,
			Quantity:  l.Quantity,
		})
	}
	return v, nil
}
