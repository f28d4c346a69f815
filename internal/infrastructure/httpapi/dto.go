package httpapi

import (
	"time"

	appcart "github.com/freshkart/storefront/internal/application/cart"
	apppromo "github.com/freshkart/storefront/internal/application/promotion"
	domcatalog "github.com/freshkart/storefront/internal/domain/catalog"
	domorder "github.com/freshkart/storefront/internal/domain/order"
	dompromo "github.com/freshkart/storefront/internal/domain/promotion"
)

type addCartRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type removeCartRequest struct {
	ProductID string `json:"productId"`
}

type updateCartItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type cartLineResponse struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Price     string   `json:"price"`
	Stock     int      `json:"stock"`
	Images    []string `json:"images"`
	Quantity  int      `json:"quantity"`
}

type cartResponse struct {
	Message string             `json:"message,omitempty"`
	Cart    []cartLineResponse `json:"cart"`
}

func mapCartView(message string, v *appcart.View) cartResponse {
	lines := make([]cartLineResponse, 0, len(v.Lines))
	for _, l := range v.Lines {
		lines = append(lines, cartLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.StringFixed(2),
			Stock:     l.Stock,
			Images:    l.Images,
			Quantity:  l.Quantity,
		})
	}
	return cartResponse{Message: message, Cart: lines}
}

type addressInput struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (a addressInput) toDomain() domorder.Address {
	return domorder.Address{
		Street:  a.Street,
		City:    a.City,
		State:   a.State,
		ZipCode: a.ZipCode,
		Country: a.Country,
	}
}

type orderItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type createOrderRequest struct {
	Products        []orderItemInput `json:"products"`
	ShippingAddress addressInput     `json:"shippingAddress"`
	PaymentMethod   string           `json:"paymentMethod"`
}

type orderLineResponse struct {
	ProductID       string `json:"productId"`
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
	UnitPrice       string `json:"unitPrice"`
	OriginalPrice   string `json:"originalPrice"`
	DiscountPercent int    `json:"discountPercent"`
}

type orderResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	Products        []orderLineResponse `json:"products"`
	TotalAmount     string              `json:"totalAmount"`
	TotalSavings    string              `json:"totalSavings"`
	Currency        string              `json:"currency"`
	Status          string              `json:"status"`
	ShippingAddress addressInput        `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
	PaymentStatus   string              `json:"paymentStatus"`
	CreatedAt       time.Time           `json:"createdAt"`
}

func mapOrder(o *domorder.Order) orderResponse {
	lines := make([]orderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, orderLineResponse{
			ProductID:       l.ProductID,
			Name:            l.ProductName,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice.StringFixed(2),
			OriginalPrice:   l.OriginalPrice.StringFixed(2),
			DiscountPercent: l.DiscountPercent,
		})
	}
	return orderResponse{
		ID:           o.ID,
		UserID:       o.UserID,
		Products:     lines,
		TotalAmount:  o.TotalAmount.StringFixed(2),
		TotalSavings: o.TotalSavings.StringFixed(2),
		Currency:     o.Currency,
		Status:       string(o.Status),
		ShippingAddress: addressInput{
			Street:  o.ShippingAddress.Street,
			City:    o.ShippingAddress.City,
			State:   o.ShippingAddress.State,
			ZipCode: o.ShippingAddress.ZipCode,
			Country: o.ShippingAddress.Country,
		},
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
	}
}

func mapOrders(orders []*domorder.Order) []orderResponse {
	out := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, mapOrder(o))
	}
	return out
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type createSaleRequest struct {
	ProductID string    `json:"productId"`
	Discount  int       `json:"discount"`
	EndTime   time.Time `json:"endTime"`
}

type saleResponse struct {
	ID              string    `json:"_id"`
	ProductID       string    `json:"productId"`
	Discount        int       `json:"discount"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	IsActive        bool      `json:"isActive"`
	TimeRemainingMS int64     `json:"timeRemaining,omitempty"`
	TimeString      string    `json:"timeString,omitempty"`
}

func mapWindow(w *dompromo.Window) saleResponse {
	return saleResponse{
		ID:        w.ID,
		ProductID: w.ProductID,
		Discount:  w.DiscountPercent,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		IsActive:  w.IsActive,
	}
}

type saleProductResponse struct {
	ID     string   `json:"_id"`
	Name   string   `json:"name"`
	Price  string   `json:"price"`
	Images []string `json:"images"`
}

type currentSaleResponse struct {
	Message   string               `json:"message,omitempty"`
	FreshSale *saleResponse        `json:"freshSale"`
	Product   *saleProductResponse `json:"product,omitempty"`
}

func mapCurrentSale(sale *apppromo.CurrentSale) currentSaleResponse {
	if sale == nil {
		return currentSaleResponse{Message: "No active fresh sale", FreshSale: nil}
	}
	dto := mapWindow(sale.Window)
	dto.TimeRemainingMS = sale.Remaining.Milliseconds()
	dto.TimeString = sale.Countdown
	resp := currentSaleResponse{FreshSale: &dto}
	if sale.Product != nil {
		resp.Product = mapSaleProduct(sale.Product)
	}
	return resp
}

func mapSaleProduct(p *domcatalog.Product) *saleProductResponse {
	return &saleProductResponse{
		ID:     p.ID,
		Name:   p.Name,
		Price:  p.Price.StringFixed(2),
		Images: p.Images,
	}
}
