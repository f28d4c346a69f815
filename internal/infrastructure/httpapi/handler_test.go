package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	appcart "github.com/freshkart/storefront/internal/application/cart"
	appcheckout "github.com/freshkart/storefront/internal/application/checkout"
	apporder "github.com/freshkart/storefront/internal/application/order"
	apppromo "github.com/freshkart/storefront/internal/application/promotion"
	domcatalog "github.com/freshkart/storefront/internal/domain/catalog"
	domidentity "github.com/freshkart/storefront/internal/domain/identity"
	domuser "github.com/freshkart/storefront/internal/domain/user"
	"github.com/freshkart/storefront/internal/infrastructure/id"
	"github.com/freshkart/storefront/internal/infrastructure/memory"
)

type apiFixture struct {
	router   http.Handler
	products *memory.ProductRepository
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	products := memory.NewProductRepository()
	carts := memory.NewCartRepository()
	users := memory.NewUserRepository()
	orders := memory.NewOrderRepository()
	promos := memory.NewPromotionRepository()
	ids := id.NewUUIDGenerator()

	require.NoError(t, products.Save(context.Background(), &domcatalog.Product{
		ID:       "p1",
		Name:     "Widget",
		Price:    decimal.RequireFromString("100"),
		Stock:    5,
		IsActive: true,
	}))
	require.NoError(t, users.Save(context.Background(), &domuser.User{
		ID:        "u1",
		FirstName: "Test",
		EmailID:   "u1@example.com",
		Phone:     "+1-555-0100",
	}))

	tokens := memory.NewTokenProvider()
	tokens.Register("user-token", domidentity.Identity{UserID: "u1", Role: "user"})
	tokens.Register("admin-token", domidentity.Identity{UserID: "a1", Role: domidentity.RoleAdmin})

	handler := NewHandler(
		appcart.NewService(carts, products),
		appcheckout.NewService(products, products, carts, users, orders, promos, ids, nil),
		apporder.NewService(orders, nil),
		apppromo.NewService(promos, products, ids, nil),
	)

	return &apiFixture{
		router:   handler.Router(NewAuth(tokens)),
		products: products,
	}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func validOrderBody(quantity int) map[string]any {
	return map[string]any{
		"products": []map[string]any{{"productId": "p1", "quantity": quantity}},
		"shippingAddress": map[string]any{
			"street":  "1 Main St",
			"city":    "Springfield",
			"state":   "IL",
			"zipCode": "62701",
			"country": "USA",
		},
	}
}

func TestCartRequiresAuthentication(t *testing.T) {
	f := newAPIFixture(t)
	rec := f.do(t, http.MethodGet, "/cart/getCart", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRoutesRejectPlainUsers(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/order/all", "user-token", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(t, http.MethodPut, "/freshsale/stop", "user-token", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAddToCartAndCheckout(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/cart/addCart", "user-token", map[string]any{"productId": "p1", "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)

	var cartResp struct {
		Cart []struct {
			ProductID string `json:"productId"`
			Quantity  int    `json:"quantity"`
		} `json:"cart"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cartResp))
	require.Len(t, cartResp.Cart, 1)
	require.Equal(t, 2, cartResp.Cart[0].Quantity)

	rec = f.do(t, http.MethodPost, "/order/createOrder", "user-token", validOrderBody(2))
	require.Equal(t, http.StatusCreated, rec.Code)

	var orderResp struct {
		Order struct {
			TotalAmount string `json:"totalAmount"`
			Status      string `json:"status"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orderResp))
	require.Equal(t, "200.00", orderResp.Order.TotalAmount)
	require.Equal(t, "pending", orderResp.Order.Status)

	// The cart was consumed by the checkout.
	rec = f.do(t, http.MethodGet, "/cart/getCart", "user-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, "[]", rec.Body.String())

	rec = f.do(t, http.MethodGet, "/order/myorders", "user-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine []json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	require.Len(t, mine, 1)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/order/createOrder", "user-token", validOrderBody(99))
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "p1")

	p, err := f.products.Get(context.Background(), "p1")
	require.NoError(t, err)
	require.Equal(t, 5, p.Stock)
}

func TestCreateOrderValidationFailure(t *testing.T) {
	f := newAPIFixture(t)

	body := validOrderBody(1)
	body["shippingAddress"].(map[string]any)["city"] = ""

	rec := f.do(t, http.MethodPost, "/order/createOrder", "user-token", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "city")
}

func TestCurrentSaleIsPublic(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodGet, "/freshsale/current", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		FreshSale *json.RawMessage `json:"freshSale"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Nil(t, resp.FreshSale)
}

func TestFreshSaleLifecycle(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/freshsale/create", "admin-token", map[string]any{
		"productId": "p1",
		"discount":  20,
		"endTime":   "2099-01-01T00:00:00Z",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = f.do(t, http.MethodGet, "/freshsale/current", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var current struct {
		FreshSale *struct {
			Discount   int    `json:"discount"`
			TimeString string `json:"timeString"`
		} `json:"freshSale"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &current))
	require.NotNil(t, current.FreshSale)
	require.Equal(t, 20, current.FreshSale.Discount)
	require.NotEmpty(t, current.FreshSale.TimeString)

	rec = f.do(t, http.MethodPut, "/freshsale/stop", "admin-token", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"modifiedCount":1`)

	rec = f.do(t, http.MethodGet, "/freshsale/current", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &current))
	require.Nil(t, current.FreshSale)
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.do(t, http.MethodPost, "/order/createOrder", "user-token", validOrderBody(1))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		Order struct {
			ID string `json:"id"`
		} `json:"order"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = f.do(t, http.MethodPut, "/order/updateOrderStatus/"+created.Order.ID, "admin-token", map[string]any{"status": "shipped"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"status":"shipped"`)

	rec = f.do(t, http.MethodPut, "/order/updateOrderStatus/"+created.Order.ID, "admin-token", map[string]any{"status": "vanished"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(t, http.MethodPut, "/order/user/u1/status", "admin-token", map[string]any{"status": "cancelled"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"modifiedCount":1`)
}
