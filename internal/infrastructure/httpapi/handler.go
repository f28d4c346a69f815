package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	appcart "github.com/freshkart/storefront/internal/application/cart"
	appcheckout "github.com/freshkart/storefront/internal/application/checkout"
	apporder "github.com/freshkart/storefront/internal/application/order"
	apppromo "github.com/freshkart/storefront/internal/application/promotion"
	domcart "github.com/freshkart/storefront/internal/domain/cart"
	domcatalog "github.com/freshkart/storefront/internal/domain/catalog"
	domidentity "github.com/freshkart/storefront/internal/domain/identity"
	domorder "github.com/freshkart/storefront/internal/domain/order"
	dompromo "github.com/freshkart/storefront/internal/domain/promotion"
	"github.com/freshkart/storefront/internal/domain/storage"
	domuser "github.com/freshkart/storefront/internal/domain/user"
)

type Handler struct {
	carts     *appcart.Service
	checkouts *appcheckout.Service
	orders    *apporder.Service
	sales     *apppromo.Service
}

func NewHandler(
	carts *appcart.Service,
	checkouts *appcheckout.Service,
	orders *apporder.Service,
	sales *apppromo.Service,
) *Handler {
	return &Handler{
		carts:     carts,
		checkouts: checkouts,
		orders:    orders,
		sales:     sales,
	}
}

// Router wires the storefront API. Cart and order placement require a user
// session; order administration and promotion management require the admin
// role; the current sale is public.
func (h *Handler) Router(auth *Auth, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/cart", func(r chi.Router) {
		r.Use(auth.RequireUser)
		r.Post("/addCart", h.handleAddToCart)
		r.Post("/removeCart", h.handleRemoveFromCart)
		r.Put("/updateCartItem", h.handleUpdateCartItem)
		r.Get("/getCart", h.handleGetCart)
	})

	r.Route("/order", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireUser)
			r.Post("/createOrder", h.handleCreateOrder)
			r.Get("/myorders", h.handleMyOrders)
		})
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Get("/all", h.handleAllOrders)
			r.Put("/updateOrderStatus/{id}", h.handleUpdateOrderStatus)
			r.Put("/user/{userId}/status", h.handleBulkOrderStatus)
		})
	})

	r.Route("/freshsale", func(r chi.Router) {
		r.Get("/current", h.handleCurrentSale)
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/create", h.handleCreateSale)
			r.Get("/all", h.handleAllSales)
			r.Put("/stop", h.handleStopSale)
			r.Delete("/delete/{id}", h.handleDeleteSale)
		})
	})

	return r
}

func (h *Handler) handleAddToCart(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req addCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, errors.New("productId is required"))
		return
	}

	view, err := h.carts.AddItem(r.Context(), id.UserID, req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartView("Added to cart", view))
}

func (h *Handler) handleRemoveFromCart(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req removeCartRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, errors.New("productId is required"))
		return
	}

	view, err := h.carts.RemoveItem(r.Context(), id.UserID, req.ProductID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartView("Removed from cart", view))
}

func (h *Handler) handleUpdateCartItem(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req updateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, errors.New("productId is required"))
		return
	}

	view, err := h.carts.SetQuantity(r.Context(), id.UserID, req.ProductID, req.Quantity)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartView("Cart updated", view))
}

func (h *Handler) handleGetCart(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	view, err := h.carts.Get(r.Context(), id.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCartView("", view).Cart)
}

func (h *Handler) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req createOrderRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	items := make([]appcheckout.Item, 0, len(req.Products))
	for _, it := range req.Products {
		items = append(items, appcheckout.Item{ProductID: it.ProductID, Quantity: it.Quantity})
	}

	o, err := h.checkouts.PlaceOrder(r.Context(), appcheckout.PlaceOrderInput{
		UserID:          id.UserID,
		Items:           items,
		ShippingAddress: req.ShippingAddress.toDomain(),
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Order Created Successfully",
		"order":   mapOrder(o),
	})
}

func (h *Handler) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	orders, err := h.orders.ListForUser(r.Context(), id.UserID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrders(orders))
}

func (h *Handler) handleAllOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListAll(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrders(orders))
}

func (h *Handler) handleUpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if orderID == "" || req.Status == "" {
		writeError(w, http.StatusBadRequest, errors.New("order id and status are required"))
		return
	}

	o, err := h.orders.UpdateStatus(r.Context(), orderID, req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapOrder(o))
}

func (h *Handler) handleBulkOrderStatus(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if userID == "" || req.Status == "" {
		writeError(w, http.StatusBadRequest, errors.New("user id and status are required"))
		return
	}

	count, err := h.orders.BulkUpdateStatus(r.Context(), userID, req.Status)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Order statuses updated",
		"modifiedCount": count,
	})
}

func (h *Handler) handleCreateSale(w http.ResponseWriter, r *http.Request) {
	id, _ := IdentityFrom(r.Context())
	var req createSaleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.ProductID == "" || req.Discount == 0 || req.EndTime.IsZero() {
		writeError(w, http.StatusBadRequest, errors.New("productId, discount and endTime are required"))
		return
	}

	window, err := h.sales.Activate(r.Context(), id.UserID, req.ProductID, req.Discount, req.EndTime)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "Fresh sale created successfully",
		"freshSale": mapWindow(window),
	})
}

func (h *Handler) handleCurrentSale(w http.ResponseWriter, r *http.Request) {
	sale, err := h.sales.Current(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, mapCurrentSale(sale))
}

func (h *Handler) handleAllSales(w http.ResponseWriter, r *http.Request) {
	windows, err := h.sales.List(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]saleResponse, 0, len(windows))
	for _, win := range windows {
		out = append(out, mapWindow(win))
	}
	writeJSON(w, http.StatusOK, map[string]any{"freshSales": out})
}

func (h *Handler) handleStopSale(w http.ResponseWriter, r *http.Request) {
	count, err := h.sales.Stop(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Current fresh sale stopped successfully",
		"modifiedCount": count,
	})
}

func (h *Handler) handleDeleteSale(w http.ResponseWriter, r *http.Request) {
	windowID := chi.URLParam(r, "id")
	if err := h.sales.Delete(r.Context(), windowID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Fresh sale deleted successfully"})
}

func decodeJSON(r *http.Request, dst any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeDomainError maps error kinds to distinct status codes: validation 400,
// not found 404, conflict 409, auth 401/403, store outage 503.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, appcheckout.ErrNoItems),
		errors.Is(err, appcheckout.ErrInvalidQuantity),
		errors.Is(err, appcheckout.ErrIncompleteAddress),
		errors.Is(err, appcheckout.ErrMissingPhone),
		errors.Is(err, domcart.ErrInvalidQuantity),
		errors.Is(err, domcatalog.ErrInvalidQuantity),
		errors.Is(err, domorder.ErrInvalidStatus),
		errors.Is(err, domorder.ErrInvalidPaymentMethod),
		errors.Is(err, domorder.ErrNoLines),
		errors.Is(err, domorder.ErrInvalidQuantity),
		errors.Is(err, dompromo.ErrInvalidDiscount),
		errors.Is(err, dompromo.ErrEndTimeNotFuture):
		writeError(w, http.StatusBadRequest, err)
	case errors.Is(err, domcatalog.ErrNotFound),
		errors.Is(err, domcart.ErrItemNotFound),
		errors.Is(err, domorder.ErrNotFound),
		errors.Is(err, dompromo.ErrNotFound),
		errors.Is(err, domuser.ErrNotFound):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domcatalog.ErrInsufficientStock),
		errors.Is(err, domcatalog.ErrInactive),
		errors.Is(err, domorder.ErrConflict):
		writeError(w, http.StatusConflict, err)
	case errors.Is(err, domidentity.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, err)
	case errors.Is(err, domidentity.ErrForbidden):
		writeError(w, http.StatusForbidden, err)
	case errors.Is(err, storage.ErrUnavailable):
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}
