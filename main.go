package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	appcart "github.com/freshkart/storefront/internal/application/cart"
	appcheckout "github.com/freshkart/storefront/internal/application/checkout"
	apporder "github.com/freshkart/storefront/internal/application/order"
	apppromo "github.com/freshkart/storefront/internal/application/promotion"
	domcart "github.com/freshkart/storefront/internal/domain/cart"
	domcatalog "github.com/freshkart/storefront/internal/domain/catalog"
	domidentity "github.com/freshkart/storefront/internal/domain/identity"
	domuser "github.com/freshkart/storefront/internal/domain/user"
	"github.com/freshkart/storefront/internal/infrastructure/audit"
	"github.com/freshkart/storefront/internal/infrastructure/eventbus"
	"github.com/freshkart/storefront/internal/infrastructure/httpapi"
	"github.com/freshkart/storefront/internal/infrastructure/id"
	"github.com/freshkart/storefront/internal/infrastructure/memory"
	rediscart "github.com/freshkart/storefront/internal/infrastructure/redis"
	"github.com/freshkart/storefront/internal/pkg/logging"
)

func main() {
	serviceName := getenvDefault("SERVICE_NAME", "freshkart")
	env := getenvDefault("ENV", "dev")
	addr := getenvDefault("ADDR", ":8080")

	baseLogger := logging.MustNewLogger(serviceName, env)
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	systemLogger := logging.WithTrace(baseLogger, "system", "system")

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpDurations := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP request handling in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
	auditEvents := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "domain_events_total",
			Help: "Count of domain events observed by the audit worker.",
		},
		[]string{"event"},
	)
	prometheus.MustRegister(httpRequests, httpDurations, auditEvents)

	productRepo := memory.NewProductRepository()
	orderRepo := memory.NewOrderRepository()
	promotionRepo := memory.NewPromotionRepository()
	userRepo := memory.NewUserRepository()
	idGenerator := id.NewUUIDGenerator()

	var cartRepo domcart.Repository = memory.NewCartRepository()
	if redisAddr := os.Getenv("REDIS_ADDR"); redisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: redisAddr})
		cartRepo = rediscart.NewCartRepository(client, serviceName, 0)
		systemLogger.Info("cart_store_redis", zap.String("addr", redisAddr))
	}

	bus := eventbus.NewBus(baseLogger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	auditWorker := audit.New(bus, baseLogger, auditEvents)
	auditWorker.Start()

	cartService := appcart.NewService(cartRepo, productRepo)
	promotionService := apppromo.NewService(promotionRepo, productRepo, idGenerator, bus)
	checkoutService := appcheckout.NewService(
		productRepo, productRepo, cartRepo, userRepo, orderRepo, promotionRepo, idGenerator, bus,
	)
	orderService := apporder.NewService(orderRepo, bus)

	tokenProvider := memory.NewTokenProvider()
	if token := os.Getenv("ADMIN_TOKEN"); token != "" {
		tokenProvider.Register(token, domidentity.Identity{UserID: "admin", Role: domidentity.RoleAdmin})
	}
	if env == "dev" {
		seedDemo(systemLogger, productRepo, userRepo, tokenProvider)
	}

	handler := httpapi.NewHandler(cartService, checkoutService, orderService, promotionService)
	auth := httpapi.NewAuth(tokenProvider)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router(auth, httpapi.Observability(baseLogger, httpRequests, httpDurations)))

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		systemLogger.Info("http_server_start",
			zap.String("addr", server.Addr),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			systemLogger.Error("http_server_error",
				zap.Error(err),
			)
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		systemLogger.Error("http_server_shutdown_error",
			zap.Error(err),
		)
	} else {
		systemLogger.Info("http_server_stopped")
	}
}

// seedDemo loads a handful of records so a dev instance is usable without the
// (out-of-scope) catalog and registration surfaces.
func seedDemo(
	logger *zap.Logger,
	products *memory.ProductRepository,
	users *memory.UserRepository,
	tokens *memory.TokenProvider,
) {
	ctx := context.Background()
	now := time.Now().UTC()

	demoProducts := []*domcatalog.Product{
		{
			ID:       "p-espresso-maker",
			Name:     "Espresso Maker",
			Price:    decimal.RequireFromString("120"),
			Category: "home",
			Stock:    25,
			IsActive: true,
			RegionPrices: map[string]domcatalog.RegionPrice{
				"INDIA": {Price: decimal.RequireFromString("8999"), Currency: "INR"},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:        "p-trail-shoes",
			Name:      "Trail Running Shoes",
			Price:     decimal.RequireFromString("85.50"),
			Category:  "sports",
			Stock:     40,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	for _, p := range demoProducts {
		if err := products.Save(ctx, p); err != nil {
			logger.Warn("seed_product_failed", zap.String("product_id", p.ID), zap.Error(err))
		}
	}

	demoUser := &domuser.User{
		ID:        "u-demo",
		FirstName: "Demo",
		EmailID:   "demo@example.com",
		Phone:     "+1-555-0100",
		Role:      "user",
	}
	if err := users.Save(ctx, demoUser); err != nil {
		logger.Warn("seed_user_failed", zap.Error(err))
	}
	tokens.Register("dev-user-token", domidentity.Identity{UserID: "u-demo", Role: "user"})

	logger.Info("demo_data_seeded",
		zap.Int("products", len(demoProducts)),
	)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
