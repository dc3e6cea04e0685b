package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trendora-backend/config"
	"trendora-backend/internal/delivery/http/middleware"
	v1 "trendora-backend/internal/delivery/http/v1"
	"trendora-backend/internal/infrastructure/cache"
	"trendora-backend/internal/infrastructure/notification"
	"trendora-backend/internal/infrastructure/payment"
	"trendora-backend/internal/repository/postgres"
	"trendora-backend/internal/usecase"
	"trendora-backend/pkg/logger"
	"trendora-backend/pkg/storage"
	"trendora-backend/pkg/utils"

	"github.com/NYTimes/gziphandler"
	"golang.org/x/time/rate"
)

func main() {
	cfg := config.LoadConfig()
	utils.SetSecret(cfg.JWTSecret)

	// Initialize Logger
	logger.Init(cfg.Env, cfg.LogLevel)
	log := logger.Get()

	// Initialize Database
	pgxPool, err := postgres.NewPgxPool(context.Background(), cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	log.Info().Msg("Successfully connected to PostgreSQL via pgx")

	// Initialize Repositories
	userRepo := postgres.NewUserRepository(pgxPool)
	productRepo := postgres.NewProductRepository(pgxPool)
	categoryRepo := postgres.NewCategoryRepository(pgxPool)
	orderRepo := postgres.NewOrderRepository(pgxPool)
	txManager := postgres.NewTransactionManager(pgxPool)

	// Initialize Cache (In-Memory)
	memCache := cache.NewMemoryCache(30*time.Minute, 60*time.Minute)

	// --- Storage Module (R2) ---
	r2Storage, err := storage.NewR2Storage(
		context.Background(),
		cfg.R2AccountID,
		cfg.R2AccessKeyID,
		cfg.R2AccessKeySecret,
		cfg.R2BucketName,
		cfg.R2PublicURL,
		cfg.R2UploadTimeout,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize R2 Storage")
	}
	uploadHandler := v1.NewUploadHandler(r2Storage, cfg.MaxUploadSizeMB)

	// Notification Module: push sender behind the fire-and-forget dispatcher
	pushSender := notification.NewPushSender(cfg.PushEndpoint, userRepo)
	dispatcher := notification.NewDispatcher(pushSender, cfg.NotifyQueueSize)

	// Payment Module
	stripeGateway := payment.NewStripeGateway(cfg.StripeSecretKey)

	// Set up Router
	mux := http.NewServeMux()

	// Catalog Module
	catalogUC := usecase.NewCatalogUsecase(productRepo, categoryRepo, r2Storage, memCache, txManager, cfg)
	catalogHandler := v1.NewCatalogHandler(catalogUC)
	adminCatalogHandler := v1.NewAdminCatalogHandler(catalogUC)

	// Order Module
	orderUC := usecase.NewOrderUsecase(orderRepo, productRepo, userRepo, dispatcher, stripeGateway, memCache, cfg)
	orderHandler := v1.NewOrderHandler(orderUC)
	adminOrderHandler := v1.NewAdminOrderHandler(orderUC)

	adminOnly := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(middleware.AdminMiddleware(h))
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.AuthMiddleware(h)
	}

	// Catalog (Public)
	mux.HandleFunc("GET /api/v1/products", catalogHandler.ListProducts)
	mux.HandleFunc("GET /api/v1/products/top", catalogHandler.GetTopRated)
	mux.HandleFunc("GET /api/v1/products/{id}", catalogHandler.GetProduct)
	mux.Handle("POST /api/v1/products/{id}/reviews", authed(catalogHandler.SubmitReview))

	// Static option lists
	metaHandler := v1.NewMetaHandler()
	mux.HandleFunc("GET /api/v1/meta/order-options", metaHandler.GetOrderOptions)

	// Uploads
	mux.Handle("POST /api/v1/upload", adminOnly(uploadHandler.UploadFile))

	// Admin Product Management
	mux.Handle("POST /api/v1/admin/products", adminOnly(adminCatalogHandler.CreateProduct))
	mux.Handle("PUT /api/v1/admin/products/{id}", adminOnly(adminCatalogHandler.UpdateProduct))
	mux.Handle("PUT /api/v1/admin/products/{id}/variants", adminOnly(adminCatalogHandler.SetVariantImages))
	mux.Handle("DELETE /api/v1/admin/products/{id}/images", adminOnly(adminCatalogHandler.DeleteProductImage))
	mux.Handle("DELETE /api/v1/admin/products/{id}", adminOnly(adminCatalogHandler.DeleteProduct))

	// Orders (Protected)
	mux.Handle("POST /api/v1/orders", authed(orderHandler.CreateOrder))
	mux.Handle("GET /api/v1/orders", authed(orderHandler.GetMyOrders))
	mux.Handle("GET /api/v1/orders/{id}", authed(orderHandler.GetOrder))
	mux.Handle("POST /api/v1/orders/{id}/return", authed(orderHandler.RequestReturn))
	mux.Handle("POST /api/v1/orders/{id}/replace", authed(orderHandler.RequestReplace))

	// Payments
	mux.Handle("POST /api/v1/payments", authed(orderHandler.CreatePaymentIntent))

	// Admin Order Management
	mux.Handle("GET /api/v1/admin/orders", adminOnly(adminOrderHandler.GetAllOrders))
	mux.Handle("GET /api/v1/admin/orders/{id}", adminOnly(adminOrderHandler.GetOrder))
	mux.Handle("PUT /api/v1/admin/orders/{id}/advance", adminOnly(adminOrderHandler.Advance))
	mux.Handle("PATCH /api/v1/admin/orders/{id}/status", adminOnly(adminOrderHandler.SetStatus))
	mux.Handle("DELETE /api/v1/admin/orders/{id}", adminOnly(adminOrderHandler.DeleteOrder))

	// Health Check
	healthHandler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "ok", "db": "connected"}`))
	}
	mux.HandleFunc("GET /api/v1/health", healthHandler)
	mux.HandleFunc("GET /health", healthHandler) // Support root health check for Load Balancers

	addr := fmt.Sprintf(":%s", cfg.Port)

	// Initialize Rate Limiter with lifecycle management
	rateLimiter := middleware.NewRateLimiter(
		context.Background(),
		rate.Limit(cfg.RateLimitPerSec),
		cfg.RateLimitBurst,
		time.Minute,   // cleanup period
		3*time.Minute, // client TTL
	)

	// Apply CORS (with config injection), Request Logger, Rate Limit, and Gzip
	handler := middleware.NewCORSMiddleware(cfg)(mux)
	handler = middleware.RequestLogger(handler)
	handler = rateLimiter.Middleware()(handler)
	handler = gziphandler.GzipHandler(handler)

	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Graceful Shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	logger.ServiceStart("trendora-backend", "v1", cfg.Port)

	// Wait for interrupt signal via channel
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")

	rateLimiter.Shutdown()
	dispatcher.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	pgxPool.Close()
	log.Info().Msg("Server exited properly")
}
