package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/storefront/backend/internal/application/cart"
	catalogapp "github.com/storefront/backend/internal/application/catalog"
	identityapp "github.com/storefront/backend/internal/application/identity"
	orderapp "github.com/storefront/backend/internal/application/order"
	procurementapp "github.com/storefront/backend/internal/application/procurement"
	reportapp "github.com/storefront/backend/internal/application/report"
	searchapp "github.com/storefront/backend/internal/application/search"
	tenantapp "github.com/storefront/backend/internal/application/tenant"
	"github.com/storefront/backend/internal/domain/cart"
	domainsearch "github.com/storefront/backend/internal/domain/search"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/cache"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/event"
	"github.com/storefront/backend/internal/infrastructure/logger"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	infrasearch "github.com/storefront/backend/internal/infrastructure/search"
	"github.com/storefront/backend/internal/infrastructure/storage"
	"github.com/storefront/backend/internal/interfaces/http/handler"
	"github.com/storefront/backend/internal/interfaces/http/middleware"
	"github.com/storefront/backend/internal/interfaces/http/router"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Initialize database connection
	db, err := persistence.NewDatabase(&cfg.Database, log)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Connect to Redis. Carts, the search index, and the token
	// blacklist fall back to in-process implementations when Redis is
	// unavailable, so a single-node deployment can run without it.
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	redisAvailable := true
	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(pingCtx).Err(); err != nil {
		redisAvailable = false
		log.Warn("Redis unavailable, using in-memory carts, search index, and token blacklist", zap.Error(err))
	}
	cancelPing()
	defer func() {
		_ = redisClient.Close()
	}()

	var (
		cartStore   cart.Store
		searchIndex domainsearch.Index
		blacklist   auth.TokenBlacklist
	)
	if redisAvailable {
		cartStore = cache.NewRedisCartStore(redisClient, cfg.Cart.TTL)
		searchIndex = infrasearch.NewRedisIndex(redisClient)
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	} else {
		cartStore = cache.NewInMemoryCartStore(cfg.Cart.TTL)
		searchIndex = infrasearch.NewInMemoryIndex()
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Object storage for product images and store logos
	var media catalogapp.MediaStorage
	if cfg.Storage.Bucket != "" {
		s3Media, err := storage.NewS3MediaStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		media = s3Media
		log.Info("Object storage configured", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		media = storage.NewInMemoryMediaStorage()
		log.Warn("No storage bucket configured, uploads are kept in memory")
	}

	// Initialize repositories
	tenantRepo := persistence.NewGormTenantRepository(db.DB)
	domainRepo := persistence.NewGormStoreDomainRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	variantRepo := persistence.NewGormVariantRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	supplierRepo := persistence.NewGormSupplierRepository(db.DB)
	poRepo := persistence.NewGormPurchaseOrderRepository(db.DB)
	reportRepo := persistence.NewGormRevenueReportRepository(db.DB)
	checkoutUow := persistence.NewGormUnitOfWork(db.DB)
	procurementUow := persistence.NewGormProcurementUnitOfWork(db.DB)

	// Initialize event bus
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Initialize application services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(userRepo, jwtService, blacklist, eventBus, log)
	profileService := identityapp.NewProfileService(userRepo, addressRepo)
	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo)
	variantUsage := persistence.NewGormVariantUsage(db.DB)
	productService := catalogapp.NewProductService(productRepo, variantRepo, reviewRepo, categoryRepo, media, variantUsage, eventBus, log)
	reviewService := catalogapp.NewReviewService(reviewRepo, productRepo)
	cartService := cartapp.NewService(cartStore, variantRepo, productRepo, log)
	checkoutService := orderapp.NewCheckoutService(checkoutUow, cartStore, productRepo, userRepo, addressRepo, eventBus, log)
	orderService := orderapp.NewService(orderRepo, checkoutUow, eventBus, log)
	supplierService := procurementapp.NewSupplierService(supplierRepo, poRepo)
	poService := procurementapp.NewPurchaseOrderService(poRepo, supplierRepo, variantRepo, procurementUow, eventBus, log)
	dashboardService := reportapp.NewDashboardService(reportRepo)
	queryService := searchapp.NewQueryService(searchIndex, cfg.Search)
	indexer := searchapp.NewIndexer(searchIndex, productRepo, variantRepo, log)
	storeService := tenantapp.NewStoreService(tenantRepo, domainRepo, media, eventBus, log)
	resolver := tenantapp.NewResolver(tenantRepo, domainRepo, cfg.Tenant, log)

	// Catalog changes flow into the search index asynchronously
	eventBus.Subscribe(indexer)
	log.Info("Search indexer subscribed", zap.Strings("event_types", indexer.EventTypes()))

	// Authentication middleware shared by handlers
	requireAuth := middleware.RequireAuth(middleware.AuthConfig{
		JWTService: jwtService,
		Blacklist:  blacklist,
		Logger:     log,
	})
	requireStaff := middleware.RequireStaff()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// Health check endpoint, outside store resolution
	systemHandler := handler.NewSystemHandler(cfg.App.Name)
	engine.GET("/health", systemHandler.Health)

	// All API routes run behind hostname-based store resolution and
	// the cart session cookie
	r := router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithMiddleware(
			middleware.ResolveTenant(resolver, log),
			middleware.CartSession(cfg.Cart),
		),
	)

	r.Register(handler.NewHomeHandler(categoryService, productService)).
		Register(handler.NewAuthHandler(authService, jwtService, requireAuth)).
		Register(handler.NewProfileHandler(profileService, requireAuth)).
		Register(handler.NewCategoryHandler(categoryService, requireAuth, requireStaff)).
		Register(handler.NewProductHandler(productService, requireAuth, requireStaff)).
		Register(handler.NewReviewHandler(reviewService, productService, requireAuth)).
		Register(handler.NewCartHandler(cartService)).
		Register(handler.NewOrderHandler(checkoutService, orderService, requireAuth, requireStaff)).
		Register(handler.NewSupplierHandler(supplierService, requireAuth, requireStaff)).
		Register(handler.NewPurchaseOrderHandler(poService, requireAuth, requireStaff)).
		Register(handler.NewReportHandler(dashboardService, requireAuth, requireStaff)).
		Register(handler.NewSearchHandler(queryService, indexer, requireAuth, requireStaff)).
		Register(handler.NewStoreHandler(storeService, resolver, requireAuth, requireStaff))

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
