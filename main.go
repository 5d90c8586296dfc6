package main

import (
	"log"
	"time"

	"storefront-bff/common/logger"
	commonmw "storefront-bff/common/middleware"
	"storefront-bff/config"
	"storefront-bff/controllers"
	"storefront-bff/database"
	"storefront-bff/middleware"
	"storefront-bff/models"
	"storefront-bff/repository"
	"storefront-bff/routes"
	"storefront-bff/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	db, err := database.Connect(cfg, zlog)
	if err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := models.Migrate(db); err != nil {
		zlog.Fatal("Migration failed", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewGormUserRepository(db)
	txnRepo := repository.NewGormTransactionRepository(db)
	orderRepo := repository.NewGormOrderHistoryRepository(db)

	// Services
	tokenService, err := services.NewTokenService(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTExpiresIn, cfg.JWTRefreshExpiresIn)
	if err != nil {
		zlog.Fatal("Failed to initialize token service", zap.Error(err))
	}
	authService := services.NewAuthService(userRepo, tokenService)
	gateway := services.NewMidtransGateway(cfg.MidtransServerKey, cfg.MidtransEnv, cfg.MidtransWebhookURL)
	paymentService := services.NewPaymentService(userRepo, txnRepo, gateway, zlog)
	shopifyClient := services.NewShopifyClient(cfg.ShopifyShopName, cfg.ShopifyAPIKey, cfg.ShopifyAPISecret, cfg.ShopifyAPIVersion)
	checkoutService := services.NewCheckoutService(shopifyClient, zlog)
	reconciler := services.NewOrderReconciler(userRepo, orderRepo, zlog)
	orderHistoryService := services.NewOrderHistoryService(userRepo, orderRepo)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(commonmw.RequestLogger(zlog))
	r.Use(commonmw.SecurityHeaders())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, &routes.Handlers{
		Auth:         controllers.NewAuthController(authService, zlog),
		Midtrans:     controllers.NewMidtransController(paymentService, zlog),
		Shopify:      controllers.NewShopifyController(checkoutService, reconciler, cfg.ShopifyWebhookSecret, zlog),
		OrderHistory: controllers.NewOrderHistoryController(orderHistoryService, zlog),
		Authenticate: middleware.Authenticate(tokenService),
	})

	zlog.Info("Server starting", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		zlog.Fatal("Server failed", zap.Error(err))
	}
}
