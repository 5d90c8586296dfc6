package routes

import (
	"net/http"

	commonmw "storefront-bff/common/middleware"
	"storefront-bff/controllers"

	"github.com/gin-gonic/gin"
)

// Handlers bundles everything RegisterRoutes needs.
type Handlers struct {
	Auth         *controllers.AuthController
	Midtrans     *controllers.MidtransController
	Shopify      *controllers.ShopifyController
	OrderHistory *controllers.OrderHistoryController
	Authenticate gin.HandlerFunc
}

// RegisterRoutes wires the HTTP surface.
func RegisterRoutes(r *gin.Engine, h *Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.Use(commonmw.RateLimitMiddleware())
	{
		auth.POST("/signup", h.Auth.Signup)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh-token", h.Auth.RefreshToken)
	}

	midtrans := api.Group("/midtrans")
	{
		midtrans.POST("/create-transaction", h.Authenticate, h.Midtrans.CreateTransaction)
		midtrans.POST("/webhook", h.Midtrans.Webhook)
	}

	shopify := api.Group("/shopify")
	{
		shopify.POST("/create-checkout", h.Authenticate, h.Shopify.CreateCheckout)
		shopify.POST("/webhook", h.Shopify.Webhook)
	}

	orderHistory := api.Group("/order-history")
	{
		orderHistory.GET("/user", h.Authenticate, h.OrderHistory.ListForUser)
		orderHistory.GET("/email", h.OrderHistory.ListByEmail)
		orderHistory.GET("/shopify/:shopifyOrderId", h.OrderHistory.GetByShopifyID)
		orderHistory.GET("/check-signin", h.OrderHistory.CheckSignIn)
		orderHistory.GET("/my", h.Authenticate, h.OrderHistory.ListForUser)
		orderHistory.GET("/:orderId", h.Authenticate, h.OrderHistory.GetOwnedOrder)
	}
}
