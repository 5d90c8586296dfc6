package controllers

import (
	"context"
	"io"
	"net/http"

	"storefront-bff/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Shopify webhook headers.
const (
	HeaderShopifyHmac  = "X-Shopify-Hmac-Sha256"
	HeaderShopifyTopic = "X-Shopify-Topic"
)

// CheckoutServiceAPI abstracts checkout creation for the controller and tests.
type CheckoutServiceAPI interface {
	CreateCheckout(ctx context.Context, lineItems []services.LineItem, customer services.CustomerInfo) (*services.CheckoutResult, error)
}

// WebhookProcessor abstracts the order reconciler for the controller and tests.
type WebhookProcessor interface {
	Process(ctx context.Context, topic string, rawBody []byte) error
}

// ShopifyController handles checkout creation and storefront webhooks.
type ShopifyController struct {
	checkout      CheckoutServiceAPI
	reconciler    WebhookProcessor
	webhookSecret string
	logger        *zap.Logger
}

// NewShopifyController creates a new ShopifyController.
func NewShopifyController(checkout CheckoutServiceAPI, reconciler WebhookProcessor, webhookSecret string, logger *zap.Logger) *ShopifyController {
	return &ShopifyController{
		checkout:      checkout,
		reconciler:    reconciler,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

type createCheckoutRequest struct {
	LineItems    []services.LineItem   `json:"lineItems" binding:"required,min=1,dive"`
	CustomerInfo services.CustomerInfo `json:"customerInfo" binding:"required"`
}

// CreateCheckout creates a draft order and returns its checkout URL.
func (sc *ShopifyController) CreateCheckout(c *gin.Context) {
	var req createCheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Line items and customer information with email are required",
		})
		return
	}

	result, err := sc.checkout.CreateCheckout(c.Request.Context(), req.LineItems, req.CustomerInfo)
	if err != nil {
		sc.logger.Warn("Create checkout failed", zap.Error(err))
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Checkout created successfully", result)
}

// Webhook receives Shopify order webhooks. The raw body is read before any
// parsing so the HMAC check runs over the exact bytes received.
func (sc *ShopifyController) Webhook(c *gin.Context) {
	rawBody, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Failed to read request body",
		})
		return
	}

	signature := c.GetHeader(HeaderShopifyHmac)
	if signature == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "Missing HMAC header",
		})
		return
	}

	if !services.VerifyWebhookSignature(sc.webhookSecret, rawBody, signature) {
		sc.logger.Warn("Shopify webhook HMAC verification failed")
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "HMAC verification failed",
		})
		return
	}

	topic := c.GetHeader(HeaderShopifyTopic)
	if err := sc.reconciler.Process(c.Request.Context(), topic, rawBody); err != nil {
		sc.logger.Error("Shopify webhook processing failed",
			zap.String("topic", topic),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Webhook processed successfully", nil)
}
