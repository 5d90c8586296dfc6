package controllers

import (
	"context"
	"net/http"

	"storefront-bff/middleware"
	"storefront-bff/models"
	"storefront-bff/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OrderHistoryServiceAPI abstracts the order history reads for the
// controller and tests.
type OrderHistoryServiceAPI interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.OrderHistory, error)
	ListByEmail(ctx context.Context, email string) ([]models.OrderHistory, error)
	GetByShopifyOrderID(ctx context.Context, shopifyOrderID string) (*models.OrderHistory, error)
	GetOwnedByShopifyOrderID(ctx context.Context, shopifyOrderID string, userID uuid.UUID) (*models.OrderHistory, error)
	CheckSignIn(ctx context.Context, email string) (*services.SignInStatus, error)
}

// OrderHistoryController exposes order history queries.
type OrderHistoryController struct {
	orders OrderHistoryServiceAPI
	logger *zap.Logger
}

// NewOrderHistoryController creates a new OrderHistoryController.
func NewOrderHistoryController(orders OrderHistoryServiceAPI, logger *zap.Logger) *OrderHistoryController {
	return &OrderHistoryController{orders: orders, logger: logger}
}

// requesterID extracts the authenticated user's id from the context.
func requesterID(c *gin.Context) (uuid.UUID, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(identity.ID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// ListForUser returns the authenticated user's order history.
func (oc *OrderHistoryController) ListForUser(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "User not authenticated",
		})
		return
	}

	orders, err := oc.orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Order history retrieved successfully", orders)
}

// ListByEmail returns order history for a bare email, for guest lookups.
func (oc *OrderHistoryController) ListByEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Email parameter is required",
		})
		return
	}

	orders, err := oc.orders.ListByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Order history retrieved successfully", orders)
}

// GetByShopifyID returns one record by Shopify order id.
func (oc *OrderHistoryController) GetByShopifyID(c *gin.Context) {
	shopifyOrderID := c.Param("shopifyOrderId")

	order, err := oc.orders.GetByShopifyOrderID(c.Request.Context(), shopifyOrderID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Order history retrieved successfully", order)
}

// CheckSignIn reports whether the email belongs to a registered user.
func (oc *OrderHistoryController) CheckSignIn(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Email parameter is required",
		})
		return
	}

	status, err := oc.orders.CheckSignIn(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "User sign in status checked successfully", status)
}

// GetOwnedOrder returns one record only if the requester owns it.
func (oc *OrderHistoryController) GetOwnedOrder(c *gin.Context) {
	userID, ok := requesterID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"status":  "error",
			"message": "User not authenticated",
		})
		return
	}

	order, err := oc.orders.GetOwnedByShopifyOrderID(c.Request.Context(), c.Param("orderId"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Order history retrieved successfully", order)
}
