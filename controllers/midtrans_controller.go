package controllers

import (
	"context"
	"net/http"

	"storefront-bff/models"
	"storefront-bff/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentServiceAPI abstracts the payment service for the controller and tests.
type PaymentServiceAPI interface {
	CreateTransaction(ctx context.Context, userID string, amount float64) (*models.Transaction, string, error)
	ReconcileNotification(ctx context.Context, notification services.MidtransNotification) (*models.Transaction, error)
}

// MidtransController handles checkout session creation and gateway webhooks.
type MidtransController struct {
	payments PaymentServiceAPI
	logger   *zap.Logger
}

// NewMidtransController creates a new MidtransController.
func NewMidtransController(payments PaymentServiceAPI, logger *zap.Logger) *MidtransController {
	return &MidtransController{payments: payments, logger: logger}
}

type createTransactionRequest struct {
	UserID string  `json:"userId" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

// CreateTransaction creates a pending transaction and a Snap token.
func (mc *MidtransController) CreateTransaction(c *gin.Context) {
	var req createTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "User ID and amount are required",
		})
		return
	}

	txn, snapToken, err := mc.payments.CreateTransaction(c.Request.Context(), req.UserID, req.Amount)
	if err != nil {
		mc.logger.Warn("Create transaction failed", zap.String("user_id", req.UserID), zap.Error(err))
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Transaction created successfully", gin.H{
		"transaction": txn,
		"snapToken":   snapToken,
	})
}

// Webhook receives Midtrans payment notifications.
func (mc *MidtransController) Webhook(c *gin.Context) {
	var notification services.MidtransNotification
	if err := c.ShouldBindJSON(&notification); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"status":  "error",
			"message": "Invalid notification payload",
		})
		return
	}

	if _, err := mc.payments.ReconcileNotification(c.Request.Context(), notification); err != nil {
		mc.logger.Warn("Payment webhook reconciliation failed",
			zap.String("midtrans_order_id", notification.OrderID),
			zap.Error(err),
		)
		respondError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, "Webhook processed successfully", nil)
}
