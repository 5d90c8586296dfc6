package controllers

import (
	"context"
	"net/http"
	"testing"

	apperrors "storefront-bff/common/errors"
	"storefront-bff/models"
	"storefront-bff/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockPaymentService struct{ mock.Mock }

func (m *MockPaymentService) CreateTransaction(ctx context.Context, userID string, amount float64) (*models.Transaction, string, error) {
	args := m.Called(ctx, userID, amount)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.Transaction), args.String(1), args.Error(2)
}
func (m *MockPaymentService) ReconcileNotification(ctx context.Context, notification services.MidtransNotification) (*models.Transaction, error) {
	args := m.Called(ctx, notification)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Transaction), args.Error(1)
}

func midtransRouter(payments PaymentServiceAPI) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewMidtransController(payments, zap.NewNop())
	r.POST("/api/midtrans/create-transaction", ctrl.CreateTransaction)
	r.POST("/api/midtrans/webhook", ctrl.Webhook)
	return r
}

func TestCreateTransactionEndpoint(t *testing.T) {
	userID := uuid.New()
	txn := &models.Transaction{
		ID:              uuid.New(),
		UserID:          userID,
		Amount:          150000,
		Status:          models.TransactionPending,
		MidtransOrderID: "ORDER-" + uuid.NewString(),
	}

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockPayments := new(MockPaymentService)
		mockPayments.On("CreateTransaction", mock.Anything, userID.String(), float64(150000)).
			Return(txn, "snap-token-123", nil).Once()

		// Act
		w := performJSON(midtransRouter(mockPayments), http.MethodPost, "/api/midtrans/create-transaction", gin.H{
			"userId": userID.String(),
			"amount": 150000,
		})

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		data := body["data"].(map[string]interface{})
		assert.Equal(t, "snap-token-123", data["snapToken"])
		mockPayments.AssertExpectations(t)
	})

	t.Run("Missing amount", func(t *testing.T) {
		mockPayments := new(MockPaymentService)
		w := performJSON(midtransRouter(mockPayments), http.MethodPost, "/api/midtrans/create-transaction", gin.H{
			"userId": userID.String(),
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockPayments.AssertNotCalled(t, "CreateTransaction")
	})

	t.Run("Non-positive amount", func(t *testing.T) {
		mockPayments := new(MockPaymentService)
		w := performJSON(midtransRouter(mockPayments), http.MethodPost, "/api/midtrans/create-transaction", gin.H{
			"userId": userID.String(),
			"amount": -5,
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockPayments.AssertNotCalled(t, "CreateTransaction")
	})

	t.Run("Unknown user", func(t *testing.T) {
		mockPayments := new(MockPaymentService)
		mockPayments.On("CreateTransaction", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, "", apperrors.ErrUserNotFound).Once()

		w := performJSON(midtransRouter(mockPayments), http.MethodPost, "/api/midtrans/create-transaction", gin.H{
			"userId": uuid.NewString(),
			"amount": 150000,
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMidtransWebhookEndpoint(t *testing.T) {
	orderID := "ORDER-" + uuid.NewString()

	t.Run("Success", func(t *testing.T) {
		// Arrange
		mockPayments := new(MockPaymentService)
		mockPayments.On("ReconcileNotification", mock.Anything, mock.MatchedBy(func(n services.MidtransNotification) bool {
			return n.OrderID == orderID && n.TransactionStatus == "settlement"
		})).Return(&models.Transaction{Status: models.TransactionSuccess}, nil).Once()

		// Act
		w := performJSON(midtransRouter(mockPayments), http.MethodPost, "/api/midtrans/webhook", gin.H{
			"order_id":           orderID,
			"transaction_status": "settlement",
		})

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Webhook processed successfully")
		mockPayments.AssertExpectations(t)
	})

	t.Run("Unknown order", func(t *testing.T) {
		mockPayments := new(MockPaymentService)
		mockPayments.On("ReconcileNotification", mock.Anything, mock.Anything).
			Return(nil, apperrors.ErrTransactionNotFound).Once()

		w := performJSON(midtransRouter(mockPayments), http.MethodPost, "/api/midtrans/webhook", gin.H{
			"order_id":           "ORDER-unknown",
			"transaction_status": "settlement",
		})

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Malformed payload", func(t *testing.T) {
		mockPayments := new(MockPaymentService)
		req := performJSON(midtransRouter(mockPayments), http.MethodPost, "/api/midtrans/webhook", nil)

		assert.Equal(t, http.StatusBadRequest, req.Code)
		mockPayments.AssertNotCalled(t, "ReconcileNotification")
	})
}
