package services

import (
	"context"
	"errors"
	"net/http"

	apperrors "storefront-bff/common/errors"
	"storefront-bff/models"
	"storefront-bff/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MidtransNotification is the webhook payload posted by the gateway.
type MidtransNotification struct {
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	StatusMessage     string `json:"status_message"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
	OrderID           string `json:"order_id"`
	MerchantID        string `json:"merchant_id"`
	GrossAmount       string `json:"gross_amount"`
	FraudStatus       string `json:"fraud_status"`
	Currency          string `json:"currency"`
}

// PaymentService creates checkout sessions and reconciles gateway webhooks
// onto persisted transactions.
type PaymentService struct {
	users        repository.UserRepository
	transactions repository.TransactionRepository
	gateway      SnapGateway
	logger       *zap.Logger
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(users repository.UserRepository, transactions repository.TransactionRepository, gateway SnapGateway, logger *zap.Logger) *PaymentService {
	return &PaymentService{
		users:        users,
		transactions: transactions,
		gateway:      gateway,
		logger:       logger,
	}
}

// CreateTransaction persists a pending transaction and obtains a Snap token
// from the gateway. If the gateway call fails the pending row remains; the
// webhook can never reference a transaction we did not record.
func (s *PaymentService) CreateTransaction(ctx context.Context, userID string, amount float64) (*models.Transaction, string, error) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		return nil, "", apperrors.New(http.StatusBadRequest, "Invalid user ID", err)
	}

	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", apperrors.ErrUserNotFound
		}
		return nil, "", apperrors.New(http.StatusInternalServerError, "Failed to look up user", err)
	}

	orderID := "ORDER-" + uuid.NewString()

	txn := &models.Transaction{
		ID:              uuid.New(),
		UserID:          user.ID,
		Amount:          amount,
		Status:          models.TransactionPending,
		MidtransOrderID: orderID,
	}

	if err := s.transactions.Create(ctx, txn); err != nil {
		return nil, "", apperrors.New(http.StatusInternalServerError, "Failed to create transaction", err)
	}

	snapToken, err := s.gateway.CreateSnapToken(orderID, amount, user.Username, user.Email)
	if err != nil {
		s.logger.Error("Snap token request failed, pending transaction kept",
			zap.String("midtrans_order_id", orderID),
			zap.Error(err),
		)
		return nil, "", apperrors.New(http.StatusInternalServerError, "Failed to create payment session", err)
	}

	return txn, snapToken, nil
}

// ReconcileNotification maps a gateway webhook onto the transaction it
// references and persists the derived status. The write is unconditional:
// replaying the same event is a no-op in effect, but a late out-of-order
// event wins regardless of the current status.
func (s *PaymentService) ReconcileNotification(ctx context.Context, notification MidtransNotification) (*models.Transaction, error) {
	txn, err := s.transactions.FindByMidtransOrderID(ctx, notification.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to look up transaction", err)
	}

	status := mapMidtransStatus(notification.TransactionStatus)

	if err := s.transactions.UpdateStatusByMidtransOrderID(ctx, notification.OrderID, status); err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to update transaction status", err)
	}

	s.logger.Info("Reconciled payment notification",
		zap.String("midtrans_order_id", notification.OrderID),
		zap.String("gateway_status", notification.TransactionStatus),
		zap.String("status", string(status)),
	)

	txn.Status = status
	return txn, nil
}

// mapMidtransStatus translates the gateway's transaction-status vocabulary
// to the internal enumeration. Unrecognized values are treated as pending.
func mapMidtransStatus(gatewayStatus string) models.TransactionStatus {
	switch gatewayStatus {
	case "capture", "settlement":
		return models.TransactionSuccess
	case "deny", "cancel", "failure":
		return models.TransactionFailed
	case "expire":
		return models.TransactionExpired
	default:
		return models.TransactionPending
	}
}
