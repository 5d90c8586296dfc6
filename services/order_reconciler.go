package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	apperrors "storefront-bff/common/errors"
	"storefront-bff/models"
	"storefront-bff/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Webhook topics handled by the reconciler.
const (
	TopicOrdersCreate    = "orders/create"
	TopicOrdersPaid      = "orders/paid"
	TopicOrdersCancelled = "orders/cancelled"
)

// VerifyWebhookSignature computes an HMAC-SHA256 over the exact raw request
// body and compares it against the base64 digest Shopify supplies. The body
// must be the bytes as received; re-encoding a parsed payload produces false
// rejections.
func VerifyWebhookSignature(secret string, rawBody []byte, signature string) bool {
	if signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(rawBody)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// shopifyOrderEvent is the slice of a webhook payload the reconciler reads.
// The full raw body is persisted alongside the derived status.
type shopifyOrderEvent struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Customer *struct {
		Email string `json:"email"`
	} `json:"customer"`
}

func (e *shopifyOrderEvent) customerEmail() string {
	if e.Email != "" {
		return e.Email
	}
	if e.Customer != nil {
		return e.Customer.Email
	}
	return ""
}

// OrderReconciler maps inbound Shopify webhook events onto persisted
// order-history rows, correlating payloads to local users by email and
// deduplicating by Shopify order id.
type OrderReconciler struct {
	users  repository.UserRepository
	orders repository.OrderHistoryRepository
	logger *zap.Logger
}

// NewOrderReconciler creates a new OrderReconciler.
func NewOrderReconciler(users repository.UserRepository, orders repository.OrderHistoryRepository, logger *zap.Logger) *OrderReconciler {
	return &OrderReconciler{users: users, orders: orders, logger: logger}
}

// Process applies one webhook event. Unknown topics are logged and ignored.
// The caller must verify the signature before calling Process.
func (r *OrderReconciler) Process(ctx context.Context, topic string, rawBody []byte) error {
	var event shopifyOrderEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return apperrors.New(http.StatusBadRequest, "Invalid webhook payload", err)
	}
	if event.ID == 0 {
		return apperrors.New(http.StatusBadRequest, "Webhook payload missing order id", nil)
	}

	orderID := strconv.FormatInt(event.ID, 10)

	switch topic {
	case TopicOrdersCreate:
		return r.handleOrderCreated(ctx, orderID, event.customerEmail(), rawBody)
	case TopicOrdersPaid:
		return r.handleOrderPaid(ctx, orderID, event.customerEmail(), rawBody)
	case TopicOrdersCancelled:
		return r.handleOrderCancelled(ctx, orderID, rawBody)
	default:
		r.logger.Info("Unhandled webhook topic",
			zap.String("topic", topic),
			zap.String("shopify_order_id", orderID),
		)
		return nil
	}
}

// handleOrderCreated records a new order as abandoned. Events whose email
// does not resolve to a registered user are dropped.
func (r *OrderReconciler) handleOrderCreated(ctx context.Context, orderID, email string, rawBody []byte) error {
	user, err := r.resolveUser(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		r.logger.Info("Dropping orders/create for unregistered email",
			zap.String("shopify_order_id", orderID),
			zap.String("email", email),
		)
		return nil
	}

	order := &models.OrderHistory{
		ID:             uuid.New(),
		UserID:         &user.ID,
		Email:          email,
		ShopifyOrderID: orderID,
		Status:         models.OrderAbandoned,
		OrderData:      string(rawBody),
	}
	if err := r.orders.Upsert(ctx, order); err != nil {
		return apperrors.New(http.StatusInternalServerError, "Failed to record order", err)
	}

	r.logger.Info("Recorded order created",
		zap.String("shopify_order_id", orderID),
		zap.String("user_id", user.ID.String()),
	)
	return nil
}

// handleOrderPaid records the order as paid. Unlike orders/create, an
// unresolved email still produces a row keyed by the bare email so paid
// guest orders are not lost.
func (r *OrderReconciler) handleOrderPaid(ctx context.Context, orderID, email string, rawBody []byte) error {
	user, err := r.resolveUser(ctx, email)
	if err != nil {
		return err
	}

	order := &models.OrderHistory{
		ID:             uuid.New(),
		Email:          email,
		ShopifyOrderID: orderID,
		Status:         models.OrderPaid,
		OrderData:      string(rawBody),
	}
	if user != nil {
		order.UserID = &user.ID
	}

	if err := r.orders.Upsert(ctx, order); err != nil {
		return apperrors.New(http.StatusInternalServerError, "Failed to record paid order", err)
	}

	r.logger.Info("Recorded order paid",
		zap.String("shopify_order_id", orderID),
		zap.Bool("resolved_user", user != nil),
	)
	return nil
}

// handleOrderCancelled marks an existing order cancelled. A cancellation for
// an order we never saw is a no-op.
func (r *OrderReconciler) handleOrderCancelled(ctx context.Context, orderID string, rawBody []byte) error {
	rows, err := r.orders.UpdateByShopifyOrderID(ctx, orderID, map[string]interface{}{
		"status":     models.OrderCancelled,
		"order_data": string(rawBody),
		"updated_at": time.Now(),
	})
	if err != nil {
		return apperrors.New(http.StatusInternalServerError, "Failed to cancel order", err)
	}
	if rows == 0 {
		r.logger.Info("Cancellation for unknown order ignored",
			zap.String("shopify_order_id", orderID),
		)
	}
	return nil
}

// resolveUser maps a webhook email to a local user. A missing user is not an
// error; the caller decides whether to drop or fall back.
func (r *OrderReconciler) resolveUser(ctx context.Context, email string) (*models.User, error) {
	if email == "" {
		return nil, nil
	}
	user, err := r.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to resolve user", err)
	}
	return user, nil
}
