package services

import (
	"context"
	"net/http"

	apperrors "storefront-bff/common/errors"

	"go.uber.org/zap"
)

// LineItem is one entry in a checkout request.
type LineItem struct {
	VariantID int64 `json:"variantId" binding:"required"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

// CustomerInfo identifies the buyer for a draft order. Addresses are passed
// through to Shopify untouched.
type CustomerInfo struct {
	Email           string                 `json:"email" binding:"required,email"`
	ShippingAddress map[string]interface{} `json:"shippingAddress"`
	BillingAddress  map[string]interface{} `json:"billingAddress"`
}

// CheckoutResult is what a successful checkout creation returns.
type CheckoutResult struct {
	CheckoutURL  string `json:"checkoutUrl"`
	DraftOrderID int64  `json:"draftOrderId"`
}

// DraftOrderCreator abstracts the Shopify client for tests.
type DraftOrderCreator interface {
	CreateDraftOrder(ctx context.Context, lineItems []LineItem, customer CustomerInfo) (*DraftOrder, error)
}

// CheckoutService creates hosted checkouts through the storefront platform.
type CheckoutService struct {
	shopify DraftOrderCreator
	logger  *zap.Logger
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(shopify DraftOrderCreator, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{shopify: shopify, logger: logger}
}

// CreateCheckout creates a draft order and returns its checkout URL.
func (s *CheckoutService) CreateCheckout(ctx context.Context, lineItems []LineItem, customer CustomerInfo) (*CheckoutResult, error) {
	draft, err := s.shopify.CreateDraftOrder(ctx, lineItems, customer)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to create checkout", err)
	}

	s.logger.Info("Created draft order",
		zap.Int64("draft_order_id", draft.ID),
		zap.String("email", customer.Email),
	)

	return &CheckoutResult{
		CheckoutURL:  draft.CheckoutURL,
		DraftOrderID: draft.ID,
	}, nil
}
