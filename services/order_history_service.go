package services

import (
	"context"
	"errors"
	"net/http"

	apperrors "storefront-bff/common/errors"
	"storefront-bff/models"
	"storefront-bff/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SignInStatus reports whether an email belongs to a registered user.
type SignInStatus struct {
	IsSignedIn bool   `json:"isSignedIn"`
	UserID     string `json:"userId,omitempty"`
}

// OrderHistoryService is the read side of order history.
type OrderHistoryService struct {
	users  repository.UserRepository
	orders repository.OrderHistoryRepository
}

// NewOrderHistoryService creates a new OrderHistoryService.
func NewOrderHistoryService(users repository.UserRepository, orders repository.OrderHistoryRepository) *OrderHistoryService {
	return &OrderHistoryService{users: users, orders: orders}
}

// ListByUser returns a user's order history, newest first. An empty history
// is an empty slice, not an error.
func (s *OrderHistoryService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.OrderHistory, error) {
	orders, err := s.orders.ListByUserID(ctx, userID)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to retrieve order history", err)
	}
	return orders, nil
}

// ListByEmail returns order history for a bare email, newest first. Used by
// guest lookup flows, no authentication involved.
func (s *OrderHistoryService) ListByEmail(ctx context.Context, email string) ([]models.OrderHistory, error) {
	orders, err := s.orders.ListByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to retrieve order history", err)
	}
	return orders, nil
}

// GetByShopifyOrderID returns a single record; absence is NotFound.
func (s *OrderHistoryService) GetByShopifyOrderID(ctx context.Context, shopifyOrderID string) (*models.OrderHistory, error) {
	order, err := s.orders.FindByShopifyOrderID(ctx, shopifyOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to retrieve order", err)
	}
	return order, nil
}

// GetOwnedByShopifyOrderID returns the record only if the requester owns it.
func (s *OrderHistoryService) GetOwnedByShopifyOrderID(ctx context.Context, shopifyOrderID string, userID uuid.UUID) (*models.OrderHistory, error) {
	order, err := s.GetByShopifyOrderID(ctx, shopifyOrderID)
	if err != nil {
		return nil, err
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, apperrors.ErrForbidden
	}
	return order, nil
}

// CheckSignIn reports whether the email belongs to a registered user.
func (s *OrderHistoryService) CheckSignIn(ctx context.Context, email string) (*SignInStatus, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &SignInStatus{IsSignedIn: false}, nil
		}
		return nil, apperrors.New(http.StatusInternalServerError, "Failed to check sign in status", err)
	}
	return &SignInStatus{IsSignedIn: true, UserID: user.ID.String()}, nil
}
