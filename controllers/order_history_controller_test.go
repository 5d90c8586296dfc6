package controllers

import (
	"context"
	"net/http"
	"testing"

	apperrors "storefront-bff/common/errors"
	"storefront-bff/middleware"
	"storefront-bff/models"
	"storefront-bff/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type MockOrderHistoryService struct{ mock.Mock }

func (m *MockOrderHistoryService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.OrderHistory, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderHistory), args.Error(1)
}
func (m *MockOrderHistoryService) ListByEmail(ctx context.Context, email string) ([]models.OrderHistory, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OrderHistory), args.Error(1)
}
func (m *MockOrderHistoryService) GetByShopifyOrderID(ctx context.Context, shopifyOrderID string) (*models.OrderHistory, error) {
	args := m.Called(ctx, shopifyOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderHistory), args.Error(1)
}
func (m *MockOrderHistoryService) GetOwnedByShopifyOrderID(ctx context.Context, shopifyOrderID string, userID uuid.UUID) (*models.OrderHistory, error) {
	args := m.Called(ctx, shopifyOrderID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.OrderHistory), args.Error(1)
}
func (m *MockOrderHistoryService) CheckSignIn(ctx context.Context, email string) (*services.SignInStatus, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.SignInStatus), args.Error(1)
}

// identityStub injects a decoded identity the way the auth middleware would.
func identityStub(identity services.Identity) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.IdentityKey, identity)
		c.Next()
	}
}

func orderHistoryRouter(svc OrderHistoryServiceAPI, authed *services.Identity) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	ctrl := NewOrderHistoryController(svc, zap.NewNop())

	group := r.Group("/api/order-history")
	if authed != nil {
		group.Use(identityStub(*authed))
	}
	group.GET("/user", ctrl.ListForUser)
	group.GET("/email", ctrl.ListByEmail)
	group.GET("/shopify/:shopifyOrderId", ctrl.GetByShopifyID)
	group.GET("/check-signin", ctrl.CheckSignIn)
	group.GET("/:orderId", ctrl.GetOwnedOrder)
	return r
}

func TestListForUserEndpoint(t *testing.T) {
	userID := uuid.New()
	identity := &services.Identity{ID: userID.String(), Username: "jdoe", Email: "jdoe@example.com"}

	t.Run("Returns orders newest first", func(t *testing.T) {
		// Arrange
		mockOrders := new(MockOrderHistoryService)
		mockOrders.On("ListByUser", mock.Anything, userID).Return([]models.OrderHistory{
			{ShopifyOrderID: "1002", Status: models.OrderPaid},
			{ShopifyOrderID: "1001", Status: models.OrderAbandoned},
		}, nil).Once()
		r := orderHistoryRouter(mockOrders, identity)

		// Act
		w := performJSON(r, http.MethodGet, "/api/order-history/user", nil)

		// Assert
		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, "success", body["status"])
		data := body["data"].([]interface{})
		assert.Len(t, data, 2)
		mockOrders.AssertExpectations(t)
	})

	t.Run("Empty history is an empty list", func(t *testing.T) {
		mockOrders := new(MockOrderHistoryService)
		mockOrders.On("ListByUser", mock.Anything, userID).Return([]models.OrderHistory{}, nil).Once()
		r := orderHistoryRouter(mockOrders, identity)

		w := performJSON(r, http.MethodGet, "/api/order-history/user", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].([]interface{})
		assert.Empty(t, data)
	})

	t.Run("No identity on context", func(t *testing.T) {
		mockOrders := new(MockOrderHistoryService)
		r := orderHistoryRouter(mockOrders, nil)

		w := performJSON(r, http.MethodGet, "/api/order-history/user", nil)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		mockOrders.AssertNotCalled(t, "ListByUser")
	})
}

func TestListByEmailEndpoint(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockOrders := new(MockOrderHistoryService)
		mockOrders.On("ListByEmail", mock.Anything, "guest@example.com").Return([]models.OrderHistory{
			{ShopifyOrderID: "2001", Status: models.OrderPaid, Email: "guest@example.com"},
		}, nil).Once()
		r := orderHistoryRouter(mockOrders, nil)

		w := performJSON(r, http.MethodGet, "/api/order-history/email?email=guest@example.com", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockOrders.AssertExpectations(t)
	})

	t.Run("Missing email parameter", func(t *testing.T) {
		mockOrders := new(MockOrderHistoryService)
		r := orderHistoryRouter(mockOrders, nil)

		w := performJSON(r, http.MethodGet, "/api/order-history/email", nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockOrders.AssertNotCalled(t, "ListByEmail")
	})
}

func TestGetByShopifyIDEndpoint(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockOrders := new(MockOrderHistoryService)
		mockOrders.On("GetByShopifyOrderID", mock.Anything, "820982911946154508").Return(&models.OrderHistory{
			ShopifyOrderID: "820982911946154508",
			Status:         models.OrderPaid,
		}, nil).Once()
		r := orderHistoryRouter(mockOrders, nil)

		w := performJSON(r, http.MethodGet, "/api/order-history/shopify/820982911946154508", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "820982911946154508")
	})

	t.Run("Not found", func(t *testing.T) {
		mockOrders := new(MockOrderHistoryService)
		mockOrders.On("GetByShopifyOrderID", mock.Anything, "9999").Return(nil, apperrors.ErrOrderNotFound).Once()
		r := orderHistoryRouter(mockOrders, nil)

		w := performJSON(r, http.MethodGet, "/api/order-history/shopify/9999", nil)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCheckSignInEndpoint(t *testing.T) {
	t.Run("Registered email", func(t *testing.T) {
		userID := uuid.New()
		mockOrders := new(MockOrderHistoryService)
		mockOrders.On("CheckSignIn", mock.Anything, "jdoe@example.com").
			Return(&services.SignInStatus{IsSignedIn: true, UserID: userID.String()}, nil).Once()
		r := orderHistoryRouter(mockOrders, nil)

		w := performJSON(r, http.MethodGet, "/api/order-history/check-signin?email=jdoe@example.com", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, true, data["isSignedIn"])
		assert.Equal(t, userID.String(), data["userId"])
	})

	t.Run("Unknown email", func(t *testing.T) {
		mockOrders := new(MockOrderHistoryService)
		mockOrders.On("CheckSignIn", mock.Anything, "ghost@example.com").
			Return(&services.SignInStatus{IsSignedIn: false}, nil).Once()
		r := orderHistoryRouter(mockOrders, nil)

		w := performJSON(r, http.MethodGet, "/api/order-history/check-signin?email=ghost@example.com", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, false, data["isSignedIn"])
	})
}

func TestGetOwnedOrderEndpoint(t *testing.T) {
	userID := uuid.New()
	identity := &services.Identity{ID: userID.String(), Username: "jdoe", Email: "jdoe@example.com"}

	t.Run("Owner can read", func(t *testing.T) {
		mockOrders := new(MockOrderHistoryService)
		mockOrders.On("GetOwnedByShopifyOrderID", mock.Anything, "1001", userID).Return(&models.OrderHistory{
			ShopifyOrderID: "1001",
			UserID:         &userID,
			Status:         models.OrderPaid,
		}, nil).Once()
		r := orderHistoryRouter(mockOrders, identity)

		w := performJSON(r, http.MethodGet, "/api/order-history/1001", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		mockOrders.AssertExpectations(t)
	})

	t.Run("Someone else's order is forbidden", func(t *testing.T) {
		mockOrders := new(MockOrderHistoryService)
		mockOrders.On("GetOwnedByShopifyOrderID", mock.Anything, "1001", userID).
			Return(nil, apperrors.ErrForbidden).Once()
		r := orderHistoryRouter(mockOrders, identity)

		w := performJSON(r, http.MethodGet, "/api/order-history/1001", nil)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
