package repository

import (
	"context"

	"storefront-bff/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OrderHistoryRepository defines the interface for order history data access.
// Upsert is keyed on the Shopify order id so concurrent webhook deliveries
// for the same new order cannot create duplicate rows.
type OrderHistoryRepository interface {
	Upsert(ctx context.Context, order *models.OrderHistory) error
	UpdateByShopifyOrderID(ctx context.Context, shopifyOrderID string, updates map[string]interface{}) (int64, error)
	FindByShopifyOrderID(ctx context.Context, shopifyOrderID string) (*models.OrderHistory, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.OrderHistory, error)
	ListByEmail(ctx context.Context, email string) ([]models.OrderHistory, error)
}

// GormOrderHistoryRepository implements OrderHistoryRepository using GORM
type GormOrderHistoryRepository struct {
	db *gorm.DB
}

// NewGormOrderHistoryRepository creates a new instance of GormOrderHistoryRepository
func NewGormOrderHistoryRepository(db *gorm.DB) OrderHistoryRepository {
	return &GormOrderHistoryRepository{db: db}
}

// Upsert inserts the row, or on a shopify_order_id conflict overwrites the
// mutable columns in a single atomic statement.
func (r *GormOrderHistoryRepository) Upsert(ctx context.Context, order *models.OrderHistory) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shopify_order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "email", "status", "order_data", "updated_at"}),
		}).
		Create(order).Error
}

// UpdateByShopifyOrderID applies updates to an existing row and reports how
// many rows matched, so callers can treat a missing row as a no-op.
func (r *GormOrderHistoryRepository) UpdateByShopifyOrderID(ctx context.Context, shopifyOrderID string, updates map[string]interface{}) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.OrderHistory{}).
		Where("shopify_order_id = ?", shopifyOrderID).
		Updates(updates)
	return result.RowsAffected, result.Error
}

func (r *GormOrderHistoryRepository) FindByShopifyOrderID(ctx context.Context, shopifyOrderID string) (*models.OrderHistory, error) {
	var order models.OrderHistory
	if err := r.db.WithContext(ctx).
		Where("shopify_order_id = ?", shopifyOrderID).
		First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormOrderHistoryRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]models.OrderHistory, error) {
	orders := []models.OrderHistory{}
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormOrderHistoryRepository) ListByEmail(ctx context.Context, email string) ([]models.OrderHistory, error) {
	orders := []models.OrderHistory{}
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}
