package repository

import (
	"context"

	"storefront-bff/models"

	"gorm.io/gorm"
)

// TransactionRepository defines the interface for payment transaction data access
type TransactionRepository interface {
	Create(ctx context.Context, txn *models.Transaction) error
	FindByMidtransOrderID(ctx context.Context, orderID string) (*models.Transaction, error)
	UpdateStatusByMidtransOrderID(ctx context.Context, orderID string, status models.TransactionStatus) error
}

// GormTransactionRepository implements TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new instance of GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) TransactionRepository {
	return &GormTransactionRepository{db: db}
}

func (r *GormTransactionRepository) Create(ctx context.Context, txn *models.Transaction) error {
	return r.db.WithContext(ctx).Create(txn).Error
}

func (r *GormTransactionRepository) FindByMidtransOrderID(ctx context.Context, orderID string) (*models.Transaction, error) {
	var txn models.Transaction
	if err := r.db.WithContext(ctx).
		Where("midtrans_order_id = ?", orderID).
		First(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (r *GormTransactionRepository) UpdateStatusByMidtransOrderID(ctx context.Context, orderID string, status models.TransactionStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Transaction{}).
		Where("midtrans_order_id = ?", orderID).
		Update("status", status).Error
}
