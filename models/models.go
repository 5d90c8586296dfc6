package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TransactionStatus is the internal payment status vocabulary. Midtrans
// notification statuses are mapped onto it during webhook reconciliation.
type TransactionStatus string

const (
	TransactionPending  TransactionStatus = "pending"
	TransactionSuccess  TransactionStatus = "success"
	TransactionFailed   TransactionStatus = "failed"
	TransactionExpired  TransactionStatus = "expired"
	TransactionCanceled TransactionStatus = "canceled"
)

// OrderStatus tracks a Shopify order's lifecycle as observed through webhooks.
type OrderStatus string

const (
	OrderAbandoned OrderStatus = "abandoned"
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
)

// User model. The password hash is never serialized.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	FirstName    string    `gorm:"size:100" json:"firstName"`
	LastName     string    `gorm:"size:100" json:"lastName"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

// Transaction is a single payment attempt against the Midtrans gateway.
// Status transitions happen only via webhook reconciliation; rows are never
// deleted.
type Transaction struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID         `gorm:"type:uuid;not null;index" json:"userId"`
	Amount          float64           `gorm:"not null" json:"amount"`
	Status          TransactionStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	MidtransOrderID string            `gorm:"uniqueIndex;not null" json:"midtransOrderId"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updatedAt"`
}

// OrderHistory records a Shopify order's lifecycle. At most one row exists
// per Shopify order id; webhook handlers upsert on that key. UserID is nil
// when the webhook email never resolved to a registered user.
type OrderHistory struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         *uuid.UUID  `gorm:"type:uuid;index" json:"userId,omitempty"`
	Email          string      `gorm:"index;not null" json:"email"`
	ShopifyOrderID string      `gorm:"uniqueIndex;not null" json:"shopifyOrderId"`
	Status         OrderStatus `gorm:"type:varchar(20);not null" json:"status"`
	CheckoutURL    *string     `gorm:"type:varchar(1024)" json:"checkoutUrl,omitempty"`
	OrderData      string      `gorm:"type:jsonb" json:"orderData,omitempty"`
	CreatedAt      time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt      time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
}

// Migrate function for auto migration
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&User{}, &Transaction{}, &OrderHistory{})
}
