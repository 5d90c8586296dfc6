package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"storefront-bff/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type OrderHistoryRepositorySuite struct {
	suite.Suite
	db   *gorm.DB
	repo OrderHistoryRepository
	ctx  context.Context
}

func (s *OrderHistoryRepositorySuite) SetupTest() {
	// A named in-memory database with a shared cache, so every pooled
	// connection sees the same schema.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	s.Require().NoError(err)
	s.Require().NoError(models.Migrate(db))
	s.db = db
	s.repo = NewGormOrderHistoryRepository(db)
	s.ctx = context.Background()
}

func (s *OrderHistoryRepositorySuite) newOrder(shopifyOrderID string, status models.OrderStatus) *models.OrderHistory {
	return &models.OrderHistory{
		ID:             uuid.New(),
		Email:          "jon@example.com",
		ShopifyOrderID: shopifyOrderID,
		Status:         status,
		OrderData:      `{"id":1}`,
	}
}

func (s *OrderHistoryRepositorySuite) TestUpsertInsertsNewRow() {
	order := s.newOrder("1001", models.OrderAbandoned)
	s.Require().NoError(s.repo.Upsert(s.ctx, order))

	found, err := s.repo.FindByShopifyOrderID(s.ctx, "1001")
	s.Require().NoError(err)
	s.Equal(models.OrderAbandoned, found.Status)
}

func (s *OrderHistoryRepositorySuite) TestUpsertOverwritesOnConflict() {
	userID := uuid.New()
	s.Require().NoError(s.repo.Upsert(s.ctx, s.newOrder("1001", models.OrderAbandoned)))

	update := s.newOrder("1001", models.OrderPaid)
	update.UserID = &userID
	update.OrderData = `{"id":1,"paid":true}`
	s.Require().NoError(s.repo.Upsert(s.ctx, update))

	var count int64
	s.db.Model(&models.OrderHistory{}).Count(&count)
	s.Equal(int64(1), count)

	found, err := s.repo.FindByShopifyOrderID(s.ctx, "1001")
	s.Require().NoError(err)
	s.Equal(models.OrderPaid, found.Status)
	s.Equal(`{"id":1,"paid":true}`, found.OrderData)
	s.Require().NotNil(found.UserID)
	s.Equal(userID, *found.UserID)
}

func (s *OrderHistoryRepositorySuite) TestUpdateByShopifyOrderID() {
	s.Require().NoError(s.repo.Upsert(s.ctx, s.newOrder("1001", models.OrderPaid)))

	rows, err := s.repo.UpdateByShopifyOrderID(s.ctx, "1001", map[string]interface{}{
		"status": models.OrderCancelled,
	})
	s.Require().NoError(err)
	s.Equal(int64(1), rows)

	found, err := s.repo.FindByShopifyOrderID(s.ctx, "1001")
	s.Require().NoError(err)
	s.Equal(models.OrderCancelled, found.Status)
}

func (s *OrderHistoryRepositorySuite) TestUpdateMissingRowAffectsNothing() {
	rows, err := s.repo.UpdateByShopifyOrderID(s.ctx, "9999", map[string]interface{}{
		"status": models.OrderCancelled,
	})
	s.Require().NoError(err)
	s.Equal(int64(0), rows)
}

func (s *OrderHistoryRepositorySuite) TestFindMissingRowReturnsNotFound() {
	_, err := s.repo.FindByShopifyOrderID(s.ctx, "9999")
	s.Require().ErrorIs(err, gorm.ErrRecordNotFound)
}

func (s *OrderHistoryRepositorySuite) TestListByUserIDNewestFirst() {
	userID := uuid.New()
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"2001", "2002", "2003"} {
		order := s.newOrder(id, models.OrderPaid)
		order.UserID = &userID
		order.CreatedAt = base.Add(time.Duration(i) * time.Hour)
		s.Require().NoError(s.repo.Upsert(s.ctx, order))
	}
	// Another user's order must not leak in.
	other := s.newOrder("3001", models.OrderPaid)
	otherID := uuid.New()
	other.UserID = &otherID
	s.Require().NoError(s.repo.Upsert(s.ctx, other))

	orders, err := s.repo.ListByUserID(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(orders, 3)
	s.Equal("2003", orders[0].ShopifyOrderID)
	s.Equal("2002", orders[1].ShopifyOrderID)
	s.Equal("2001", orders[2].ShopifyOrderID)
}

func (s *OrderHistoryRepositorySuite) TestListByEmail() {
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	first := s.newOrder("2001", models.OrderAbandoned)
	first.CreatedAt = base
	s.Require().NoError(s.repo.Upsert(s.ctx, first))

	second := s.newOrder("2002", models.OrderPaid)
	second.CreatedAt = base.Add(time.Hour)
	s.Require().NoError(s.repo.Upsert(s.ctx, second))

	orders, err := s.repo.ListByEmail(s.ctx, "jon@example.com")
	s.Require().NoError(err)
	s.Require().Len(orders, 2)
	s.Equal("2002", orders[0].ShopifyOrderID)

	empty, err := s.repo.ListByEmail(s.ctx, "nobody@example.com")
	s.Require().NoError(err)
	s.Empty(empty)
}

func TestOrderHistoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(OrderHistoryRepositorySuite))
}
