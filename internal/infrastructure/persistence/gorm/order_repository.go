package gorm

import (
	"context"

	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/domain/order"
	"github.com/howl2go/v2/pkg/errors"
	"gorm.io/gorm"
)

// OrderRepository implements outbound.OrderRepository over GORM.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// RecentByUser returns the user's most recent orders, newest first.
func (r *OrderRepository) RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]order.Order, error) {
	var models []OrderModel
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, errors.NewDatabaseError("load orders", err)
	}

	orders := make([]order.Order, len(models))
	for i, m := range models {
		orders[i] = orderToDomain(m)
	}
	return orders, nil
}

// Save persists an order with its line items.
func (r *OrderRepository) Save(ctx context.Context, o order.Order) error {
	m := orderToModel(o)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return errors.NewDatabaseError("save order", err)
	}
	return nil
}
