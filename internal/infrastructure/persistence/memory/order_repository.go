package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/domain/order"
)

// OrderRepository keeps order history in memory.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []order.Order
}

func NewOrderRepository(orders ...order.Order) *OrderRepository {
	return &OrderRepository{orders: orders}
}

func (r *OrderRepository) Add(orders ...order.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append(r.orders, orders...)
}

// RecentByUser returns the user's most recent orders, newest first.
func (r *OrderRepository) RecentByUser(ctx context.Context, userID uuid.UUID, limit int) ([]order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []order.Order
	for _, o := range r.orders {
		if o.UserID == userID {
			matched = append(matched, o)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}
