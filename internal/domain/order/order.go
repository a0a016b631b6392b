// Package order contains the order history domain: placed orders and
// their line items with nutrition snapshotted at purchase time.
package order

import (
	"time"

	"github.com/google/uuid"
)

// LineItem is one purchased item within an order. Nutrition and price
// are snapshots taken when the order was placed, so later catalog edits
// do not rewrite history.
type LineItem struct {
	Company  string  `json:"company"`
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Price    float64 `json:"price"`
}

// Order is a single placed order.
type Order struct {
	ID        uuid.UUID  `json:"id"`
	UserID    uuid.UUID  `json:"userId"`
	CreatedAt time.Time  `json:"createdAt"`
	Items     []LineItem `json:"items"`
}

// EffectiveQuantity returns the line quantity, treating missing or
// invalid values as a single unit.
func (li LineItem) EffectiveQuantity() int {
	if li.Quantity < 1 {
		return 1
	}
	return li.Quantity
}
