// Package gorm provides the GORM-backed persistence adapters.
package gorm

import (
	"time"

	"github.com/google/uuid"
)

// ItemModel is the stored form of a catalog item.
type ItemModel struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Company              string    `gorm:"size:100;index;not null"`
	Name                 string    `gorm:"column:item;size:255;index;not null"`
	Calories             float64   `gorm:"index"`
	CaloriesFromFat      float64
	TotalFat             float64
	SaturatedFat         float64
	TransFat             float64
	Cholesterol          float64
	Sodium               float64
	Carbs                float64
	Fiber                float64
	Sugars               float64
	Protein              float64 `gorm:"index"`
	WeightWatchersPoints float64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (ItemModel) TableName() string { return "items" }

// OrderModel is a stored order with its line items.
type OrderModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `gorm:"index"`
	Items     []OrderLineModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderModel) TableName() string { return "orders" }

// OrderLineModel is one item within an order, denormalized so history
// survives catalog changes.
type OrderLineModel struct {
	ID       uint      `gorm:"primaryKey;autoIncrement"`
	OrderID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Company  string    `gorm:"size:100"`
	Item     string    `gorm:"size:255"`
	Quantity int
	Calories float64
	Protein  float64
	Price    float64
}

func (OrderLineModel) TableName() string { return "order_lines" }

// PreferencesModel stores a user's saved search preferences.
type PreferencesModel struct {
	UserID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	MaxCalories         float64
	MinProtein          float64
	FavoriteVenues      string `gorm:"size:1000"`
	DietaryRestrictions string `gorm:"size:1000"`
	UpdatedAt           time.Time
}

func (PreferencesModel) TableName() string { return "user_preferences" }
