// Package menu contains the fast food catalog domain: the item record,
// the known venues, and the derived price rule.
package menu

import (
	"strings"

	"github.com/google/uuid"
)

// Item is a fast food menu item with its nutrition snapshot.
// Nutrition units: calories in kcal, macros in grams, sodium and
// cholesterol in milligrams. Price is never stored; it is derived from
// calories (see PriceFor).
type Item struct {
	ID                   uuid.UUID `json:"id"`
	Company              string    `json:"company"`
	Name                 string    `json:"item"`
	Calories             float64   `json:"calories"`
	CaloriesFromFat      float64   `json:"caloriesFromFat"`
	TotalFat             float64   `json:"totalFat"`
	SaturatedFat         float64   `json:"saturatedFat"`
	TransFat             float64   `json:"transFat"`
	Cholesterol          float64   `json:"cholesterol"`
	Sodium               float64   `json:"sodium"`
	Carbs                float64   `json:"carbs"`
	Fiber                float64   `json:"fiber"`
	Sugars               float64   `json:"sugars"`
	Protein              float64   `json:"protein"`
	WeightWatchersPoints float64   `json:"weightWatchersPoints,omitempty"`
}

// Price returns the item's derived price.
func (i Item) Price() float64 {
	return PriceFor(i.Calories)
}

// Validate checks the fields every stored item must carry.
func (i Item) Validate() error {
	if strings.TrimSpace(i.Company) == "" {
		return ErrEmptyCompany
	}
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

// Companies lists the venues in the catalog.
var Companies = []string{
	"McDonald's",
	"Burger King",
	"Wendy's",
	"KFC",
	"Taco Bell",
	"Pizza Hut",
}
