// Package user contains the user-side domain types the core consumes:
// saved dining preferences applied as soft defaults during search.
package user

import "github.com/google/uuid"

// Preferences holds a user's saved dining preferences. They act as
// defaults under interpreted criteria: an explicit constraint in the
// user's query always wins over a saved preference.
type Preferences struct {
	UserID              uuid.UUID `json:"userId"`
	MaxCalories         float64   `json:"maxCalories,omitempty"`
	MinProtein          float64   `json:"minProtein,omitempty"`
	FavoriteVenues      []string  `json:"favoriteRestaurants,omitempty"`
	DietaryRestrictions []string  `json:"dietaryRestrictions,omitempty"`
}
