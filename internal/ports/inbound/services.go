// Package inbound defines the interfaces for inbound ports (primary/driving adapters)
// These are the use cases the HTTP layer invokes
package inbound

import (
	"context"

	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/domain/menu"
	"github.com/howl2go/v2/internal/domain/query"
)

// PricedItem is a catalog item with its derived price attached, the
// shape every outward-facing result uses.
type PricedItem struct {
	menu.Item
	Price float64 `json:"price"`
}

// NewPricedItem attaches the derived price to an item.
func NewPricedItem(item menu.Item) PricedItem {
	return PricedItem{Item: item, Price: item.Price()}
}

// SearchQuery is a natural language food search request.
type SearchQuery struct {
	Text   string
	UserID *uuid.UUID
	Limit  int
}

// SearchResult carries ranked items plus the interpreted criteria so
// callers can show what was understood.
type SearchResult struct {
	Criteria           *query.Criteria `json:"-"`
	Items              []PricedItem    `json:"recommendations"`
	Count              int             `json:"count"`
	PreferencesApplied bool            `json:"preferencesApplied"`
	// Degraded is set when structured extraction failed and the search
	// fell back to plain keyword matching on the query text.
	Degraded bool `json:"degraded,omitempty"`
}

// SearchService interprets free text into constraints and returns
// matching catalog items.
type SearchService interface {
	Search(ctx context.Context, q SearchQuery) (*SearchResult, error)
}

// RecommendationType distinguishes the strategy that generated a
// recommendation and drives UI labeling.
type RecommendationType string

const (
	TypeFrequent   RecommendationType = "frequent"
	TypeSimilar    RecommendationType = "similar"
	TypeExplore    RecommendationType = "explore"
	TypeTimeBased  RecommendationType = "time-based"
	TypeHealthyAlt RecommendationType = "healthy-alt"
	TypePopular    RecommendationType = "popular"
)

// Recommendation is one suggested item with a human-readable
// justification and a confidence score in [0, 100].
type Recommendation struct {
	Item          PricedItem         `json:"item"`
	Reason        string             `json:"reason"`
	Type          RecommendationType `json:"type"`
	Confidence    int                `json:"confidence"`
	CaloriesSaved float64            `json:"caloriesSaved,omitempty"`
	MealType      string             `json:"mealType,omitempty"`
}

// ProfileSummary is the outward-facing slice of an ordering profile.
type ProfileSummary struct {
	TotalOrders        int      `json:"totalOrders"`
	FavoriteVenue      string   `json:"favoriteRestaurant,omitempty"`
	AvgCaloriesPerItem float64  `json:"avgCaloriesPerItem"`
	AvgProteinPerItem  float64  `json:"avgProteinPerItem"`
	DietaryPreference  string   `json:"dietaryPreference"`
	TopItems           []string `json:"topItems"`
}

// RecommendationOptions tune a personalized recommendation request.
type RecommendationOptions struct {
	Limit          int
	IncludeProfile bool
}

// RecommendationResponse is the full personalized result set.
type RecommendationResponse struct {
	IsNewUser       bool             `json:"isNewUser"`
	Recommendations []Recommendation `json:"recommendations"`
	Message         string           `json:"message"`
	Profile         *ProfileSummary  `json:"userProfile,omitempty"`
}

// RecommendationService generates personalized food suggestions from
// order history, with per-strategy entry points mirroring the API.
type RecommendationService interface {
	Personalized(ctx context.Context, userID uuid.UUID, opts RecommendationOptions) (*RecommendationResponse, error)
	Frequent(ctx context.Context, userID uuid.UUID, limit int) ([]Recommendation, error)
	Similar(ctx context.Context, userID uuid.UUID, limit int) ([]Recommendation, error)
	Exploration(ctx context.Context, userID uuid.UUID, limit int) ([]Recommendation, error)
	TimeBased(ctx context.Context, userID uuid.UUID, mealType string, limit int) ([]Recommendation, error)
	HealthierAlternatives(ctx context.Context, userID uuid.UUID, limit int) ([]Recommendation, error)
}
