package recommendation

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/domain/menu"
	"github.com/howl2go/v2/internal/infrastructure/persistence/memory"
	"github.com/howl2go/v2/internal/ports/inbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func item(company, name string, calories, protein float64) menu.Item {
	return menu.Item{
		ID:       uuid.New(),
		Company:  company,
		Name:     name,
		Calories: calories,
		Protein:  protein,
	}
}

func testRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestFrequentStrategy(t *testing.T) {
	catalog := memory.NewItemRepository(
		item("Wendy's", "Baconator", 950, 57),
		item("KFC", "Famous Bowl", 720, 26),
	)
	strategy := NewFrequentStrategy(catalog, zap.NewNop())

	profile := &Profile{
		FrequentItems: []ItemAffinity{
			{Company: "Wendy's", Name: "Baconator", Count: 7},
			{Company: "KFC", Name: "Famous Bowl", Count: 2},
			{Company: "Taco Bell", Name: "Discontinued Wrap", Count: 2},
		},
	}

	recs, err := strategy.Recommend(context.Background(), profile, 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Baconator", recs[0].Item.Name)
	assert.Equal(t, inbound.TypeFrequent, recs[0].Type)
	// 70 + 5*7 = 105 saturates at 95
	assert.Equal(t, 95, recs[0].Confidence)
	// 70 + 5*2 = 80
	assert.Equal(t, 80, recs[1].Confidence)
}

func TestFrequentStrategyNoProfile(t *testing.T) {
	strategy := NewFrequentStrategy(memory.NewItemRepository(), zap.NewNop())
	recs, err := strategy.Recommend(context.Background(), nil, 5)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestSimilarStrategyScoringAndExclusion(t *testing.T) {
	catalog := memory.NewItemRepository(
		item("Wendy's", "Baconator", 600, 40),         // known frequent, excluded
		item("Wendy's", "Spicy Chicken", 610, 30),     // fav venue +20, protein +10, close cal +15 => 90 (capped)
		item("Burger King", "Whopper Jr", 650, 18),    // close cal +15 => 65
		item("Taco Bell", "Power Bowl", 470, 26),      // outside the band, excluded
	)
	strategy := NewSimilarStrategy(catalog, zap.NewNop())

	profile := &Profile{
		AvgCalories:    600,
		AvgProtein:     25,
		FavoriteVenues: []VenueAffinity{{Name: "Wendy's", Count: 3}},
		FrequentItems:  []ItemAffinity{{Company: "Wendy's", Name: "Baconator", Count: 3}},
	}

	recs, err := strategy.Recommend(context.Background(), profile, 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Spicy Chicken", recs[0].Item.Name)
	assert.Equal(t, 90, recs[0].Confidence)
	assert.Equal(t, "Whopper Jr", recs[1].Item.Name)
	assert.Equal(t, 65, recs[1].Confidence)
	for _, r := range recs {
		assert.Equal(t, inbound.TypeSimilar, r.Type)
		assert.NotEqual(t, "Baconator", r.Item.Name)
	}
}

func TestExploreStrategyOnePerNewVenue(t *testing.T) {
	catalog := memory.NewItemRepository(
		item("Wendy's", "Baconator", 600, 40), // favorite venue, skipped
		item("Taco Bell", "Crunchwrap", 530, 17),
		item("Taco Bell", "Quesadilla", 510, 19),
		item("KFC", "Famous Bowl", 720, 26),
	)
	strategy := NewExploreStrategy(catalog, testRand(), zap.NewNop())

	profile := &Profile{
		AvgCalories:    600,
		FavoriteVenues: []VenueAffinity{{Name: "Wendy's", Count: 3}},
		OrderedVenues:  []string{"Wendy's"},
	}

	recs, err := strategy.Recommend(context.Background(), profile, 5)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	venues := map[string]int{}
	for _, r := range recs {
		venues[r.Item.Company]++
		assert.NotEqual(t, "Wendy's", r.Item.Company)
		assert.Equal(t, inbound.TypeExplore, r.Type)
		assert.Contains(t, r.Reason, "haven't explored")
		assert.GreaterOrEqual(t, r.Confidence, 60)
		assert.Less(t, r.Confidence, 75)
	}
	for venue, count := range venues {
		assert.Equal(t, 1, count, "venue %s appears more than once", venue)
	}
}

func TestExploreStrategyVariesPickAcrossSeeds(t *testing.T) {
	catalog := memory.NewItemRepository(
		item("Taco Bell", "Crunchwrap", 530, 17),
		item("Taco Bell", "Quesadilla", 510, 19),
		item("Taco Bell", "Burrito Supreme", 550, 16),
	)

	profile := &Profile{
		AvgCalories: 600,
		OrderedVenues: []string{
			"McDonald's", "Burger King", "Wendy's", "KFC", "Pizza Hut",
		},
	}

	picked := map[string]bool{}
	for seed := int64(0); seed < 10; seed++ {
		strategy := NewExploreStrategy(catalog, rand.New(rand.NewSource(seed)), zap.NewNop())
		recs, err := strategy.Recommend(context.Background(), profile, 1)
		require.NoError(t, err)
		require.Len(t, recs, 1)
		picked[recs[0].Item.Name] = true
	}
	assert.Greater(t, len(picked), 1, "the per-venue pick never varied")
}

func TestExploreStrategyFallsBackToRarelyOrdered(t *testing.T) {
	catalog := memory.NewItemRepository(
		item("McDonald's", "Big Mac", 550, 25),
		item("Taco Bell", "Crunchwrap", 530, 17),
	)
	strategy := NewExploreStrategy(catalog, testRand(), zap.NewNop())

	profile := &Profile{
		AvgCalories: 600,
		FavoriteVenues: []VenueAffinity{
			{Name: "McDonald's", Count: 6},
			{Name: "Wendy's", Count: 4},
			{Name: "KFC", Count: 3},
			{Name: "Taco Bell", Count: 1},
		},
		OrderedVenues: []string{
			"McDonald's", "Wendy's", "KFC", "Taco Bell",
			"Burger King", "Pizza Hut",
		},
	}

	recs, err := strategy.Recommend(context.Background(), profile, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Crunchwrap", recs[0].Item.Name)
	assert.Contains(t, recs[0].Reason, "rarely order from Taco Bell")
}

func TestTimeBasedStrategyUsesClock(t *testing.T) {
	catalog := memory.NewItemRepository(
		item("McDonald's", "Egg McMuffin", 310, 17),
		item("McDonald's", "Big Mac", 550, 25),
		item("Wendy's", "Baconator", 950, 57),
	)
	breakfastClock := func() time.Time {
		return time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	}
	strategy := NewTimeBasedStrategy(catalog, testRand(), breakfastClock, zap.NewNop())

	recs, err := strategy.Recommend(context.Background(), nil, "", 5)
	require.NoError(t, err)
	require.NotEmpty(t, recs)

	for _, r := range recs {
		assert.LessOrEqual(t, r.Item.Calories, 600.0)
		assert.Equal(t, MealBreakfast, r.MealType)
		assert.Equal(t, inbound.TypeTimeBased, r.Type)
		assert.GreaterOrEqual(t, r.Confidence, 70)
		assert.Less(t, r.Confidence, 90)
	}
}

func TestTimeBasedStrategyPrefersKeywordMatches(t *testing.T) {
	catalog := memory.NewItemRepository(
		item("McDonald's", "Plain Side Salad", 300, 5),
		item("McDonald's", "Egg McMuffin", 310, 17),
	)
	breakfastClock := func() time.Time {
		return time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	}
	strategy := NewTimeBasedStrategy(catalog, testRand(), breakfastClock, zap.NewNop())

	recs, err := strategy.Recommend(context.Background(), nil, "", 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Egg McMuffin", recs[0].Item.Name)
	assert.Equal(t, "Perfect for your morning - 310 calories", recs[0].Reason)
}

func TestTimeBasedStrategyLimitsToTopVenues(t *testing.T) {
	catalog := memory.NewItemRepository(
		item("KFC", "Famous Bowl", 720, 26),
		item("McDonald's", "Big Mac", 550, 25),
	)
	strategy := NewTimeBasedStrategy(catalog, testRand(), nil, zap.NewNop())

	profile := &Profile{
		FavoriteVenues: []VenueAffinity{
			{Name: "Wendy's", Count: 5},
			{Name: "McDonald's", Count: 4},
			{Name: "Pizza Hut", Count: 3},
			{Name: "KFC", Count: 2},
		},
	}

	recs, err := strategy.Recommend(context.Background(), profile, MealDinner, 1)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Big Mac", recs[0].Item.Name)
}

func TestTimeBasedStrategyMealOverride(t *testing.T) {
	catalog := memory.NewItemRepository(
		item("McDonald's", "Egg McMuffin", 310, 17),
		item("Wendy's", "Baconator", 950, 57),
	)
	strategy := NewTimeBasedStrategy(catalog, testRand(), nil, zap.NewNop())

	recs, err := strategy.Recommend(context.Background(), nil, MealDinner, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Baconator", recs[0].Item.Name)
	assert.Equal(t, MealDinner, recs[0].MealType)
}

func TestTimeBasedStrategyFallsBackWhenFavoritesEmpty(t *testing.T) {
	catalog := memory.NewItemRepository(
		item("KFC", "Famous Bowl", 720, 26),
	)
	strategy := NewTimeBasedStrategy(catalog, testRand(), nil, zap.NewNop())

	profile := &Profile{FavoriteVenues: []VenueAffinity{{Name: "Pizza Hut", Count: 2}}}
	recs, err := strategy.Recommend(context.Background(), profile, MealDinner, 5)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "Famous Bowl", recs[0].Item.Name)
}

func TestHealthierStrategy(t *testing.T) {
	catalog := memory.NewItemRepository(
		item("Wendy's", "Baconator", 950, 57),
		item("Wendy's", "Grilled Chicken Sandwich", 500, 50), // 53% of calories, 88% of protein
		item("Wendy's", "Side Salad", 300, 5),                // in band but loses too much protein
	)
	strategy := NewHealthierStrategy(catalog, testRand(), zap.NewNop())

	profile := &Profile{
		FrequentItems: []ItemAffinity{{Company: "Wendy's", Name: "Baconator", Count: 4}},
	}

	recs, err := strategy.Recommend(context.Background(), profile, 2)
	require.NoError(t, err)
	require.Len(t, recs, 1)

	rec := recs[0]
	assert.Equal(t, "Grilled Chicken Sandwich", rec.Item.Name)
	assert.Equal(t, inbound.TypeHealthyAlt, rec.Type)
	assert.Equal(t, 450.0, rec.CaloriesSaved)
	assert.GreaterOrEqual(t, rec.Confidence, 75)
	assert.Less(t, rec.Confidence, 90)
}

func TestHealthierStrategyNoAlternative(t *testing.T) {
	catalog := memory.NewItemRepository(
		item("Wendy's", "Baconator", 950, 57),
	)
	strategy := NewHealthierStrategy(catalog, testRand(), zap.NewNop())

	profile := &Profile{
		FrequentItems: []ItemAffinity{{Company: "Wendy's", Name: "Baconator", Count: 4}},
	}

	recs, err := strategy.Recommend(context.Background(), profile, 2)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestPopularItems(t *testing.T) {
	catalog := memory.NewItemRepository(
		item("Wendy's", "Baconator", 950, 57),    // too many calories
		item("KFC", "Famous Bowl", 720, 26),      // qualifies
		item("Taco Bell", "Cinnamon Twists", 170, 1), // too little protein
		item("McDonald's", "McChicken", 400, 14), // just under the protein bar
		item("McDonald's", "Quarter Pounder", 520, 30),
	)

	recs, err := popularItems(context.Background(), catalog, 8)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	// Sorted by protein descending.
	assert.Equal(t, "Quarter Pounder", recs[0].Item.Name)
	assert.Equal(t, "Famous Bowl", recs[1].Item.Name)
	for _, r := range recs {
		assert.Equal(t, inbound.TypePopular, r.Type)
		assert.Equal(t, 65, r.Confidence)
	}
}
