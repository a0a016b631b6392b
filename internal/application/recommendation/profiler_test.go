package recommendation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/domain/order"
	"github.com/howl2go/v2/internal/infrastructure/persistence/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func lineItem(company, name string, qty int, calories, protein, price float64) order.LineItem {
	return order.LineItem{
		Company:  company,
		Item:     name,
		Quantity: qty,
		Calories: calories,
		Protein:  protein,
		Price:    price,
	}
}

func orderAt(userID uuid.UUID, at time.Time, items ...order.LineItem) order.Order {
	return order.Order{ID: uuid.New(), UserID: userID, CreatedAt: at, Items: items}
}

func TestProfilerNoHistory(t *testing.T) {
	profiler := NewProfiler(memory.NewOrderRepository(), zap.NewNop())

	profile, err := profiler.Build(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestProfilerQuantityWeightedAverages(t *testing.T) {
	userID := uuid.New()
	noon := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	orders := memory.NewOrderRepository(
		orderAt(userID, noon,
			lineItem("McDonald's", "Big Mac", 2, 550, 25, 5.5),
			lineItem("McDonald's", "Fries", 1, 320, 4, 3.2),
		),
	)
	profiler := NewProfiler(orders, zap.NewNop())

	profile, err := profiler.Build(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, profile)

	// (550*2 + 320) / 3 = 473.33 rounds to 473
	assert.Equal(t, 473.0, profile.AvgCalories)
	// (25*2 + 4) / 3 = 18
	assert.Equal(t, 18.0, profile.AvgProtein)
	assert.Equal(t, 1, profile.TotalOrders)
}

func TestProfilerVenueAndItemAffinities(t *testing.T) {
	userID := uuid.New()
	base := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	orders := memory.NewOrderRepository(
		orderAt(userID, base, lineItem("Wendy's", "Baconator", 1, 950, 57, 9.5)),
		orderAt(userID, base.Add(time.Hour), lineItem("Wendy's", "Baconator", 1, 950, 57, 9.5)),
		orderAt(userID, base.Add(2*time.Hour), lineItem("KFC", "Famous Bowl", 1, 720, 26, 7.2)),
	)
	profiler := NewProfiler(orders, zap.NewNop())

	profile, err := profiler.Build(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, profile)

	require.Len(t, profile.FavoriteVenues, 2)
	assert.Equal(t, "Wendy's", profile.FavoriteVenues[0].Name)
	assert.Equal(t, 2, profile.FavoriteVenues[0].Count)
	assert.Equal(t, 67, profile.FavoriteVenues[0].Percentage)

	assert.Equal(t, []string{"Wendy's", "KFC"}, profile.OrderedVenues)
	assert.True(t, profile.HasOrderedFrom("wendy's"))
	assert.False(t, profile.HasOrderedFrom("Pizza Hut"))

	require.NotEmpty(t, profile.FrequentItems)
	assert.Equal(t, "Baconator", profile.FrequentItems[0].Name)
	assert.Equal(t, 2, profile.FrequentItems[0].Count)
}

func TestProfilerDietaryPatterns(t *testing.T) {
	cases := []struct {
		name     string
		calories float64
		protein  float64
		want     string
	}{
		{"high protein wins over hearty", 900, 30, PatternHighProtein},
		{"low calorie", 350, 12, PatternLowCalorie},
		{"hearty", 850, 15, PatternHearty},
		{"balanced", 550, 15, PatternBalanced},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dietaryPattern(tc.calories, tc.protein))
		})
	}
}

func TestMealPeriodBuckets(t *testing.T) {
	assert.Equal(t, MealBreakfast, MealPeriodFor(5))
	assert.Equal(t, MealBreakfast, MealPeriodFor(10))
	assert.Equal(t, MealLunch, MealPeriodFor(11))
	assert.Equal(t, MealLunch, MealPeriodFor(14))
	assert.Equal(t, MealDinner, MealPeriodFor(15))
	assert.Equal(t, MealDinner, MealPeriodFor(20))
	assert.Equal(t, MealLateNight, MealPeriodFor(21))
	assert.Equal(t, MealLateNight, MealPeriodFor(2))
	assert.Equal(t, MealLateNight, MealPeriodFor(4))
}

func TestProfilerPreferredMealTime(t *testing.T) {
	userID := uuid.New()
	dinner := time.Date(2026, 3, 10, 19, 0, 0, 0, time.UTC)
	lunch := time.Date(2026, 3, 11, 12, 0, 0, 0, time.UTC)

	orders := memory.NewOrderRepository(
		orderAt(userID, dinner, lineItem("KFC", "Famous Bowl", 1, 720, 26, 7.2)),
		orderAt(userID, dinner.Add(24*time.Hour), lineItem("KFC", "Famous Bowl", 1, 720, 26, 7.2)),
		orderAt(userID, lunch, lineItem("KFC", "Famous Bowl", 1, 720, 26, 7.2)),
	)
	profiler := NewProfiler(orders, zap.NewNop())

	profile, err := profiler.Build(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, MealDinner, profile.PreferredMealTime())
}
