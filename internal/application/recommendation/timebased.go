package recommendation

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/howl2go/v2/internal/domain/menu"
	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/ports/inbound"
	"github.com/howl2go/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// favoriteVenuePool caps how many favorite venues narrow the time-based
// item pool.
const favoriteVenuePool = 3

// TimeBasedStrategy suggests items that fit the current meal period.
type TimeBasedStrategy struct {
	items  outbound.ItemRepository
	rng    *rand.Rand
	now    func() time.Time
	logger *zap.Logger
}

// NewTimeBasedStrategy creates the time-of-day strategy. now may be nil
// to use the wall clock; rng is owned by this strategy.
func NewTimeBasedStrategy(items outbound.ItemRepository, rng *rand.Rand, now func() time.Time, logger *zap.Logger) *TimeBasedStrategy {
	if now == nil {
		now = time.Now
	}
	return &TimeBasedStrategy{items: items, rng: rng, now: now, logger: logger.Named("strategy-time")}
}

// mealPlan describes what fits a meal period: a calorie band plus item
// name keywords that mark an item as meal-typical.
type mealPlan struct {
	keywords    []string
	minCalories *float64
	maxCalories *float64
	message     string
}

var mealPlans = map[string]mealPlan{
	MealBreakfast: {
		keywords:    []string{"breakfast", "egg", "pancake", "muffin", "hash brown", "morning"},
		maxCalories: query.Float(600),
		message:     "Perfect for your morning",
	},
	MealLunch: {
		keywords:    []string{"sandwich", "wrap", "salad", "burger", "combo"},
		minCalories: query.Float(400),
		maxCalories: query.Float(800),
		message:     "Great for lunch",
	},
	MealDinner: {
		keywords:    []string{"meal", "combo", "dinner", "family"},
		minCalories: query.Float(500),
		message:     "Satisfying dinner option",
	},
	MealLateNight: {
		keywords:    []string{"snack", "fries", "nuggets", "small"},
		maxCalories: query.Float(500),
		message:     "Perfect late-night snack",
	},
}

// normalizeMeal accepts only known meal periods; anything else means
// "use the clock".
func normalizeMeal(mealType string) string {
	switch mealType {
	case MealBreakfast, MealLunch, MealDinner, MealLateNight:
		return mealType
	default:
		return ""
	}
}

// Recommend picks items matching the given meal period, or the current
// one when mealType is empty. The user's top venues narrow the pool
// when the profile has them, and items whose name carries a meal
// keyword rank ahead of items that only fit the calorie band.
func (s *TimeBasedStrategy) Recommend(ctx context.Context, profile *Profile, mealType string, limit int) ([]inbound.Recommendation, error) {
	if limit <= 0 {
		return nil, nil
	}

	meal := normalizeMeal(mealType)
	if meal == "" {
		meal = MealPeriodFor(s.now().Hour())
	}
	plan := mealPlans[meal]

	pred := query.Predicate{
		query.FieldCalories: {GTE: plan.minCalories, LTE: plan.maxCalories},
	}
	opts := outbound.FindOptions{Limit: limit * 3}
	if profile != nil && len(profile.FavoriteVenues) > 0 {
		opts.Venues = profile.TopVenueNames(favoriteVenuePool)
	}

	items, err := s.items.Find(ctx, pred, opts)
	if err != nil {
		return nil, err
	}

	// A thin favorite-venue pool widens to the whole catalog.
	if len(items) < limit && len(opts.Venues) > 0 {
		opts.Venues = nil
		items, err = s.items.Find(ctx, pred, opts)
		if err != nil {
			return nil, err
		}
	}

	ordered := partitionByKeywords(items, plan.keywords, limit)

	recs := make([]inbound.Recommendation, 0, len(ordered))
	for _, item := range ordered {
		recs = append(recs, inbound.Recommendation{
			Item:       inbound.NewPricedItem(item),
			Reason:     fmt.Sprintf("%s - %.0f calories", plan.message, item.Calories),
			Type:       inbound.TypeTimeBased,
			Confidence: 70 + s.rng.Intn(20),
			MealType:   meal,
		})
	}
	return recs, nil
}

// partitionByKeywords puts keyword-matching items first. When the
// matches alone satisfy the limit only they are returned; otherwise the
// calorie-band-only items fill the remainder.
func partitionByKeywords(items []menu.Item, keywords []string, limit int) []menu.Item {
	matched := make([]menu.Item, 0, len(items))
	rest := make([]menu.Item, 0, len(items))
	for _, item := range items {
		if nameHasKeyword(item.Name, keywords) {
			matched = append(matched, item)
		} else {
			rest = append(rest, item)
		}
	}

	if len(matched) < limit {
		matched = append(matched, rest...)
	}
	if len(matched) > limit {
		matched = matched[:limit]
	}
	return matched
}

func nameHasKeyword(name string, keywords []string) bool {
	lower := strings.ToLower(name)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
