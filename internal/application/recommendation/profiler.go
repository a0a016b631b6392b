// Package recommendation builds user taste profiles from order history
// and turns them into personalized suggestions through a set of
// strategies coordinated by the orchestrator.
package recommendation

import (
	"context"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/domain/order"
	"github.com/howl2go/v2/internal/ports/outbound"
	"github.com/howl2go/v2/pkg/errors"
	"go.uber.org/zap"
)

// historyWindow caps how much order history feeds a profile. Older
// orders stop describing current taste.
const historyWindow = 50

// Dietary pattern labels, most specific first.
const (
	PatternHighProtein = "high-protein"
	PatternLowCalorie  = "low-calorie"
	PatternHearty      = "hearty"
	PatternBalanced    = "balanced"
)

// Meal period labels used by both the profile and the time-based
// strategy.
const (
	MealBreakfast = "breakfast"
	MealLunch     = "lunch"
	MealDinner    = "dinner"
	MealLateNight = "late-night"
)

// VenueAffinity is one venue's share of a user's order lines.
type VenueAffinity struct {
	Name       string
	Count      int
	Percentage int
}

// ItemAffinity counts how often a specific item was ordered.
type ItemAffinity struct {
	Company string
	Name    string
	Count   int
}

// Profile summarizes a user's ordering behavior.
type Profile struct {
	UserID         uuid.UUID
	TotalOrders    int
	AvgCalories    float64
	AvgProtein     float64
	AvgPrice       float64
	FavoriteVenues []VenueAffinity
	// OrderedVenues lists every venue the user has ordered from, most
	// ordered first. FavoriteVenues is its top slice with counts.
	OrderedVenues  []string
	FrequentItems  []ItemAffinity
	DietaryPattern string
	MealCounts     map[string]int
}

// PreferredMealTime is the meal period the user orders in most often.
func (p *Profile) PreferredMealTime() string {
	best, bestCount := "", -1
	for _, meal := range []string{MealBreakfast, MealLunch, MealDinner, MealLateNight} {
		if c := p.MealCounts[meal]; c > bestCount {
			best, bestCount = meal, c
		}
	}
	return best
}

// FavoriteVenueNames returns just the venue names, most ordered first.
func (p *Profile) FavoriteVenueNames() []string {
	names := make([]string, len(p.FavoriteVenues))
	for i, v := range p.FavoriteVenues {
		names[i] = v.Name
	}
	return names
}

// TopVenueNames returns at most n favorite venue names, most ordered
// first.
func (p *Profile) TopVenueNames(n int) []string {
	names := p.FavoriteVenueNames()
	if len(names) > n {
		names = names[:n]
	}
	return names
}

// HasOrderedFrom reports whether the user has ever ordered from the
// venue.
func (p *Profile) HasOrderedFrom(venue string) bool {
	for _, v := range p.OrderedVenues {
		if strings.EqualFold(v, venue) {
			return true
		}
	}
	return false
}

// Profiler derives taste profiles from recent order history.
type Profiler struct {
	orders outbound.OrderRepository
	logger *zap.Logger
}

func NewProfiler(orders outbound.OrderRepository, logger *zap.Logger) *Profiler {
	return &Profiler{orders: orders, logger: logger.Named("profiler")}
}

// Build computes a profile from the user's recent orders. A user with
// no history gets (nil, nil), never an error.
func (p *Profiler) Build(ctx context.Context, userID uuid.UUID) (*Profile, error) {
	orders, err := p.orders.RecentByUser(ctx, userID, historyWindow)
	if err != nil {
		return nil, errors.NewDatabaseError("load order history", err)
	}
	if len(orders) == 0 {
		return nil, nil
	}
	return buildProfile(userID, orders), nil
}

func buildProfile(userID uuid.UUID, orders []order.Order) *Profile {
	var (
		totalQty      float64
		sumCalories   float64
		sumProtein    float64
		sumPrice      float64
		venueCounts   = map[string]int{}
		itemCounts    = map[string]int{}
		itemExemplars = map[string]ItemAffinity{}
		mealCounts    = map[string]int{}
	)

	for _, o := range orders {
		mealCounts[MealPeriodFor(o.CreatedAt.Hour())]++
		for _, line := range o.Items {
			qty := line.EffectiveQuantity()
			totalQty += float64(qty)
			sumCalories += line.Calories * float64(qty)
			sumProtein += line.Protein * float64(qty)
			sumPrice += line.Price * float64(qty)

			venue := strings.TrimSpace(line.Company)
			if venue != "" {
				venueCounts[venue] += qty
			}

			key := itemKey(line.Company, line.Item)
			itemCounts[key] += qty
			if _, seen := itemExemplars[key]; !seen {
				itemExemplars[key] = ItemAffinity{Company: line.Company, Name: line.Item}
			}
		}
	}

	profile := &Profile{
		UserID:      userID,
		TotalOrders: len(orders),
		MealCounts:  mealCounts,
	}
	if totalQty > 0 {
		profile.AvgCalories = math.Round(sumCalories / totalQty)
		profile.AvgProtein = math.Round(sumProtein / totalQty)
		profile.AvgPrice = math.Round(sumPrice/totalQty*100) / 100
	}

	venues := rankVenues(venueCounts, int(totalQty))
	profile.OrderedVenues = make([]string, len(venues))
	for i, v := range venues {
		profile.OrderedVenues[i] = v.Name
	}
	if len(venues) > 5 {
		venues = venues[:5]
	}
	profile.FavoriteVenues = venues
	profile.FrequentItems = topItems(itemCounts, itemExemplars, 10)
	profile.DietaryPattern = dietaryPattern(profile.AvgCalories, profile.AvgProtein)
	return profile
}

// MealPeriodFor maps an hour of day to its meal period.
func MealPeriodFor(hour int) string {
	switch {
	case hour >= 5 && hour < 11:
		return MealBreakfast
	case hour >= 11 && hour < 15:
		return MealLunch
	case hour >= 15 && hour < 21:
		return MealDinner
	default:
		return MealLateNight
	}
}

// dietaryPattern labels average intake, most specific label first.
func dietaryPattern(avgCalories, avgProtein float64) string {
	switch {
	case avgProtein >= 25:
		return PatternHighProtein
	case avgCalories > 0 && avgCalories <= 400:
		return PatternLowCalorie
	case avgCalories >= 700:
		return PatternHearty
	default:
		return PatternBalanced
	}
}

func rankVenues(counts map[string]int, totalQty int) []VenueAffinity {
	venues := make([]VenueAffinity, 0, len(counts))
	for name, count := range counts {
		pct := 0
		if totalQty > 0 {
			pct = int(math.Round(float64(count) / float64(totalQty) * 100))
		}
		venues = append(venues, VenueAffinity{Name: name, Count: count, Percentage: pct})
	}
	sort.Slice(venues, func(i, j int) bool {
		if venues[i].Count != venues[j].Count {
			return venues[i].Count > venues[j].Count
		}
		return venues[i].Name < venues[j].Name
	})
	return venues
}

func topItems(counts map[string]int, exemplars map[string]ItemAffinity, limit int) []ItemAffinity {
	items := make([]ItemAffinity, 0, len(counts))
	for key, count := range counts {
		item := exemplars[key]
		item.Count = count
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count != items[j].Count {
			return items[i].Count > items[j].Count
		}
		if items[i].Company != items[j].Company {
			return items[i].Company < items[j].Company
		}
		return items[i].Name < items[j].Name
	})
	if len(items) > limit {
		items = items[:limit]
	}
	return items
}

func itemKey(company, name string) string {
	return strings.ToLower(strings.TrimSpace(company)) + "\x00" + strings.ToLower(strings.TrimSpace(name))
}
