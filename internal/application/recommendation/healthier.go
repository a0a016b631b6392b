package recommendation

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/ports/inbound"
	"github.com/howl2go/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// HealthierStrategy proposes lighter substitutes for the items the
// user orders most.
type HealthierStrategy struct {
	items  outbound.ItemRepository
	rng    *rand.Rand
	logger *zap.Logger
}

func NewHealthierStrategy(items outbound.ItemRepository, rng *rand.Rand, logger *zap.Logger) *HealthierStrategy {
	return &HealthierStrategy{items: items, rng: rng, logger: logger.Named("strategy-healthier")}
}

// Recommend looks for alternatives to each frequent item with half to
// eighty-five percent of its calories while keeping at least eighty
// percent of its protein. The highest protein alternative wins.
func (s *HealthierStrategy) Recommend(ctx context.Context, profile *Profile, limit int) ([]inbound.Recommendation, error) {
	if profile == nil || limit <= 0 {
		return nil, nil
	}

	recs := make([]inbound.Recommendation, 0, limit)
	for _, fav := range profile.FrequentItems {
		if len(recs) >= limit {
			break
		}
		original, err := s.items.FindOne(ctx, exactItemPredicate(fav.Company, fav.Name), outbound.FindOptions{})
		if err != nil {
			return nil, err
		}
		if original == nil || original.Calories <= 0 {
			continue
		}

		pred := query.Predicate{
			query.FieldCalories: {
				GTE: query.Float(original.Calories * 0.5),
				LTE: query.Float(original.Calories * 0.85),
			},
			query.FieldProtein: {GTE: query.Float(original.Protein * 0.8)},
		}
		alternative, err := s.items.FindOne(ctx, pred, outbound.FindOptions{
			ExcludeItemNames: []string{original.Name},
			SortField:        query.FieldProtein,
			SortDesc:         true,
		})
		if err != nil {
			return nil, err
		}
		if alternative == nil {
			continue
		}

		saved := original.Calories - alternative.Calories
		recs = append(recs, inbound.Recommendation{
			Item:          inbound.NewPricedItem(*alternative),
			Reason:        fmt.Sprintf("A lighter take on %s, saves %.0f calories", original.Name, saved),
			Type:          inbound.TypeHealthyAlt,
			Confidence:    75 + s.rng.Intn(15),
			CaloriesSaved: saved,
		})
	}
	return recs, nil
}
