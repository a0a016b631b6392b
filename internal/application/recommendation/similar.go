package recommendation

import (
	"context"
	"math"
	"sort"

	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/ports/inbound"
	"github.com/howl2go/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// SimilarStrategy finds items nutritionally close to what the user
// already eats, excluding the items they already order.
type SimilarStrategy struct {
	items  outbound.ItemRepository
	logger *zap.Logger
}

func NewSimilarStrategy(items outbound.ItemRepository, logger *zap.Logger) *SimilarStrategy {
	return &SimilarStrategy{items: items, logger: logger.Named("strategy-similar")}
}

// Recommend searches a calorie band of plus-or-minus twenty percent
// around the user's average and scores candidates by closeness to the
// profile. Known frequent items are excluded so the strategy only ever
// suggests something new.
func (s *SimilarStrategy) Recommend(ctx context.Context, profile *Profile, limit int) ([]inbound.Recommendation, error) {
	if profile == nil || limit <= 0 || profile.AvgCalories <= 0 {
		return nil, nil
	}

	pred := query.Predicate{
		query.FieldCalories: {
			GTE: query.Float(profile.AvgCalories * 0.8),
			LTE: query.Float(profile.AvgCalories * 1.2),
		},
	}

	exclude := make([]string, 0, len(profile.FrequentItems))
	for _, fav := range profile.FrequentItems {
		exclude = append(exclude, fav.Name)
	}

	candidates, err := s.items.Find(ctx, pred, outbound.FindOptions{
		ExcludeItemNames: exclude,
		Limit:            limit * 5,
	})
	if err != nil {
		return nil, err
	}

	favorites := map[string]bool{}
	for _, v := range profile.FavoriteVenues {
		favorites[v.Name] = true
	}

	recs := make([]inbound.Recommendation, 0, len(candidates))
	for _, item := range candidates {
		score := 50
		favVenue := favorites[item.Company]
		if favVenue {
			score += 20
		}
		if item.Protein >= profile.AvgProtein {
			score += 10
		}
		if math.Abs(item.Calories-profile.AvgCalories) <= 100 {
			score += 15
		}
		if score > 90 {
			score = 90
		}
		recs = append(recs, inbound.Recommendation{
			Item:       inbound.NewPricedItem(item),
			Reason:     similarReason(favVenue),
			Type:       inbound.TypeSimilar,
			Confidence: score,
		})
	}

	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Confidence > recs[j].Confidence
	})
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

func similarReason(favoriteVenue bool) string {
	if favoriteVenue {
		return "Similar to your usual order, from a place you love"
	}
	return "Similar to your usual order"
}
