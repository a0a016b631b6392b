package recommendation

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/howl2go/v2/internal/domain/menu"
	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/ports/inbound"
	"github.com/howl2go/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// ExploreStrategy nudges the user toward venues they have not tried,
// staying inside a familiar calorie band.
type ExploreStrategy struct {
	items  outbound.ItemRepository
	rng    *rand.Rand
	logger *zap.Logger
}

// NewExploreStrategy creates the exploration strategy. rng is owned by
// this strategy and must not be shared across goroutines.
func NewExploreStrategy(items outbound.ItemRepository, rng *rand.Rand, logger *zap.Logger) *ExploreStrategy {
	return &ExploreStrategy{items: items, rng: rng, logger: logger.Named("strategy-explore")}
}

// Recommend searches a wider calorie band, plus-or-minus thirty
// percent, across venues the user has never ordered from. Candidates
// are shuffled before the per-venue pick so the representative item is
// a random draw rather than a fixed one, and at most one item per venue
// keeps a single chain from dominating the novelty slots.
func (s *ExploreStrategy) Recommend(ctx context.Context, profile *Profile, limit int) ([]inbound.Recommendation, error) {
	if profile == nil || limit <= 0 || profile.AvgCalories <= 0 {
		return nil, nil
	}

	pred := query.Predicate{
		query.FieldCalories: {
			GTE: query.Float(profile.AvgCalories * 0.7),
			LTE: query.Float(profile.AvgCalories * 1.3),
		},
	}

	candidates, err := s.items.Find(ctx, pred, outbound.FindOptions{
		Venues:    explorableVenues(profile),
		SortField: query.FieldProtein,
		SortDesc:  true,
		Limit:     limit * 3,
	})
	if err != nil {
		return nil, err
	}

	s.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	seenVenue := map[string]bool{}
	recs := make([]inbound.Recommendation, 0, limit)
	for _, item := range candidates {
		if len(recs) >= limit {
			break
		}
		if seenVenue[item.Company] {
			continue
		}
		seenVenue[item.Company] = true
		recs = append(recs, inbound.Recommendation{
			Item:       inbound.NewPricedItem(item),
			Reason:     exploreReason(profile, item.Company),
			Type:       inbound.TypeExplore,
			Confidence: 60 + s.rng.Intn(15),
		})
	}
	return recs, nil
}

// explorableVenues returns the venues the user has never ordered from.
// A user who has tried every venue instead gets everything outside
// their top three, so exploration still has somewhere to point.
func explorableVenues(profile *Profile) []string {
	unexplored := make([]string, 0, len(menu.Companies))
	for _, company := range menu.Companies {
		if !profile.HasOrderedFrom(company) {
			unexplored = append(unexplored, company)
		}
	}
	if len(unexplored) > 0 {
		return unexplored
	}

	top := profile.TopVenueNames(3)
	rare := make([]string, 0, len(menu.Companies))
	for _, company := range menu.Companies {
		if !containsFold(top, company) {
			rare = append(rare, company)
		}
	}
	return rare
}

func exploreReason(profile *Profile, venue string) string {
	if profile.HasOrderedFrom(venue) {
		return fmt.Sprintf("Try something new! You rarely order from %s", venue)
	}
	return fmt.Sprintf("Try something new! You haven't explored %s yet", venue)
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
