package recommendation

import (
	"context"
	"fmt"

	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/ports/inbound"
	"github.com/howl2go/v2/internal/ports/outbound"
	"go.uber.org/zap"
)

// FrequentStrategy re-surfaces the items a user orders most often.
type FrequentStrategy struct {
	items  outbound.ItemRepository
	logger *zap.Logger
}

func NewFrequentStrategy(items outbound.ItemRepository, logger *zap.Logger) *FrequentStrategy {
	return &FrequentStrategy{items: items, logger: logger.Named("strategy-frequent")}
}

// Recommend resolves the profile's most ordered items back to catalog
// entries. Confidence grows with order count and saturates at 95.
func (s *FrequentStrategy) Recommend(ctx context.Context, profile *Profile, limit int) ([]inbound.Recommendation, error) {
	if profile == nil || limit <= 0 {
		return nil, nil
	}

	recs := make([]inbound.Recommendation, 0, limit)
	for _, fav := range profile.FrequentItems {
		if len(recs) >= limit {
			break
		}
		item, err := s.items.FindOne(ctx, exactItemPredicate(fav.Company, fav.Name), outbound.FindOptions{})
		if err != nil {
			return nil, err
		}
		if item == nil {
			s.logger.Debug("Frequent item no longer in catalog",
				zap.String("company", fav.Company), zap.String("item", fav.Name))
			continue
		}
		recs = append(recs, inbound.Recommendation{
			Item:       inbound.NewPricedItem(*item),
			Reason:     frequentReason(fav.Count),
			Type:       inbound.TypeFrequent,
			Confidence: frequentConfidence(fav.Count),
		})
	}
	return recs, nil
}

func frequentConfidence(count int) int {
	c := 70 + 5*count
	if c > 95 {
		c = 95
	}
	return c
}

func frequentReason(count int) string {
	if count == 1 {
		return "You've ordered this before"
	}
	return fmt.Sprintf("You've ordered this %d times", count)
}

// exactItemPredicate matches a single catalog item by venue and name.
func exactItemPredicate(company, name string) query.Predicate {
	return query.Predicate{
		query.FieldCompany: {Contains: []string{company}},
		query.FieldItem:    {Contains: []string{name}},
	}
}
