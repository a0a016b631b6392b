package recommendation

import (
	"context"

	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/ports/inbound"
	"github.com/howl2go/v2/internal/ports/outbound"
)

// popularItems returns broadly appealing catalog items, used for users
// with no order history and to fill out short result sets. The cutoffs
// favor items with real protein that are not calorie bombs.
func popularItems(ctx context.Context, items outbound.ItemRepository, limit int) ([]inbound.Recommendation, error) {
	if limit <= 0 {
		return nil, nil
	}

	pred := query.Predicate{
		query.FieldProtein:  {GTE: query.Float(15)},
		query.FieldCalories: {LTE: query.Float(800)},
	}
	found, err := items.Find(ctx, pred, outbound.FindOptions{
		SortField: query.FieldProtein,
		SortDesc:  true,
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}

	recs := make([]inbound.Recommendation, 0, len(found))
	for _, item := range found {
		recs = append(recs, inbound.Recommendation{
			Item:       inbound.NewPricedItem(item),
			Reason:     "Popular choice",
			Type:       inbound.TypePopular,
			Confidence: 65,
		})
	}
	return recs, nil
}
