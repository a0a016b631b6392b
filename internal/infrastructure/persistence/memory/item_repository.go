// Package memory provides in-process repository implementations used
// in tests and for dependency-free development.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/howl2go/v2/internal/domain/menu"
	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/ports/outbound"
)

// ItemRepository keeps the catalog in a slice and evaluates predicates
// directly.
type ItemRepository struct {
	mu    sync.RWMutex
	items []menu.Item
}

func NewItemRepository(items ...menu.Item) *ItemRepository {
	return &ItemRepository{items: items}
}

// Add appends items to the catalog.
func (r *ItemRepository) Add(items ...menu.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, items...)
}

func (r *ItemRepository) Find(ctx context.Context, pred query.Predicate, opts outbound.FindOptions) ([]menu.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []menu.Item
	for _, item := range r.items {
		if matches(item, pred) && allowed(item, opts) {
			matched = append(matched, item)
		}
	}

	if opts.SortField != "" {
		sortItems(matched, opts.SortField, opts.SortDesc)
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched, nil
}

func (r *ItemRepository) FindOne(ctx context.Context, pred query.Predicate, opts outbound.FindOptions) (*menu.Item, error) {
	opts.Limit = 1
	found, err := r.Find(ctx, pred, opts)
	if err != nil || len(found) == 0 {
		return nil, err
	}
	item := found[0]
	return &item, nil
}

func matches(item menu.Item, pred query.Predicate) bool {
	for field, cmp := range pred {
		switch field {
		case query.FieldItem, query.FieldCompany:
			text := strings.ToLower(textValue(item, field))
			for _, term := range cmp.Contains {
				if !strings.Contains(text, strings.ToLower(term)) {
					return false
				}
			}
		default:
			v := numericValue(item, field)
			if cmp.GTE != nil && v < *cmp.GTE {
				return false
			}
			if cmp.LTE != nil && v > *cmp.LTE {
				return false
			}
		}
	}
	return true
}

func allowed(item menu.Item, opts outbound.FindOptions) bool {
	if len(opts.Venues) > 0 {
		found := false
		for _, v := range opts.Venues {
			if v == item.Company {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	name := strings.ToLower(item.Name)
	for _, excluded := range opts.ExcludeItemNames {
		if strings.Contains(name, strings.ToLower(excluded)) {
			return false
		}
	}
	return true
}

func sortItems(items []menu.Item, field query.Field, desc bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := numericValue(items[i], field), numericValue(items[j], field)
		if desc {
			return a > b
		}
		return a < b
	})
}

func textValue(item menu.Item, field query.Field) string {
	switch field {
	case query.FieldItem:
		return item.Name
	case query.FieldCompany:
		return item.Company
	default:
		return ""
	}
}

func numericValue(item menu.Item, field query.Field) float64 {
	switch field {
	case query.FieldCalories:
		return item.Calories
	case query.FieldCaloriesFromFat:
		return item.CaloriesFromFat
	case query.FieldTotalFat:
		return item.TotalFat
	case query.FieldSaturatedFat:
		return item.SaturatedFat
	case query.FieldTransFat:
		return item.TransFat
	case query.FieldCholesterol:
		return item.Cholesterol
	case query.FieldSodium:
		return item.Sodium
	case query.FieldCarbs:
		return item.Carbs
	case query.FieldFiber:
		return item.Fiber
	case query.FieldSugars:
		return item.Sugars
	case query.FieldProtein:
		return item.Protein
	default:
		return 0
	}
}
