package gorm

import (
	"context"
	"strings"

	"github.com/howl2go/v2/internal/domain/menu"
	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/ports/outbound"
	"github.com/howl2go/v2/pkg/errors"
	"gorm.io/gorm"
)

// defaultFindLimit bounds unpaged catalog scans.
const defaultFindLimit = 50

// columnFor maps predicate fields to stored columns.
var columnFor = map[query.Field]string{
	query.FieldCalories:        "calories",
	query.FieldCaloriesFromFat: "calories_from_fat",
	query.FieldTotalFat:        "total_fat",
	query.FieldSaturatedFat:    "saturated_fat",
	query.FieldTransFat:        "trans_fat",
	query.FieldCholesterol:     "cholesterol",
	query.FieldSodium:          "sodium",
	query.FieldCarbs:           "carbs",
	query.FieldFiber:           "fiber",
	query.FieldSugars:          "sugars",
	query.FieldProtein:         "protein",
	query.FieldItem:            "item",
	query.FieldCompany:         "company",
}

// ItemRepository implements outbound.ItemRepository over GORM.
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Find returns catalog items matching the predicate and options.
func (r *ItemRepository) Find(ctx context.Context, pred query.Predicate, opts outbound.FindOptions) ([]menu.Item, error) {
	q := r.apply(r.db.WithContext(ctx).Model(&ItemModel{}), pred, opts)

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultFindLimit
	}

	var models []ItemModel
	if err := q.Limit(limit).Find(&models).Error; err != nil {
		return nil, errors.NewDatabaseError("find items", err)
	}

	items := make([]menu.Item, len(models))
	for i, m := range models {
		items[i] = itemToDomain(m)
	}
	return items, nil
}

// FindOne returns the best match for the predicate, or nil when no
// item matches.
func (r *ItemRepository) FindOne(ctx context.Context, pred query.Predicate, opts outbound.FindOptions) (*menu.Item, error) {
	q := r.apply(r.db.WithContext(ctx).Model(&ItemModel{}), pred, opts)

	var m ItemModel
	err := q.First(&m).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewDatabaseError("find item", err)
	}
	item := itemToDomain(m)
	return &item, nil
}

// Save upserts catalog items, used by seeding.
func (r *ItemRepository) Save(ctx context.Context, items ...menu.Item) error {
	if len(items) == 0 {
		return nil
	}
	models := make([]ItemModel, len(items))
	for i, item := range items {
		if err := item.Validate(); err != nil {
			return errors.NewInvalidInputError(err.Error())
		}
		models[i] = itemToModel(item)
	}
	if err := r.db.WithContext(ctx).Save(&models).Error; err != nil {
		return errors.NewDatabaseError("save items", err)
	}
	return nil
}

func (r *ItemRepository) apply(q *gorm.DB, pred query.Predicate, opts outbound.FindOptions) *gorm.DB {
	for field, cmp := range pred {
		column, ok := columnFor[field]
		if !ok {
			continue
		}
		if cmp.GTE != nil {
			q = q.Where(column+" >= ?", *cmp.GTE)
		}
		if cmp.LTE != nil {
			q = q.Where(column+" <= ?", *cmp.LTE)
		}
		for _, term := range cmp.Contains {
			q = q.Where("LOWER("+column+") LIKE ?", "%"+strings.ToLower(term)+"%")
		}
	}

	if len(opts.Venues) > 0 {
		q = q.Where("company IN ?", opts.Venues)
	}
	for _, name := range opts.ExcludeItemNames {
		q = q.Where("LOWER(item) NOT LIKE ?", "%"+strings.ToLower(name)+"%")
	}

	if column, ok := columnFor[opts.SortField]; ok && opts.SortField != "" {
		dir := " ASC"
		if opts.SortDesc {
			dir = " DESC"
		}
		q = q.Order(column + dir)
	}
	return q
}
