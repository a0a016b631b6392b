package query

// Field names a stored item column a predicate can compare against.
// Field names match the catalog's stored spelling; notably there is no
// price field, because price is derived from calories at read time.
type Field string

const (
	FieldCalories        Field = "calories"
	FieldCaloriesFromFat Field = "caloriesFromFat"
	FieldTotalFat        Field = "totalFat"
	FieldSaturatedFat    Field = "saturatedFat"
	FieldTransFat        Field = "transFat"
	FieldCholesterol     Field = "cholesterol"
	FieldSodium          Field = "sodium"
	FieldCarbs           Field = "carbs"
	FieldFiber           Field = "fiber"
	FieldSugars          Field = "sugars"
	FieldProtein         Field = "protein"
	FieldItem            Field = "item"
	FieldCompany         Field = "company"
)

// Comparison is a compiled comparison expression over one stored field.
// GTE/LTE apply to numeric fields; Contains holds case-insensitive
// substring terms for text fields, all of which must match.
type Comparison struct {
	GTE      *float64
	LTE      *float64
	Contains []string
}

// Predicate is the store-ready compiled form of a Criteria: a mapping
// from stored field to its comparison expression. Stores interpret it
// as a conjunction across fields.
type Predicate map[Field]Comparison

// NumericBounds returns the gte/lte bounds for a field, nil when unset.
func (p Predicate) NumericBounds(f Field) (gte, lte *float64) {
	c, ok := p[f]
	if !ok {
		return nil, nil
	}
	return c.GTE, c.LTE
}
