package query

import (
	"math"

	"github.com/howl2go/v2/internal/domain/menu"
)

// rangeFields maps range attributes to their stored fields. Price is
// absent on purpose: it has no stored counterpart and is folded into
// calories before field mapping happens.
var rangeFields = map[Attribute]Field{
	AttributeCalories:        FieldCalories,
	AttributeCaloriesFromFat: FieldCaloriesFromFat,
	AttributeTotalFat:        FieldTotalFat,
	AttributeSaturatedFat:    FieldSaturatedFat,
	AttributeTransFat:        FieldTransFat,
	AttributeCholesterol:     FieldCholesterol,
	AttributeSodium:          FieldSodium,
	AttributeCarbs:           FieldCarbs,
	AttributeFiber:           FieldFiber,
	AttributeSugars:          FieldSugars,
	AttributeProtein:         FieldProtein,
}

var textFields = map[Attribute]Field{
	AttributeItem:    FieldItem,
	AttributeCompany: FieldCompany,
}

// Compile converts a criteria set into a store-ready predicate. It is a
// pure function: no external calls, and identical criteria always yield
// an identical predicate.
//
// Price runs first. A price bound is inverted into a calorie bound via
// calories = price / 0.01, then clamped into [200, 1500] because the
// forward price formula's floor/ceiling clamp is not invertible outside
// that band. When an explicit calorie range is also present the two are
// merged by intersection: max of mins, min of maxes. A disjoint pair
// therefore produces min > max, which matches nothing; that outcome is
// preserved rather than corrected.
func Compile(c *Criteria) Predicate {
	pred := make(Predicate)
	if c == nil {
		return pred
	}

	priceHandled := false
	if price, ok := c.Range(AttributePrice); ok {
		pred[FieldCalories] = compileCalorieBounds(price, c.Ranges[AttributeCalories])
		priceHandled = true
	}

	for attr, field := range rangeFields {
		if priceHandled && attr == AttributeCalories {
			continue
		}
		r, ok := c.Range(attr)
		if !ok {
			continue
		}
		cmp := Comparison{}
		if r.Min != nil {
			cmp.GTE = Float(*r.Min)
		}
		if r.Max != nil {
			cmp.LTE = Float(*r.Max)
		}
		pred[field] = cmp
	}

	for attr, field := range textFields {
		t, ok := c.Texts[attr]
		if !ok {
			continue
		}
		pred[field] = Comparison{Contains: []string{t.Name}}
	}

	return pred
}

// compileCalorieBounds inverts a price range into calorie bounds and
// intersects them with any explicit calorie range.
func compileCalorieBounds(price, calories Range) Comparison {
	cmp := Comparison{}

	if price.Min != nil {
		derived := math.Max(*price.Min/menu.PricePerCalorie, menu.CaloriesAtFloor)
		cmp.GTE = Float(derived)
	}
	if price.Max != nil {
		derived := math.Min(*price.Max/menu.PricePerCalorie, menu.CaloriesAtCeiling)
		cmp.LTE = Float(derived)
	}

	if calories.Min != nil {
		if cmp.GTE == nil || *calories.Min > *cmp.GTE {
			cmp.GTE = Float(*calories.Min)
		}
	}
	if calories.Max != nil {
		if cmp.LTE == nil || *calories.Max < *cmp.LTE {
			cmp.LTE = Float(*calories.Max)
		}
	}

	return cmp
}
