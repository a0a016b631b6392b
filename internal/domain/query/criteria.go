// Package query contains the typed constraint model derived from user
// intent and its compilation into store-ready predicates.
package query

import (
	"encoding/json"
	"sort"
)

// Attribute names a constrainable item attribute. The set is closed:
// anything outside it is recorded as ignored rather than carried as a
// dynamic field, so the compiler stays exhaustive.
type Attribute string

const (
	AttributeCalories        Attribute = "calories"
	AttributeCaloriesFromFat Attribute = "caloriesFromFat"
	AttributeTotalFat        Attribute = "totalFat"
	AttributeSaturatedFat    Attribute = "saturatedFat"
	AttributeTransFat        Attribute = "transFat"
	AttributeCholesterol     Attribute = "cholesterol"
	AttributeSodium          Attribute = "sodium"
	AttributeCarbs           Attribute = "carbs"
	AttributeFiber           Attribute = "fiber"
	AttributeSugars          Attribute = "sugars"
	AttributeProtein         Attribute = "protein"
	AttributePrice           Attribute = "price"
	AttributeItem            Attribute = "item"
	AttributeCompany         Attribute = "company"
)

// rangeAttributes are the attributes that accept numeric bounds.
var rangeAttributes = map[Attribute]bool{
	AttributeCalories:        true,
	AttributeCaloriesFromFat: true,
	AttributeTotalFat:        true,
	AttributeSaturatedFat:    true,
	AttributeTransFat:        true,
	AttributeCholesterol:     true,
	AttributeSodium:          true,
	AttributeCarbs:           true,
	AttributeFiber:           true,
	AttributeSugars:          true,
	AttributeProtein:         true,
	AttributePrice:           true,
}

// textAttributes are the attributes matched by case-insensitive
// substring rather than numeric comparison.
var textAttributes = map[Attribute]bool{
	AttributeItem:    true,
	AttributeCompany: true,
}

// Range is a desired numeric interval with optional bounds. At least one
// bound is present on any Range stored in a Criteria. Min > Max is
// representable and deliberately not corrected; such a range matches
// nothing downstream.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// Empty reports whether the range carries no bounds at all.
func (r Range) Empty() bool {
	return r.Min == nil && r.Max == nil
}

// Text is a desired substring match on a text attribute.
type Text struct {
	Name string `json:"name"`
}

// Criteria is the constraint model for one query: a mapping from known
// attributes to range or text constraints. Unmentioned attributes are
// absent. Built once per request and treated as immutable afterwards.
type Criteria struct {
	Ranges  map[Attribute]Range
	Texts   map[Attribute]Text
	Ignored []string
}

// NewCriteria returns an empty criteria set.
func NewCriteria() *Criteria {
	return &Criteria{
		Ranges: make(map[Attribute]Range),
		Texts:  make(map[Attribute]Text),
	}
}

// Empty reports whether no constraint was extracted, the expected
// outcome for off-topic input.
func (c *Criteria) Empty() bool {
	return len(c.Ranges) == 0 && len(c.Texts) == 0
}

// Range returns the range constraint for an attribute, if present.
func (c *Criteria) Range(attr Attribute) (Range, bool) {
	r, ok := c.Ranges[attr]
	return r, ok
}

// SetRange records a range constraint. Boundless ranges are dropped.
func (c *Criteria) SetRange(attr Attribute, r Range) {
	if !rangeAttributes[attr] || r.Empty() {
		return
	}
	c.Ranges[attr] = r
}

// SetText records a text constraint. Empty names are dropped.
func (c *Criteria) SetText(attr Attribute, t Text) {
	if !textAttributes[attr] || t.Name == "" {
		return
	}
	c.Texts[attr] = t
}

// Decode parses a raw structured-extraction payload into a Criteria.
// Known range attributes expect {"min": n, "max": n}; known text
// attributes expect {"name": s}. Unknown attribute names are collected
// into Ignored, never treated as errors, to stay forward-compatible with
// extraction vocabulary drift. Returns an error only when the payload is
// not a JSON object or a known attribute has the wrong shape.
func Decode(raw []byte) (*Criteria, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}

	c := NewCriteria()
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		attr := Attribute(name)
		switch {
		case rangeAttributes[attr]:
			var r Range
			if err := json.Unmarshal(fields[name], &r); err != nil {
				return nil, err
			}
			c.SetRange(attr, r)
		case textAttributes[attr]:
			var t Text
			if err := json.Unmarshal(fields[name], &t); err != nil {
				return nil, err
			}
			c.SetText(attr, t)
		default:
			c.Ignored = append(c.Ignored, name)
		}
	}

	return c, nil
}

// Float is a convenience for building range bounds in callers and tests.
func Float(v float64) *float64 {
	return &v
}
