package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePriceInversion(t *testing.T) {
	t.Run("max price becomes max calories", func(t *testing.T) {
		c := NewCriteria()
		c.SetRange(AttributePrice, Range{Max: Float(5)})

		pred := Compile(c)
		gte, lte := pred.NumericBounds(FieldCalories)
		assert.Nil(t, gte)
		require.NotNil(t, lte)
		assert.Equal(t, 500.0, *lte)
	})

	t.Run("price band becomes calorie band", func(t *testing.T) {
		c := NewCriteria()
		c.SetRange(AttributePrice, Range{Min: Float(10), Max: Float(15)})

		pred := Compile(c)
		gte, lte := pred.NumericBounds(FieldCalories)
		require.NotNil(t, gte)
		require.NotNil(t, lte)
		assert.Equal(t, 1000.0, *gte)
		assert.Equal(t, 1500.0, *lte)
	})

	t.Run("price at the floor maps to the calorie floor", func(t *testing.T) {
		c := NewCriteria()
		c.SetRange(AttributePrice, Range{Max: Float(2)})

		pred := Compile(c)
		_, lte := pred.NumericBounds(FieldCalories)
		require.NotNil(t, lte)
		assert.Equal(t, 200.0, *lte)
	})

	t.Run("derived minimum respects the calorie floor", func(t *testing.T) {
		c := NewCriteria()
		c.SetRange(AttributePrice, Range{Min: Float(1)})

		pred := Compile(c)
		gte, _ := pred.NumericBounds(FieldCalories)
		require.NotNil(t, gte)
		assert.Equal(t, 200.0, *gte)
	})

	t.Run("intersects with explicit calorie constraint", func(t *testing.T) {
		c := NewCriteria()
		c.SetRange(AttributePrice, Range{Max: Float(5)})
		c.SetRange(AttributeCalories, Range{Max: Float(400)})

		pred := Compile(c)
		_, lte := pred.NumericBounds(FieldCalories)
		require.NotNil(t, lte)
		assert.Equal(t, 400.0, *lte)
	})

	t.Run("disjoint intersection is preserved", func(t *testing.T) {
		// cheap but high calorie: price max 3 caps calories at 300
		// while the explicit minimum demands 800. The empty band
		// passes through so the store matches nothing.
		c := NewCriteria()
		c.SetRange(AttributePrice, Range{Max: Float(3)})
		c.SetRange(AttributeCalories, Range{Min: Float(800)})

		pred := Compile(c)
		gte, lte := pred.NumericBounds(FieldCalories)
		require.NotNil(t, gte)
		require.NotNil(t, lte)
		assert.Equal(t, 800.0, *gte)
		assert.Equal(t, 300.0, *lte)
		assert.Greater(t, *gte, *lte)
	})
}

func TestCompileRangesAndText(t *testing.T) {
	c := NewCriteria()
	c.SetRange(AttributeProtein, Range{Min: Float(25)})
	c.SetRange(AttributeSodium, Range{Max: Float(1000)})
	c.SetText(AttributeItem, Text{Name: "burger"})
	c.SetText(AttributeCompany, Text{Name: "Wendy's"})

	pred := Compile(c)

	gte, lte := pred.NumericBounds(FieldProtein)
	require.NotNil(t, gte)
	assert.Nil(t, lte)
	assert.Equal(t, 25.0, *gte)

	_, sodiumMax := pred.NumericBounds(FieldSodium)
	require.NotNil(t, sodiumMax)
	assert.Equal(t, 1000.0, *sodiumMax)

	assert.Equal(t, []string{"burger"}, pred[FieldItem].Contains)
	assert.Equal(t, []string{"Wendy's"}, pred[FieldCompany].Contains)
}

func TestCompileDoesNotMutateCriteria(t *testing.T) {
	c := NewCriteria()
	c.SetRange(AttributePrice, Range{Max: Float(5)})

	_ = Compile(c)
	_ = Compile(c)

	r, ok := c.Range(AttributePrice)
	require.True(t, ok)
	require.NotNil(t, r.Max)
	assert.Equal(t, 5.0, *r.Max)
	_, hasCalories := c.Range(AttributeCalories)
	assert.False(t, hasCalories)
}

func TestDecodeCollectsUnknownKeys(t *testing.T) {
	raw := []byte(`{"calories": {"max": 500}, "spiciness": {"min": 3}, "item": {"name": "taco"}}`)

	c, err := Decode(raw)
	require.NoError(t, err)

	r, ok := c.Range(AttributeCalories)
	require.True(t, ok)
	require.NotNil(t, r.Max)
	assert.Equal(t, 500.0, *r.Max)
	assert.Equal(t, []string{"spiciness"}, c.Ignored)
}

func TestDecodeEmptyObject(t *testing.T) {
	c, err := Decode([]byte(`{}`))
	require.NoError(t, err)
	assert.True(t, c.Empty())
}
