package memory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/domain/menu"
	"github.com/howl2go/v2/internal/domain/query"
	"github.com/howl2go/v2/internal/ports/outbound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func catalogItem(company, name string, calories, protein float64) menu.Item {
	return menu.Item{ID: uuid.New(), Company: company, Name: name, Calories: calories, Protein: protein}
}

func TestFindNumericBounds(t *testing.T) {
	repo := NewItemRepository(
		catalogItem("Wendy's", "Baconator", 950, 57),
		catalogItem("KFC", "Famous Bowl", 720, 26),
		catalogItem("Taco Bell", "Crunchwrap", 530, 17),
	)

	pred := query.Predicate{
		query.FieldCalories: {GTE: query.Float(600), LTE: query.Float(800)},
	}
	found, err := repo.Find(context.Background(), pred, outbound.FindOptions{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Famous Bowl", found[0].Name)
}

func TestFindContainsIsCaseInsensitive(t *testing.T) {
	repo := NewItemRepository(
		catalogItem("Wendy's", "Spicy Chicken Sandwich", 510, 28),
		catalogItem("KFC", "Chicken Littles", 310, 17),
		catalogItem("Taco Bell", "Bean Burrito", 420, 14),
	)

	pred := query.Predicate{
		query.FieldItem: {Contains: []string{"CHICKEN"}},
	}
	found, err := repo.Find(context.Background(), pred, outbound.FindOptions{})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestFindAllContainsTermsMustMatch(t *testing.T) {
	repo := NewItemRepository(
		catalogItem("KFC", "Famous Bowl", 720, 26),
		catalogItem("KFC", "Famous Sandwich", 620, 30),
	)

	pred := query.Predicate{
		query.FieldItem: {Contains: []string{"famous", "bowl"}},
	}
	found, err := repo.Find(context.Background(), pred, outbound.FindOptions{})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Famous Bowl", found[0].Name)
}

func TestFindOptionsVenueAndExclusion(t *testing.T) {
	repo := NewItemRepository(
		catalogItem("Wendy's", "Baconator", 950, 57),
		catalogItem("Wendy's", "Frosty", 350, 9),
		catalogItem("KFC", "Famous Bowl", 720, 26),
	)

	found, err := repo.Find(context.Background(), query.Predicate{}, outbound.FindOptions{
		Venues:           []string{"Wendy's"},
		ExcludeItemNames: []string{"frosty"},
	})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Baconator", found[0].Name)
}

func TestFindSortAndLimit(t *testing.T) {
	repo := NewItemRepository(
		catalogItem("Wendy's", "Baconator", 950, 57),
		catalogItem("KFC", "Famous Bowl", 720, 26),
		catalogItem("Taco Bell", "Crunchwrap", 530, 17),
	)

	found, err := repo.Find(context.Background(), query.Predicate{}, outbound.FindOptions{
		SortField: query.FieldProtein,
		SortDesc:  true,
		Limit:     2,
	})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Baconator", found[0].Name)
	assert.Equal(t, "Famous Bowl", found[1].Name)
}

func TestFindOneReturnsNilWhenAbsent(t *testing.T) {
	repo := NewItemRepository()

	found, err := repo.FindOne(context.Background(), query.Predicate{
		query.FieldItem: {Contains: []string{"anything"}},
	}, outbound.FindOptions{})
	require.NoError(t, err)
	assert.Nil(t, found)
}
