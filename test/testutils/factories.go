// Package testutils provides deterministic test data builders.
package testutils

import (
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/howl2go/v2/internal/domain/menu"
	"github.com/howl2go/v2/internal/domain/order"
)

// NewFaker returns a seeded faker so factory output is reproducible.
func NewFaker() *gofakeit.Faker {
	return gofakeit.New(42)
}

// ItemOption mutates a generated item.
type ItemOption func(*menu.Item)

func WithCompany(company string) ItemOption {
	return func(i *menu.Item) { i.Company = company }
}

func WithName(name string) ItemOption {
	return func(i *menu.Item) { i.Name = name }
}

func WithCalories(calories float64) ItemOption {
	return func(i *menu.Item) { i.Calories = calories }
}

func WithProtein(protein float64) ItemOption {
	return func(i *menu.Item) { i.Protein = protein }
}

// Item builds a plausible menu item and applies the options.
func Item(faker *gofakeit.Faker, opts ...ItemOption) menu.Item {
	item := menu.Item{
		ID:       uuid.New(),
		Company:  faker.RandomString(menu.Companies),
		Name:     faker.Dinner(),
		Calories: faker.Float64Range(150, 1200),
		TotalFat: faker.Float64Range(5, 50),
		Sodium:   faker.Float64Range(200, 1500),
		Carbs:    faker.Float64Range(20, 80),
		Sugars:   faker.Float64Range(0, 30),
		Protein:  faker.Float64Range(5, 45),
	}
	for _, opt := range opts {
		opt(&item)
	}
	return item
}

// OrderOf builds an order of the given items, one of each, for a user.
func OrderOf(userID uuid.UUID, createdAt time.Time, items ...menu.Item) order.Order {
	o := order.Order{
		ID:        uuid.New(),
		UserID:    userID,
		CreatedAt: createdAt,
		Items:     make([]order.LineItem, len(items)),
	}
	for i, item := range items {
		o.Items[i] = order.LineItem{
			Company:  item.Company,
			Item:     item.Name,
			Quantity: 1,
			Calories: item.Calories,
			Protein:  item.Protein,
			Price:    item.Price(),
		}
	}
	return o
}
