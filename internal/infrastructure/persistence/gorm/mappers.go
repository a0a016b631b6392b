package gorm

import (
	"strings"

	"github.com/howl2go/v2/internal/domain/menu"
	"github.com/howl2go/v2/internal/domain/order"
	"github.com/howl2go/v2/internal/domain/user"
)

const listSeparator = "|"

func itemToDomain(m ItemModel) menu.Item {
	return menu.Item{
		ID:                   m.ID,
		Company:              m.Company,
		Name:                 m.Name,
		Calories:             m.Calories,
		CaloriesFromFat:      m.CaloriesFromFat,
		TotalFat:             m.TotalFat,
		SaturatedFat:         m.SaturatedFat,
		TransFat:             m.TransFat,
		Cholesterol:          m.Cholesterol,
		Sodium:               m.Sodium,
		Carbs:                m.Carbs,
		Fiber:                m.Fiber,
		Sugars:               m.Sugars,
		Protein:              m.Protein,
		WeightWatchersPoints: m.WeightWatchersPoints,
	}
}

func itemToModel(i menu.Item) ItemModel {
	return ItemModel{
		ID:                   i.ID,
		Company:              i.Company,
		Name:                 i.Name,
		Calories:             i.Calories,
		CaloriesFromFat:      i.CaloriesFromFat,
		TotalFat:             i.TotalFat,
		SaturatedFat:         i.SaturatedFat,
		TransFat:             i.TransFat,
		Cholesterol:          i.Cholesterol,
		Sodium:               i.Sodium,
		Carbs:                i.Carbs,
		Fiber:                i.Fiber,
		Sugars:               i.Sugars,
		Protein:              i.Protein,
		WeightWatchersPoints: i.WeightWatchersPoints,
	}
}

func orderToDomain(m OrderModel) order.Order {
	o := order.Order{
		ID:        m.ID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		Items:     make([]order.LineItem, len(m.Items)),
	}
	for i, line := range m.Items {
		o.Items[i] = order.LineItem{
			Company:  line.Company,
			Item:     line.Item,
			Quantity: line.Quantity,
			Calories: line.Calories,
			Protein:  line.Protein,
			Price:    line.Price,
		}
	}
	return o
}

func orderToModel(o order.Order) OrderModel {
	m := OrderModel{
		ID:        o.ID,
		UserID:    o.UserID,
		CreatedAt: o.CreatedAt,
		Items:     make([]OrderLineModel, len(o.Items)),
	}
	for i, line := range o.Items {
		m.Items[i] = OrderLineModel{
			OrderID:  o.ID,
			Company:  line.Company,
			Item:     line.Item,
			Quantity: line.Quantity,
			Calories: line.Calories,
			Protein:  line.Protein,
			Price:    line.Price,
		}
	}
	return m
}

func preferencesToDomain(m PreferencesModel) *user.Preferences {
	return &user.Preferences{
		UserID:              m.UserID,
		MaxCalories:         m.MaxCalories,
		MinProtein:          m.MinProtein,
		FavoriteVenues:      splitList(m.FavoriteVenues),
		DietaryRestrictions: splitList(m.DietaryRestrictions),
	}
}

func preferencesToModel(p user.Preferences) PreferencesModel {
	return PreferencesModel{
		UserID:              p.UserID,
		MaxCalories:         p.MaxCalories,
		MinProtein:          p.MinProtein,
		FavoriteVenues:      strings.Join(p.FavoriteVenues, listSeparator),
		DietaryRestrictions: strings.Join(p.DietaryRestrictions, listSeparator),
	}
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSeparator)
}
