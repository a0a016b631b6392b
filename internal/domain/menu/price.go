package menu

import "math"

// Price derivation constants. Every caller that displays or filters by
// price must use this exact formula; the query compiler relies on the
// same constants to invert price constraints into calorie constraints.
const (
	PricePerCalorie = 0.01
	PriceFloor      = 2.00
	PriceCeiling    = 15.00

	// Calorie bounds implied by the price clamp.
	CaloriesAtFloor   = PriceFloor / PricePerCalorie    // 200
	CaloriesAtCeiling = PriceCeiling / PricePerCalorie  // 1500
)

// PriceFor derives an item price from its calorie count:
// price = clamp(calories * 0.01, 2.00, 15.00).
// Non-positive or missing calories price at the floor.
func PriceFor(calories float64) float64 {
	if calories <= 0 {
		return PriceFloor
	}
	return round2(math.Min(math.Max(calories*PricePerCalorie, PriceFloor), PriceCeiling))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
