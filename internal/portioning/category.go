package portioning

import "strings"

// meatMarker identifies categories that carry a portioning percentage
const meatMarker = "carne"

// IsMeatLike reports whether a category is subject to the adjustment rule
func IsMeatLike(category string) bool {
	return strings.Contains(strings.ToLower(category), meatMarker)
}

// TotalQuantity computes the dispatched quantity of a line.
// Meat-like categories with a positive adjustment use (base × 2) × (adjustment / 100);
// everything else dispatches the base quantity as is.
func TotalQuantity(category string, baseQuantity, adjustmentPercentage float64) float64 {
	if IsMeatLike(category) && adjustmentPercentage > 0 {
		return (baseQuantity * 2) * (adjustmentPercentage / 100)
	}
	return baseQuantity
}
