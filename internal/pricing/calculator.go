// Package pricing keeps the derived values of a line item (dispatched
// quantity and total price) consistent with its editable fields.
package pricing

import (
	"math"

	"kitchenorders/internal/models"
	"kitchenorders/internal/portioning"
)

// Calculator recomputes line item values after a field changes
type Calculator struct{}

// NewCalculator creates a new calculator
func NewCalculator() *Calculator {
	return &Calculator{}
}

// Recompute sets field to value and refreshes the derived quantity and price.
// Negative values are stored as zero. mealsExpected is accepted to match the
// order editor's contract; the category rule does not depend on it.
func (c *Calculator) Recompute(item models.LineItem, field models.Field, value float64, mealsExpected int) models.LineItem {
	if value < 0 || math.IsNaN(value) {
		value = 0
	}

	switch field {
	case models.FieldBaseQuantity:
		item.BaseQuantity = value
	case models.FieldAdjustmentPercentage:
		item.AdjustmentPercentage = value
	case models.FieldUnitPrice:
		item.UnitPrice = value
	}

	item.Quantity = portioning.TotalQuantity(item.Category, item.BaseQuantity, item.AdjustmentPercentage)
	item.TotalPrice = portioning.Round(item.Quantity*item.UnitPrice, 2)
	return item
}
