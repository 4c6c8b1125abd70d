package pricing

import (
	"testing"

	"kitchenorders/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRecompute_MeatAdjustment(t *testing.T) {
	calc := NewCalculator()
	item := models.LineItem{RecipeID: "r1", Category: "Carne", BaseQuantity: 10, UnitPrice: 2.5}

	item = calc.Recompute(item, models.FieldAdjustmentPercentage, 20, 100)

	assert.Equal(t, 20.0, item.AdjustmentPercentage)
	assert.InDelta(t, 4.0, item.Quantity, 1e-9)
	assert.InDelta(t, 10.0, item.TotalPrice, 1e-9)
}

func TestRecompute_NonMeatIgnoresAdjustment(t *testing.T) {
	calc := NewCalculator()
	item := models.LineItem{RecipeID: "r2", Category: "Guarnición", AdjustmentPercentage: 30, UnitPrice: 1.2}

	item = calc.Recompute(item, models.FieldBaseQuantity, 7, 100)

	assert.Equal(t, 7.0, item.BaseQuantity)
	assert.Equal(t, 7.0, item.Quantity)
	assert.InDelta(t, 8.4, item.TotalPrice, 1e-9)
}

func TestRecompute_ClampsNegativeValues(t *testing.T) {
	calc := NewCalculator()
	item := models.LineItem{RecipeID: "r3", Category: "Postre", BaseQuantity: 3, UnitPrice: 1}

	item = calc.Recompute(item, models.FieldBaseQuantity, -2, 100)

	assert.Equal(t, 0.0, item.BaseQuantity)
	assert.Equal(t, 0.0, item.Quantity)
	assert.Equal(t, 0.0, item.TotalPrice)
}

func TestRecompute_KeepsSuggestion(t *testing.T) {
	calc := NewCalculator()
	suggestion := &models.Suggestion{HasSuggestion: true, SuggestedBaseQuantity: 2}
	item := models.LineItem{RecipeID: "r4", Category: "Verdura", Suggestion: suggestion}

	item = calc.Recompute(item, models.FieldUnitPrice, 3, 50)

	assert.Same(t, suggestion, item.Suggestion)
	assert.Equal(t, 3.0, item.UnitPrice)
}
