package forecast

import (
	"testing"

	"kitchenorders/internal/models"
	"kitchenorders/internal/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func suggestedLine(item models.LineItem, quantity, adjustment float64, meals int) models.LineItem {
	item.BaseQuantity = quantity
	item.AdjustmentPercentage = adjustment
	item.Suggestion = &models.Suggestion{
		HasSuggestion:                 true,
		Confidence:                    1,
		BasedOnSamples:                4,
		RecentSamples:                 4,
		SuggestedBaseQuantity:         quantity,
		SuggestedAdjustmentPercentage: adjustment,
		MealsExpected:                 meals,
		Source:                        models.SourceRatioPerMeal,
	}
	return item
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("fill_empty")
	require.NoError(t, err)
	assert.Equal(t, StrategyFillEmpty, s)

	s, err = ParseStrategy("replace_all")
	require.NoError(t, err)
	assert.Equal(t, StrategyReplaceAll, s)

	_, err = ParseStrategy("merge")
	assert.Error(t, err)
}

func TestFillEmptyOnly(t *testing.T) {
	applier := NewApplier(pricing.NewCalculator())
	original := []models.LineItem{
		{RecipeID: "empty", Category: "Verdura", UnitType: "cuba", UnitPrice: 2},
		{RecipeID: "filled", Category: "Verdura", UnitType: "cuba", BaseQuantity: 5, Quantity: 5, UnitPrice: 2, TotalPrice: 10},
		{RecipeID: "meat", Category: "Carne", UnitType: "kg"},
		{RecipeID: "meat-filled", Category: "Carne", UnitType: "kg", BaseQuantity: 8, Quantity: 8},
	}
	suggested := []models.LineItem{
		suggestedLine(original[0], 3, 0, 100),
		suggestedLine(original[1], 2, 0, 100),
		suggestedLine(original[2], 10, 20, 100),
		suggestedLine(original[3], 10, 20, 100),
	}

	out := applier.FillEmptyOnly(original, suggested, 100)

	require.Len(t, out, 4)
	assert.Equal(t, 3.0, out[0].BaseQuantity)
	assert.Equal(t, 6.0, out[0].TotalPrice)

	assert.Equal(t, 5.0, out[1].BaseQuantity)
	assert.Equal(t, 10.0, out[1].TotalPrice)
	assert.NotNil(t, out[1].Suggestion)

	assert.Equal(t, 10.0, out[2].BaseQuantity)
	assert.Equal(t, 20.0, out[2].AdjustmentPercentage)
	assert.InDelta(t, 4.0, out[2].Quantity, 1e-9)

	assert.Equal(t, 8.0, out[3].BaseQuantity)
	assert.Equal(t, 0.0, out[3].AdjustmentPercentage)
	assert.Equal(t, 8.0, out[3].Quantity)

	// originals untouched
	assert.Equal(t, 0.0, original[0].BaseQuantity)
	assert.Nil(t, original[0].Suggestion)
}

func TestFillEmptyOnly_NeverModifiesQuantifiedItems(t *testing.T) {
	applier := NewApplier(pricing.NewCalculator())
	for _, base := range []float64{0.1, 1, 2.5, 40} {
		original := []models.LineItem{{RecipeID: "r1", Category: "Carne", UnitType: "cuba", BaseQuantity: base, Quantity: base}}
		suggested := []models.LineItem{suggestedLine(original[0], 7, 30, 100)}

		for _, target := range []int{50, 100, 250} {
			out := applier.FillEmptyOnly(original, suggested, target)

			assert.Equal(t, base, out[0].BaseQuantity)
			assert.Equal(t, 0.0, out[0].AdjustmentPercentage)
			assert.Equal(t, base, out[0].Quantity)
		}
	}
}

func TestFillEmptyOnly_SkipsLinesWithoutSuggestion(t *testing.T) {
	applier := NewApplier(pricing.NewCalculator())
	original := []models.LineItem{{RecipeID: "r1"}, {RecipeID: "r2"}}
	noHistory := original[0]
	noHistory.Suggestion = &models.Suggestion{HasSuggestion: false, Reason: models.ReasonNoHistory}

	out := applier.FillEmptyOnly(original, []models.LineItem{noHistory}, 100)

	assert.Equal(t, 0.0, out[0].BaseQuantity)
	require.NotNil(t, out[0].Suggestion)
	assert.Equal(t, models.ReasonNoHistory, out[0].Suggestion.Reason)
	assert.Nil(t, out[1].Suggestion)
}

func TestReplaceAll(t *testing.T) {
	applier := NewApplier(pricing.NewCalculator())
	original := []models.LineItem{
		{RecipeID: "r1", Category: "Verdura", UnitType: "cuba", BaseQuantity: 9, AdjustmentPercentage: 5},
		{RecipeID: "r2", Category: "Carne", UnitType: "kg", BaseQuantity: 1, AdjustmentPercentage: 40},
		{RecipeID: "r3", Category: "Postre", UnitType: "unid", BaseQuantity: 4},
	}
	suggested := []models.LineItem{
		suggestedLine(original[0], 3, 0, 100),
		suggestedLine(original[1], 10, 20, 100),
		original[2],
	}

	out := applier.ReplaceAll(original, suggested, 100)

	assert.Equal(t, 3.0, out[0].BaseQuantity)
	assert.Equal(t, 0.0, out[0].AdjustmentPercentage)
	assert.Equal(t, 10.0, out[1].BaseQuantity)
	assert.Equal(t, 20.0, out[1].AdjustmentPercentage)
	assert.InDelta(t, 4.0, out[1].Quantity, 1e-9)
	assert.Equal(t, 4.0, out[2].BaseQuantity)
}

func TestReplaceAll_Rescales(t *testing.T) {
	applier := NewApplier(pricing.NewCalculator())
	original := []models.LineItem{{RecipeID: "r1", Category: "Verdura", UnitType: "cuba", BaseQuantity: 1}}
	suggested := []models.LineItem{suggestedLine(original[0], 3, 0, 150)}

	out := applier.ReplaceAll(original, suggested, 100)

	assert.Equal(t, 2.0, out[0].BaseQuantity)
	s := out[0].Suggestion
	require.NotNil(t, s.ScaledFrom)
	require.NotNil(t, s.ScalingRatio)
	assert.Equal(t, 150, *s.ScaledFrom)
	assert.InDelta(t, 100.0/150.0, *s.ScalingRatio, 1e-12)

	// the suggestion handed in is not mutated
	assert.Nil(t, suggested[0].Suggestion.ScaledFrom)
}

func TestReplaceAll_RescaleRoundTrip(t *testing.T) {
	applier := NewApplier(pricing.NewCalculator())
	testCases := []struct {
		unit     string
		quantity float64
		m1, m2   int
	}{
		{"cuba", 3, 150, 100},
		{"kg", 12.4, 80, 200},
		{"litros", 2.3, 60, 90},
		{"unid", 1.25, 120, 120},
	}

	for _, tc := range testCases {
		item := models.LineItem{RecipeID: "r1", Category: "Verdura", UnitType: tc.unit}
		first := applier.ReplaceAll([]models.LineItem{item}, []models.LineItem{suggestedLine(item, tc.quantity, 0, tc.m1)}, tc.m2)
		back := applier.ReplaceAll(first, []models.LineItem{suggestedLine(item, first[0].BaseQuantity, 0, tc.m2)}, tc.m1)

		assert.InDelta(t, tc.quantity, back[0].BaseQuantity, 0.25, "unit %s", tc.unit)
	}
}

func TestApply_UnknownStrategy(t *testing.T) {
	applier := NewApplier(pricing.NewCalculator())

	_, err := applier.Apply(Strategy("nope"), nil, nil, 100)
	assert.Error(t, err)

	out, err := applier.Apply(StrategyReplaceAll, []models.LineItem{{RecipeID: "r1"}}, nil, 100)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestFindSuggested_MatchesByRecipe(t *testing.T) {
	suggested := []models.LineItem{{RecipeID: "b"}, {RecipeID: "a"}}

	found := findSuggested(suggested, 0, "a")
	require.NotNil(t, found)
	assert.Equal(t, "a", found.RecipeID)

	assert.Nil(t, findSuggested(suggested, 0, "c"))
}
