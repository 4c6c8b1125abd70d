package forecast

import (
	"fmt"

	"kitchenorders/internal/models"
	"kitchenorders/internal/portioning"
)

// Strategy selects how suggestions are merged into an order
type Strategy string

const (
	// StrategyFillEmpty only fills lines the user has not quantified yet
	StrategyFillEmpty Strategy = "fill_empty"
	// StrategyReplaceAll overwrites every line that has a suggestion
	StrategyReplaceAll Strategy = "replace_all"
)

// ParseStrategy validates a strategy name
func ParseStrategy(name string) (Strategy, error) {
	switch Strategy(name) {
	case StrategyFillEmpty, StrategyReplaceAll:
		return Strategy(name), nil
	default:
		return "", fmt.Errorf("unknown strategy: %q", name)
	}
}

// Applier merges suggested items into the items of a live order
type Applier struct {
	calculator ValueCalculator
}

// NewApplier creates an applier recomputing derived values with calculator
func NewApplier(calculator ValueCalculator) *Applier {
	return &Applier{calculator: calculator}
}

// Apply runs the given strategy
func (a *Applier) Apply(strategy Strategy, original, suggested []models.LineItem, targetMeals int) ([]models.LineItem, error) {
	switch strategy {
	case StrategyFillEmpty:
		return a.FillEmptyOnly(original, suggested, targetMeals), nil
	case StrategyReplaceAll:
		return a.ReplaceAll(original, suggested, targetMeals), nil
	default:
		return nil, fmt.Errorf("unknown strategy: %q", strategy)
	}
}

// FillEmptyOnly writes suggestions into lines whose base quantity is still
// zero. The adjustment percentage of such a line is filled as well when it is
// zero and the category is meat-like. Lines the user already quantified keep
// every value and only gain the suggestion as provenance.
func (a *Applier) FillEmptyOnly(original, suggested []models.LineItem, targetMeals int) []models.LineItem {
	return a.merge(original, suggested, targetMeals, false)
}

// ReplaceAll overwrites base quantity and adjustment percentage of every line
// that has a suggestion, regardless of what it held before.
func (a *Applier) ReplaceAll(original, suggested []models.LineItem, targetMeals int) []models.LineItem {
	return a.merge(original, suggested, targetMeals, true)
}

func (a *Applier) merge(original, suggested []models.LineItem, targetMeals int, overwrite bool) []models.LineItem {
	out := models.CloneLineItems(original)

	for i := range out {
		source := findSuggested(suggested, i, out[i].RecipeID)
		if source == nil || source.Suggestion == nil {
			continue
		}

		suggestion := source.Suggestion.Clone()
		if !suggestion.HasSuggestion {
			out[i].Suggestion = &suggestion
			continue
		}

		item := out[i]
		quantity := rescale(&suggestion, targetMeals, item.UnitType)
		item.Suggestion = &suggestion

		// a quantified line belongs to the user, adjustment included
		if !overwrite && item.BaseQuantity > 0 {
			out[i] = item
			continue
		}

		writeAdjustment := overwrite ||
			(item.AdjustmentPercentage == 0 && portioning.IsMeatLike(item.Category))

		item = a.calculator.Recompute(item, models.FieldBaseQuantity, quantity, targetMeals)
		if writeAdjustment {
			item = a.calculator.Recompute(item, models.FieldAdjustmentPercentage, suggestion.SuggestedAdjustmentPercentage, targetMeals)
		}
		out[i] = item
	}

	return out
}

// rescale returns the suggested quantity for targetMeals, re-quantized when the
// suggestion was computed for a different meal count. The scaling is recorded
// on the suggestion.
func rescale(suggestion *models.Suggestion, targetMeals int, unitType string) float64 {
	from := suggestion.MealsExpected
	if targetMeals <= 0 || from <= 0 || targetMeals == from {
		return suggestion.SuggestedBaseQuantity
	}

	ratio := float64(targetMeals) / float64(from)
	suggestion.ScaledFrom = &from
	suggestion.ScalingRatio = &ratio

	return portioning.RoundQuantity(suggestion.SuggestedBaseQuantity*ratio, unitType)
}

// findSuggested pairs an original line with its suggested counterpart, first
// by position and then by recipe.
func findSuggested(suggested []models.LineItem, index int, recipeID string) *models.LineItem {
	if index < len(suggested) && suggested[index].RecipeID == recipeID {
		return &suggested[index]
	}
	for i := range suggested {
		if suggested[i].RecipeID == recipeID {
			return &suggested[i]
		}
	}
	return nil
}
