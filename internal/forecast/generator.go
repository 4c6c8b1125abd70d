package forecast

import (
	"math"

	"kitchenorders/internal/models"
	"kitchenorders/internal/portioning"
)

// SuggestionGenerator turns recipe statistics into suggested line items
type SuggestionGenerator struct {
	calculator    ValueCalculator
	minConfidence float64
}

// NewSuggestionGenerator creates a generator gating suggestions at minConfidence
func NewSuggestionGenerator(calculator ValueCalculator, minConfidence float64) *SuggestionGenerator {
	return &SuggestionGenerator{
		calculator:    calculator,
		minConfidence: minConfidence,
	}
}

// Generate returns a copy of items where every line carries a Suggestion and,
// when the history is good enough, the suggested values with derived fields
// recomputed. The input slice is never modified. A non-positive meal count
// yields the items unchanged and without suggestions.
func (g *SuggestionGenerator) Generate(items []models.LineItem, mealsExpected int, patterns map[string]*models.RecipePattern) []models.LineItem {
	out := models.CloneLineItems(items)
	if mealsExpected <= 0 {
		return out
	}

	for i := range out {
		out[i] = g.suggest(out[i], mealsExpected, patterns[out[i].RecipeID])
	}
	return out
}

func (g *SuggestionGenerator) suggest(item models.LineItem, mealsExpected int, pattern *models.RecipePattern) models.LineItem {
	if pattern == nil {
		item.Suggestion = &models.Suggestion{
			HasSuggestion: false,
			Reason:        models.ReasonNoHistory,
			MealsExpected: mealsExpected,
		}
		return item
	}

	stats := pattern.Statistics
	if stats.Confidence < g.minConfidence {
		item.Suggestion = &models.Suggestion{
			HasSuggestion:  false,
			Reason:         models.ReasonLowConfidence,
			Confidence:     stats.Confidence,
			BasedOnSamples: stats.TotalSamples,
			RecentSamples:  stats.RecentSamples,
			MealsExpected:  mealsExpected,
		}
		return item
	}

	suggested := stats.AvgRatioPerMeal * float64(mealsExpected)
	source := models.SourceRatioPerMeal
	if suggested < ratioFallbackThreshold && stats.AvgBaseQuantity > 0 {
		suggested = stats.AvgBaseQuantity
		source = models.SourceAverageQuantity
	}

	unitType := item.UnitType
	if unitType == "" {
		unitType = pattern.UnitType
	}
	suggested = portioning.RoundQuantity(math.Max(suggested, 0), unitType)

	var adjustment float64
	if portioning.IsMeatLike(item.Category) {
		adjustment = math.Max(math.Round(stats.AvgAdjustmentPercentage), 0)
	}

	item = g.calculator.Recompute(item, models.FieldBaseQuantity, suggested, mealsExpected)
	item = g.calculator.Recompute(item, models.FieldAdjustmentPercentage, adjustment, mealsExpected)

	item.Suggestion = &models.Suggestion{
		HasSuggestion:                 true,
		Confidence:                    stats.Confidence,
		BasedOnSamples:                stats.TotalSamples,
		RecentSamples:                 stats.RecentSamples,
		SuggestedBaseQuantity:         suggested,
		SuggestedAdjustmentPercentage: adjustment,
		MealsExpected:                 mealsExpected,
		Source:                        source,
	}
	return item
}
