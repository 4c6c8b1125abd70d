package models

import (
	"time"
)

// Sample is one historical observation of a recipe, derived from a line item
type Sample struct {
	BaseQuantity         float64   `json:"base_quantity"`
	AdjustmentPercentage float64   `json:"adjustment_percentage"`
	FinalQuantity        float64   `json:"final_quantity"`
	MealsExpected        int       `json:"meals_expected"`
	RatioPerMeal         float64   `json:"ratio_per_meal"`
	Date                 time.Time `json:"date"`
	WeekNumber           int       `json:"week_number"`
	Year                 int       `json:"year"`
	DayOfWeek            string    `json:"day_of_week"`
}

// RecipeStatistics summarises the samples of one recipe
type RecipeStatistics struct {
	AvgBaseQuantity         float64 `json:"avg_base_quantity"`
	AvgAdjustmentPercentage float64 `json:"avg_adjustment_percentage"`
	AvgRatioPerMeal         float64 `json:"avg_ratio_per_meal"`
	Confidence              float64 `json:"confidence"`
	TotalSamples            int     `json:"total_samples"`
	RecentSamples           int     `json:"recent_samples"`
}

// RecipePattern groups the history of one recipe with its statistics
type RecipePattern struct {
	RecipeName string           `json:"recipe_name"`
	Category   string           `json:"category"`
	UnitType   string           `json:"unit_type"`
	Samples    []Sample         `json:"samples"`
	Statistics RecipeStatistics `json:"statistics"`
}

// SuggestionSource describes how a suggested quantity was derived
type SuggestionSource string

const (
	SourceRatioPerMeal    SuggestionSource = "ratio_per_meal"
	SourceAverageQuantity SuggestionSource = "average_quantity"
)

// SuggestionReason explains why no suggestion was produced
type SuggestionReason string

const (
	ReasonNoHistory     SuggestionReason = "no_history"
	ReasonLowConfidence SuggestionReason = "low_confidence"
)

// Suggestion is the forecast attached to a line item
type Suggestion struct {
	HasSuggestion                 bool             `json:"has_suggestion"`
	Reason                        SuggestionReason `json:"reason,omitempty"`
	Confidence                    float64          `json:"confidence"`
	BasedOnSamples                int              `json:"based_on_samples"`
	RecentSamples                 int              `json:"recent_samples"`
	SuggestedBaseQuantity         float64          `json:"suggested_base_quantity"`
	SuggestedAdjustmentPercentage float64          `json:"suggested_adjustment_percentage"`
	MealsExpected                 int              `json:"meals_expected"`
	Source                        SuggestionSource `json:"source,omitempty"`
	ScaledFrom                    *int             `json:"scaled_from,omitempty"`
	ScalingRatio                  *float64         `json:"scaling_ratio,omitempty"`
}

// Clone returns a copy of the suggestion with its own optional fields
func (s Suggestion) Clone() Suggestion {
	if s.ScaledFrom != nil {
		v := *s.ScaledFrom
		s.ScaledFrom = &v
	}
	if s.ScalingRatio != nil {
		v := *s.ScalingRatio
		s.ScalingRatio = &v
	}
	return s
}
