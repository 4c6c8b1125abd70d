package forecast

import (
	"math"
	"sort"
	"time"

	"kitchenorders/internal/models"
	"kitchenorders/internal/portioning"

	"gonum.org/v1/gonum/stat"
)

// AnalyzePatterns groups the line items of the given orders by recipe and
// computes per-recipe statistics. Orders without an expected meal count
// cannot produce a ratio per meal and are ignored.
func AnalyzePatterns(orders []models.HistoricalOrder) map[string]*models.RecipePattern {
	patterns := make(map[string]*models.RecipePattern)

	for _, order := range orders {
		if order.TotalMealsExpected <= 0 {
			continue
		}
		meals := float64(order.TotalMealsExpected)

		for _, item := range order.LineItems {
			if item.RecipeID == "" {
				continue
			}

			pattern, ok := patterns[item.RecipeID]
			if !ok {
				pattern = &models.RecipePattern{
					RecipeName: item.RecipeName,
					Category:   item.Category,
					UnitType:   item.UnitType,
				}
				patterns[item.RecipeID] = pattern
			}

			pattern.Samples = append(pattern.Samples, models.Sample{
				BaseQuantity:         item.BaseQuantity,
				AdjustmentPercentage: item.AdjustmentPercentage,
				FinalQuantity:        item.Quantity,
				MealsExpected:        order.TotalMealsExpected,
				RatioPerMeal:         item.BaseQuantity / meals,
				Date:                 order.Date,
				WeekNumber:           order.WeekNumber,
				Year:                 order.Year,
				DayOfWeek:            order.DayOfWeek,
			})
		}
	}

	for _, pattern := range patterns {
		pattern.Statistics = computeStatistics(pattern.Samples)
	}

	return patterns
}

// computeStatistics sorts samples newest first and blends the recent window
// with the whole history.
func computeStatistics(samples []models.Sample) models.RecipeStatistics {
	n := len(samples)
	if n == 0 {
		return models.RecipeStatistics{}
	}

	sort.SliceStable(samples, func(i, j int) bool {
		return sampleTime(samples[i]).After(sampleTime(samples[j]))
	})

	recent := samples[:min(recentWindow, n)]

	return models.RecipeStatistics{
		AvgBaseQuantity:         portioning.Round(blend(recent, samples, baseQuantity), 2),
		AvgAdjustmentPercentage: portioning.Round(blend(recent, samples, adjustmentPercentage), 2),
		AvgRatioPerMeal:         portioning.Round(blend(recent, samples, ratioPerMeal), 4),
		Confidence:              Confidence(n),
		TotalSamples:            n,
		RecentSamples:           len(recent),
	}
}

// Confidence grows linearly with the sample count and saturates at 1
func Confidence(samples int) float64 {
	return math.Min(float64(samples)/fullConfidenceSamples, 1)
}

func blend(recent, all []models.Sample, value func(models.Sample) float64) float64 {
	return recentWeight*mean(recent, value) + overallWeight*mean(all, value)
}

func mean(samples []models.Sample, value func(models.Sample) float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = value(s)
	}
	return stat.Mean(values, nil)
}

func baseQuantity(s models.Sample) float64 { return s.BaseQuantity }

func adjustmentPercentage(s models.Sample) float64 { return s.AdjustmentPercentage }

func ratioPerMeal(s models.Sample) float64 { return s.RatioPerMeal }

// sampleTime treats a missing date as the epoch so undated samples sort last
func sampleTime(s models.Sample) time.Time {
	if s.Date.IsZero() {
		return time.Unix(0, 0)
	}
	return s.Date
}
