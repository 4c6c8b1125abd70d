// Package forecast suggests default quantities for a new order from a
// customer's recent order history.
//
// A run loads a bounded window of past weekly orders, derives per-recipe
// statistics, turns them into suggestions for the target meal count and
// merges those suggestions into the order being edited. Nothing is cached:
// every run reads history fresh and keeps its intermediate results local.
package forecast

import (
	"context"
	"time"

	"kitchenorders/internal/models"
)

// Fixed business constants of the heuristic.
const (
	DefaultLookbackWeeks = 8
	DefaultMinConfidence = 0.25

	// MaxLookbackWeeks caps the history window; each week is one store query
	MaxLookbackWeeks = 52

	// recentWindow is the number of most recent samples blended with the full history
	recentWindow  = 8
	recentWeight  = 0.7
	overallWeight = 0.3

	// fullConfidenceSamples is the sample count at which confidence reaches 1
	fullConfidenceSamples = 4

	// ratioFallbackThreshold is the scaled quantity below which the historical
	// average quantity is used instead
	ratioFallbackThreshold = 0.1

	// highConfidence marks suggestions counted as high confidence in run metadata
	highConfidence = 0.75

	weeksPerYear = 52
)

// OrderStore is the order history the loader reads from
type OrderStore interface {
	QueryOrdersByCustomerAndWeek(ctx context.Context, customerID string, weekNumber, year int) ([]models.HistoricalOrder, error)
}

// ValueCalculator recomputes derived line item values after a field changes
type ValueCalculator interface {
	Recompute(item models.LineItem, field models.Field, value float64, mealsExpected int) models.LineItem
}

// Run outcomes reported to the Recorder.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeSkipped = "skipped"
)

// Recorder receives observations about forecast runs
type Recorder interface {
	HistoryQueryFailed()
	SuggestionProduced(suggestion models.Suggestion)
	RunCompleted(outcome string, historicalOrders int, duration time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) HistoryQueryFailed() {}

func (nopRecorder) SuggestionProduced(models.Suggestion) {}

func (nopRecorder) RunCompleted(string, int, time.Duration) {}

type requestIDKey struct{}

// WithRequestID tags ctx so run logs can be matched to the request
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
