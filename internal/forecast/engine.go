package forecast

import (
	"context"
	"fmt"
	"time"

	"kitchenorders/internal/models"

	"github.com/rs/zerolog"
)

// Options tunes a single suggestion run
type Options struct {
	LookbackWeeks    int     `json:"lookback_weeks" yaml:"lookback_weeks"`
	ApplyToEmptyOnly bool    `json:"apply_to_empty_only" yaml:"apply_to_empty_only"`
	MinConfidence    float64 `json:"min_confidence" yaml:"min_confidence"`
}

// DefaultOptions returns the options used when the caller has no preference
func DefaultOptions() Options {
	return Options{
		LookbackWeeks:    DefaultLookbackWeeks,
		ApplyToEmptyOnly: true,
		MinConfidence:    DefaultMinConfidence,
	}
}

// ValidateLookbackWeeks checks a requested history window
func ValidateLookbackWeeks(weeks int) error {
	if weeks < 1 || weeks > MaxLookbackWeeks {
		return fmt.Errorf("lookback weeks must be between 1 and %d, got %d", MaxLookbackWeeks, weeks)
	}
	return nil
}

// ValidateMinConfidence checks a requested confidence gate
func ValidateMinConfidence(confidence float64) error {
	if confidence <= 0 || confidence > 1 {
		return fmt.Errorf("min confidence must be within (0,1], got %v", confidence)
	}
	return nil
}

// normalized fills unset values with defaults and clamps the rest. Clamping
// never loosens the confidence gate.
func (o Options) normalized() Options {
	switch {
	case o.LookbackWeeks <= 0:
		o.LookbackWeeks = DefaultLookbackWeeks
	case o.LookbackWeeks > MaxLookbackWeeks:
		o.LookbackWeeks = MaxLookbackWeeks
	}
	switch {
	case o.MinConfidence <= 0:
		o.MinConfidence = DefaultMinConfidence
	case o.MinConfidence > 1:
		o.MinConfidence = 1
	}
	return o
}

// Metadata summarises a suggestion run
type Metadata struct {
	HistoricalOrdersCount   int    `json:"historicalOrdersCount"`
	SuggestionsAppliedCount int    `json:"suggestionsAppliedCount"`
	HighConfidenceCount     int    `json:"highConfidenceCount"`
	RecipesAnalyzedCount    int    `json:"recipesAnalyzedCount"`
	Message                 string `json:"message"`
}

// Result is the outcome of GenerateOrderSuggestions. When Success is false
// Items holds the caller's items unchanged.
type Result struct {
	Success  bool              `json:"success"`
	Items    []models.LineItem `json:"items"`
	Metadata Metadata          `json:"metadata"`
	Error    string            `json:"error,omitempty"`
}

// Engine runs the full suggestion pipeline for one order at a time
type Engine struct {
	loader     *HistoryLoader
	calculator ValueCalculator
	applier    *Applier
	recorder   Recorder
	log        zerolog.Logger
}

// NewEngine wires the pipeline over an order store and a value calculator
func NewEngine(store OrderStore, calculator ValueCalculator, recorder Recorder, log zerolog.Logger) *Engine {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Engine{
		loader:     NewHistoryLoader(store, recorder, log),
		calculator: calculator,
		applier:    NewApplier(calculator),
		recorder:   recorder,
		log:        log.With().Str("component", "forecast").Logger(),
	}
}

// WithClock sets the clock used to pick the lookback window
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.loader.WithClock(now)
	return e
}

// Applier returns the strategies used by the engine
func (e *Engine) Applier() *Applier {
	return e.applier
}

// GenerateOrderSuggestions predicts quantities for items from the customer's
// recent history, scaled to mealsExpected, and merges them into a copy of
// items. It never returns an error: failures are reported in the Result and
// leave the caller's items untouched.
func (e *Engine) GenerateOrderSuggestions(ctx context.Context, customerID string, items []models.LineItem, mealsExpected int, opts Options) (result Result) {
	start := time.Now()
	opts = opts.normalized()
	logCtx := e.log.With().Str("customer_id", customerID).Int("meals_expected", mealsExpected)
	if id := requestID(ctx); id != "" {
		logCtx = logCtx.Str("request_id", id)
	}
	logger := logCtx.Logger()

	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("suggestion pipeline failed: %v", r)
			logger.Error().Err(err).Msg("Order suggestions failed")
			result = Result{
				Success:  false,
				Items:    models.CloneLineItems(items),
				Metadata: Metadata{Message: "could not generate suggestions"},
				Error:    err.Error(),
			}
			e.recorder.RunCompleted(OutcomeFailure, 0, time.Since(start))
		}
	}()

	if mealsExpected <= 0 {
		e.recorder.RunCompleted(OutcomeSkipped, 0, time.Since(start))
		return Result{
			Success:  true,
			Items:    models.CloneLineItems(items),
			Metadata: Metadata{Message: "meals expected must be greater than zero to suggest quantities"},
		}
	}

	orders := e.loader.Load(ctx, customerID, opts.LookbackWeeks)
	if len(orders) == 0 {
		e.recorder.RunCompleted(OutcomeSkipped, 0, time.Since(start))
		return Result{
			Success:  true,
			Items:    models.CloneLineItems(items),
			Metadata: Metadata{Message: fmt.Sprintf("no orders found in the last %d weeks", opts.LookbackWeeks)},
		}
	}

	patterns := AnalyzePatterns(orders)
	suggested := NewSuggestionGenerator(e.calculator, opts.MinConfidence).Generate(items, mealsExpected, patterns)

	var applied []models.LineItem
	if opts.ApplyToEmptyOnly {
		applied = e.applier.FillEmptyOnly(items, suggested, mealsExpected)
	} else {
		applied = e.applier.ReplaceAll(items, suggested, mealsExpected)
	}

	meta := Metadata{
		HistoricalOrdersCount: len(orders),
		RecipesAnalyzedCount:  len(patterns),
	}
	for _, item := range applied {
		if item.Suggestion == nil {
			continue
		}
		e.recorder.SuggestionProduced(*item.Suggestion)
		if !item.Suggestion.HasSuggestion {
			continue
		}
		meta.SuggestionsAppliedCount++
		if item.Suggestion.Confidence >= highConfidence {
			meta.HighConfidenceCount++
		}
	}
	meta.Message = fmt.Sprintf("%d suggestions from %d orders in the last %d weeks",
		meta.SuggestionsAppliedCount, meta.HistoricalOrdersCount, opts.LookbackWeeks)

	logger.Info().
		Int("historical_orders", meta.HistoricalOrdersCount).
		Int("recipes_analyzed", meta.RecipesAnalyzedCount).
		Int("suggestions", meta.SuggestionsAppliedCount).
		Int("high_confidence", meta.HighConfidenceCount).
		Bool("fill_empty_only", opts.ApplyToEmptyOnly).
		Dur("duration", time.Since(start)).
		Msg("Generated order suggestions")

	e.recorder.RunCompleted(OutcomeSuccess, len(orders), time.Since(start))

	return Result{
		Success:  true,
		Items:    applied,
		Metadata: meta,
	}
}
