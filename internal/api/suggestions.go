package api

import (
	"context"
	"net/http"

	"kitchenorders/internal/forecast"
	"kitchenorders/internal/models"

	"github.com/gin-gonic/gin"
)

type suggestionRequest struct {
	LineItems        []models.LineItem `json:"line_items"`
	MealsExpected    int               `json:"meals_expected"`
	LookbackWeeks    *int              `json:"lookback_weeks"`
	ApplyToEmptyOnly *bool             `json:"apply_to_empty_only"`
	MinConfidence    *float64          `json:"min_confidence"`
}

// options overlays the values the caller set on defaults, rejecting
// explicit values out of range
func (r suggestionRequest) options(defaults forecast.Options) (forecast.Options, error) {
	opts := defaults
	if r.LookbackWeeks != nil {
		if err := forecast.ValidateLookbackWeeks(*r.LookbackWeeks); err != nil {
			return opts, err
		}
		opts.LookbackWeeks = *r.LookbackWeeks
	}
	if r.ApplyToEmptyOnly != nil {
		opts.ApplyToEmptyOnly = *r.ApplyToEmptyOnly
	}
	if r.MinConfidence != nil {
		if err := forecast.ValidateMinConfidence(*r.MinConfidence); err != nil {
			return opts, err
		}
		opts.MinConfidence = *r.MinConfidence
	}
	return opts, nil
}

type applyRequest struct {
	Strategy       string            `json:"strategy"`
	Items          []models.LineItem `json:"items"`
	SuggestedItems []models.LineItem `json:"suggested_items"`
	MealsExpected  int               `json:"meals_expected"`
}

// GenerateSuggestions runs the suggestion pipeline for the posted order.
// Pipeline failures are part of the result, so the status is 200 unless
// the body cannot be decoded or its options are out of range.
func (a *OrderAPI) GenerateSuggestions(c *gin.Context) {
	var req suggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	opts, err := req.options(a.Defaults)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID := c.Param("customer_id")

	ctx := c.Request.Context()
	if a.RunTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.RunTimeout)
		defer cancel()
	}

	result := a.Engine.GenerateOrderSuggestions(ctx, customerID, req.LineItems, req.MealsExpected, opts)

	a.Monitor.RecordRun(customerID, result)

	c.JSON(http.StatusOK, result)
}

// ApplySuggestions merges previously generated suggestions into items,
// rescaling them when the meal count changed since they were generated.
func (a *OrderAPI) ApplySuggestions(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	strategy, err := forecast.ParseStrategy(req.Strategy)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := a.Engine.Applier().Apply(strategy, req.Items, req.SuggestedItems, req.MealsExpected)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
