package models

import (
	"time"
)

// HistoricalOrder represents a past weekly order placed by a customer
type HistoricalOrder struct {
	ID                 uint       `json:"id,omitempty"`
	CustomerID         string     `json:"customer_id"`
	WeekNumber         int        `json:"week_number"`
	Year               int        `json:"year"`
	DayOfWeek          string     `json:"day_of_week"`
	Date               time.Time  `json:"date"`
	TotalMealsExpected int        `json:"total_meals_expected"`
	LineItems          []LineItem `json:"line_items"`
}

// LineItem represents one recipe line of an order, historical or current.
// Quantity and TotalPrice are derived from the other fields by the pricing pipeline.
type LineItem struct {
	RecipeID             string      `json:"recipe_id"`
	RecipeName           string      `json:"recipe_name"`
	Category             string      `json:"category"`
	UnitType             string      `json:"unit_type"`
	BaseQuantity         float64     `json:"base_quantity"`
	AdjustmentPercentage float64     `json:"adjustment_percentage"`
	Quantity             float64     `json:"quantity"`
	UnitPrice            float64     `json:"unit_price"`
	TotalPrice           float64     `json:"total_price"`
	Suggestion           *Suggestion `json:"suggestion,omitempty"`
}

// Clone returns a copy of the item that shares no memory with the receiver
func (li LineItem) Clone() LineItem {
	if li.Suggestion != nil {
		s := li.Suggestion.Clone()
		li.Suggestion = &s
	}
	return li
}

// CloneLineItems deep-copies a slice of line items
func CloneLineItems(items []LineItem) []LineItem {
	if items == nil {
		return nil
	}
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = item.Clone()
	}
	return out
}

// Field identifies an editable line item field
type Field string

const (
	FieldBaseQuantity         Field = "base_quantity"
	FieldAdjustmentPercentage Field = "adjustment_percentage"
	FieldUnitPrice            Field = "unit_price"
)
