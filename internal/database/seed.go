package database

import (
	"context"
	"fmt"
	"time"

	"kitchenorders/internal/models"
	"kitchenorders/internal/portioning"
)

// seedRecipe is a demo menu line with its typical quantity per meal
type seedRecipe struct {
	id         string
	name       string
	category   string
	unit       string
	perMeal    float64
	adjustment float64
	unitPrice  float64
}

var seedMenu = []seedRecipe{
	{"arroz-blanco", "Arroz blanco", "Guarnición", "cuba", 0.02, 0, 14.5},
	{"ternera-guisada", "Ternera guisada", "Carne", "kg", 0.12, 20, 11.9},
	{"pollo-asado", "Pollo asado", "Carne de ave", "kg", 0.15, 25, 6.4},
	{"ensalada-mixta", "Ensalada mixta", "Entrantes", "unid", 0.01, 0, 9.0},
	{"salsa-tomate", "Salsa de tomate", "Salsas", "litros", 0.008, 0, 3.2},
}

// seedMeals is the weekly meal count pattern used for demo history
var seedMeals = []int{120, 135, 110, 140, 125, 0, 130, 115}

// SeedHistory writes weeks of demo orders for a customer that has none yet.
// It returns the number of orders written.
func SeedHistory(ctx context.Context, store *Store, customerID string, now time.Time, weeks int) (int, error) {
	count, err := store.CountOrders(ctx, customerID)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	written := 0
	for i := 1; i <= weeks; i++ {
		date := now.AddDate(0, 0, -7*i)
		year, week := date.ISOWeek()
		meals := seedMeals[(i-1)%len(seedMeals)]

		order := models.HistoricalOrder{
			CustomerID:         customerID,
			WeekNumber:         week,
			Year:               year,
			DayOfWeek:          date.Weekday().String(),
			Date:               date,
			TotalMealsExpected: meals,
		}
		for j, r := range seedMenu {
			// small deterministic week-to-week variation
			variation := 1 + 0.05*float64((i+j)%3-1)
			base := portioning.RoundQuantity(r.perMeal*float64(max(meals, 100))*variation, r.unit)
			quantity := portioning.TotalQuantity(r.category, base, r.adjustment)
			order.LineItems = append(order.LineItems, models.LineItem{
				RecipeID:             r.id,
				RecipeName:           r.name,
				Category:             r.category,
				UnitType:             r.unit,
				BaseQuantity:         base,
				AdjustmentPercentage: r.adjustment,
				Quantity:             quantity,
				UnitPrice:            r.unitPrice,
				TotalPrice:           portioning.Round(quantity*r.unitPrice, 2),
			})
		}

		if _, err := store.SaveOrder(ctx, order); err != nil {
			return written, fmt.Errorf("failed to seed week %d/%d: %w", week, year, err)
		}
		written++
	}

	store.log.Info().Str("customer_id", customerID).Int("orders", written).Msg("Seeded demo order history")
	return written, nil
}
