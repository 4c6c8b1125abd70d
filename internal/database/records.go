package database

import (
	"time"

	"kitchenorders/internal/models"

	"github.com/jinzhu/gorm"
)

// OrderRecord is the stored form of a weekly customer order
type OrderRecord struct {
	gorm.Model
	CustomerID         string `gorm:"not null"`
	WeekNumber         int    `gorm:"not null"`
	Year               int    `gorm:"not null"`
	DayOfWeek          string
	Date               *time.Time
	TotalMealsExpected int
	Items              []OrderItemRecord `gorm:"foreignkey:OrderID"`
}

// TableName sets the table name for OrderRecord
func (OrderRecord) TableName() string {
	return "orders"
}

// OrderItemRecord is the stored form of an order line
type OrderItemRecord struct {
	gorm.Model
	OrderID              uint `gorm:"index"`
	Position             int
	RecipeID             string
	RecipeName           string
	Category             string
	UnitType             string
	BaseQuantity         float64
	AdjustmentPercentage float64
	Quantity             float64
	UnitPrice            float64
	TotalPrice           float64
}

// TableName sets the table name for OrderItemRecord
func (OrderItemRecord) TableName() string {
	return "order_items"
}

func newOrderRecord(order models.HistoricalOrder) OrderRecord {
	record := OrderRecord{
		CustomerID:         order.CustomerID,
		WeekNumber:         order.WeekNumber,
		Year:               order.Year,
		DayOfWeek:          order.DayOfWeek,
		TotalMealsExpected: order.TotalMealsExpected,
	}
	if !order.Date.IsZero() {
		date := order.Date.UTC()
		record.Date = &date
	}

	record.Items = make([]OrderItemRecord, len(order.LineItems))
	for i, item := range order.LineItems {
		record.Items[i] = OrderItemRecord{
			Position:             i,
			RecipeID:             item.RecipeID,
			RecipeName:           item.RecipeName,
			Category:             item.Category,
			UnitType:             item.UnitType,
			BaseQuantity:         item.BaseQuantity,
			AdjustmentPercentage: item.AdjustmentPercentage,
			Quantity:             item.Quantity,
			UnitPrice:            item.UnitPrice,
			TotalPrice:           item.TotalPrice,
		}
	}
	return record
}

// toModel converts the record to a HistoricalOrder. Suggestions are never stored.
func (r OrderRecord) toModel() models.HistoricalOrder {
	order := models.HistoricalOrder{
		ID:                 r.ID,
		CustomerID:         r.CustomerID,
		WeekNumber:         r.WeekNumber,
		Year:               r.Year,
		DayOfWeek:          r.DayOfWeek,
		TotalMealsExpected: r.TotalMealsExpected,
		LineItems:          make([]models.LineItem, 0, len(r.Items)),
	}
	if r.Date != nil {
		order.Date = r.Date.UTC()
	}
	for _, item := range r.Items {
		order.LineItems = append(order.LineItems, models.LineItem{
			RecipeID:             item.RecipeID,
			RecipeName:           item.RecipeName,
			Category:             item.Category,
			UnitType:             item.UnitType,
			BaseQuantity:         item.BaseQuantity,
			AdjustmentPercentage: item.AdjustmentPercentage,
			Quantity:             item.Quantity,
			UnitPrice:            item.UnitPrice,
			TotalPrice:           item.TotalPrice,
		})
	}
	return order
}
