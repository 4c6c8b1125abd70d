package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"kitchenorders/internal/database"
	"kitchenorders/internal/models"

	"github.com/gin-gonic/gin"
)

// Order history handlers

func (a *OrderAPI) CreateOrder(c *gin.Context) {
	var order models.HistoricalOrder
	if err := c.ShouldBindJSON(&order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := validateOrder(order); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := a.Store.SaveOrder(c.Request.Context(), order)
	if err != nil {
		a.log.Error().Err(err).Str("request_id", c.GetString("request_id")).Msg("Failed to save order")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, saved)
}

func validateOrder(order models.HistoricalOrder) error {
	switch {
	case order.CustomerID == "":
		return errors.New("customer_id is required")
	case order.WeekNumber < 1 || order.WeekNumber > 53:
		return fmt.Errorf("week_number must be between 1 and 53, got %d", order.WeekNumber)
	case order.Year <= 0:
		return fmt.Errorf("year must be positive, got %d", order.Year)
	case order.TotalMealsExpected < 0:
		return fmt.Errorf("total_meals_expected must not be negative, got %d", order.TotalMealsExpected)
	}
	return nil
}

// ListOrders returns a customer's orders for one week
func (a *OrderAPI) ListOrders(c *gin.Context) {
	customerID := c.Query("customer_id")
	if customerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "customer_id is required"})
		return
	}

	week, err := strconv.Atoi(c.Query("week"))
	if err != nil || week < 1 || week > 53 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week must be between 1 and 53"})
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a positive number"})
		return
	}

	orders, err := a.Store.QueryOrdersByCustomerAndWeek(c.Request.Context(), customerID, week, year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}

func (a *OrderAPI) GetOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	order, err := a.Store.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (a *OrderAPI) DeleteOrder(c *gin.Context) {
	id, ok := orderID(c)
	if !ok {
		return
	}

	if err := a.Store.DeleteOrder(c.Request.Context(), id); err != nil {
		writeStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted", "id": id})
}

func orderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return 0, false
	}
	return uint(id), true
}

func writeStoreError(c *gin.Context, err error) {
	if errors.Is(err, database.ErrOrderNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
