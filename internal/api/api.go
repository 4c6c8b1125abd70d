package api

import (
	"context"
	"net/http"
	"time"

	"kitchenorders/internal/forecast"
	"kitchenorders/internal/models"
	"kitchenorders/internal/monitoring"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// OrderAPI represents the HTTP surface for orders and suggestions
type OrderAPI struct {
	Router   *gin.Engine
	Store    Store
	Engine   *forecast.Engine
	Monitor  *monitoring.Monitor
	Defaults forecast.Options

	// RunTimeout bounds the history queries of one suggestion run. Zero means no limit.
	RunTimeout time.Duration

	log zerolog.Logger
}

// Store represents the order persistence used by the handlers
type Store interface {
	QueryOrdersByCustomerAndWeek(ctx context.Context, customerID string, weekNumber, year int) ([]models.HistoricalOrder, error)
	SaveOrder(ctx context.Context, order models.HistoricalOrder) (models.HistoricalOrder, error)
	GetOrder(ctx context.Context, id uint) (models.HistoricalOrder, error)
	DeleteOrder(ctx context.Context, id uint) error
}

// NewOrderAPI creates a new API instance with its routes registered
func NewOrderAPI(store Store, engine *forecast.Engine, monitor *monitoring.Monitor, defaults forecast.Options, log zerolog.Logger) *OrderAPI {
	router := gin.New()
	router.Use(gin.Recovery())

	api := &OrderAPI{
		Router:   router,
		Store:    store,
		Engine:   engine,
		Monitor:  monitor,
		Defaults: defaults,
		log:      log.With().Str("component", "api").Logger(),
	}

	router.Use(api.requestID(), api.accessLog())
	api.setupRoutes()
	return api
}

// setupRoutes configures all API endpoints
func (a *OrderAPI) setupRoutes() {
	// Health check
	a.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := a.Router.Group("/api/v1")
	{
		// Order history
		v1.POST("/orders", a.CreateOrder)
		v1.GET("/orders", a.ListOrders)
		v1.GET("/orders/:id", a.GetOrder)
		v1.DELETE("/orders/:id", a.DeleteOrder)

		// Suggestions
		v1.POST("/customers/:customer_id/suggestions", a.GenerateSuggestions)
		v1.POST("/suggestions/apply", a.ApplySuggestions)

		v1.GET("/metrics/summary", a.GetMetricsSummary)
		v1.GET("/metrics/summary/:customer_id", a.GetCustomerRun)
	}
}

func (a *OrderAPI) requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Request = c.Request.WithContext(forecast.WithRequestID(c.Request.Context(), id))
		c.Next()
	}
}

func (a *OrderAPI) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		a.log.Debug().
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", c.FullPath()).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Handled request")
	}
}

// GetMetricsSummary returns the latest run summaries
func (a *OrderAPI) GetMetricsSummary(c *gin.Context) {
	c.JSON(http.StatusOK, a.Monitor.Summary())
}

// GetCustomerRun returns the latest suggestion run of one customer
func (a *OrderAPI) GetCustomerRun(c *gin.Context) {
	run, ok := a.Monitor.LastRun(c.Param("customer_id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "No suggestion run recorded for customer"})
		return
	}

	c.JSON(http.StatusOK, run)
}
