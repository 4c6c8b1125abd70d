package forecast

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kitchenorders/internal/models"

	"github.com/rs/zerolog"
)

// Week identifies an ISO week of a year
type Week struct {
	Number int
	Year   int
}

// LookbackWeeks returns the n weeks before the week containing now, most recent first.
// Years are treated as 52 weeks long when wrapping.
func LookbackWeeks(now time.Time, n int) []Week {
	year, current := now.ISOWeek()
	weeks := make([]Week, 0, n)
	for i := 1; i <= n; i++ {
		week := current - i
		y := year
		for week <= 0 {
			week += weeksPerYear
			y--
		}
		weeks = append(weeks, Week{Number: week, Year: y})
	}
	return weeks
}

// HistoryLoader fetches a customer's recent orders one week at a time
type HistoryLoader struct {
	store    OrderStore
	recorder Recorder
	now      func() time.Time
	log      zerolog.Logger
}

// NewHistoryLoader creates a loader over the given store
func NewHistoryLoader(store OrderStore, recorder Recorder, log zerolog.Logger) *HistoryLoader {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &HistoryLoader{
		store:    store,
		recorder: recorder,
		now:      time.Now,
		log:      log.With().Str("component", "history_loader").Logger(),
	}
}

// WithClock replaces the loader's notion of "now"
func (l *HistoryLoader) WithClock(now func() time.Time) *HistoryLoader {
	l.now = now
	return l
}

// Load queries every week of the lookback window concurrently and returns all
// orders found, most recent week first. A failing week contributes no orders.
func (l *HistoryLoader) Load(ctx context.Context, customerID string, lookbackWeeks int) []models.HistoricalOrder {
	weeks := LookbackWeeks(l.now(), lookbackWeeks)
	perWeek := make([][]models.HistoricalOrder, len(weeks))

	var wg sync.WaitGroup
	for i, week := range weeks {
		wg.Add(1)
		go func(i int, week Week) {
			defer wg.Done()
			perWeek[i] = l.queryWeek(ctx, customerID, week)
		}(i, week)
	}
	wg.Wait()

	var orders []models.HistoricalOrder
	for _, weekOrders := range perWeek {
		orders = append(orders, weekOrders...)
	}

	l.log.Debug().
		Str("customer_id", customerID).
		Int("weeks", len(weeks)).
		Int("orders", len(orders)).
		Msg("Loaded order history")

	return orders
}

func (l *HistoryLoader) queryWeek(ctx context.Context, customerID string, week Week) (orders []models.HistoricalOrder) {
	defer func() {
		if r := recover(); r != nil {
			l.weekFailed(customerID, week, fmt.Errorf("panic: %v", r))
			orders = nil
		}
	}()

	orders, err := l.store.QueryOrdersByCustomerAndWeek(ctx, customerID, week.Number, week.Year)
	if err != nil {
		l.weekFailed(customerID, week, err)
		return nil
	}
	return orders
}

func (l *HistoryLoader) weekFailed(customerID string, week Week, err error) {
	l.recorder.HistoryQueryFailed()
	l.log.Warn().
		Err(err).
		Str("customer_id", customerID).
		Int("week", week.Number).
		Int("year", week.Year).
		Msg("History query failed, treating week as empty")
}
