package database

import (
	"context"
	"errors"
	"fmt"

	"kitchenorders/internal/models"

	"github.com/jinzhu/gorm"
	"github.com/rs/zerolog"
)

// ErrOrderNotFound is returned when an order id does not exist
var ErrOrderNotFound = errors.New("order not found")

// Store persists customer orders and serves the weekly history queries
type Store struct {
	db  *gorm.DB
	log zerolog.Logger
}

// NewStore creates a store over an open database
func NewStore(db *gorm.DB, log zerolog.Logger) *Store {
	return &Store{
		db:  db,
		log: log.With().Str("repo", "orders").Logger(),
	}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position asc")
	})
}

// QueryOrdersByCustomerAndWeek returns the customer's orders for one week
func (s *Store) QueryOrdersByCustomerAndWeek(ctx context.Context, customerID string, weekNumber, year int) ([]models.HistoricalOrder, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var records []OrderRecord
	err := preloadItems(s.db).
		Where("customer_id = ? AND week_number = ? AND year = ?", customerID, weekNumber, year).
		Order("date desc").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query orders for %s week %d/%d: %w", customerID, weekNumber, year, err)
	}

	orders := make([]models.HistoricalOrder, 0, len(records))
	for _, r := range records {
		orders = append(orders, r.toModel())
	}
	return orders, nil
}

// SaveOrder stores a new order with its lines and returns it with its id
func (s *Store) SaveOrder(ctx context.Context, order models.HistoricalOrder) (models.HistoricalOrder, error) {
	if err := ctx.Err(); err != nil {
		return models.HistoricalOrder{}, err
	}

	record := newOrderRecord(order)

	tx := s.db.Begin()
	if err := tx.Error; err != nil {
		return models.HistoricalOrder{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := tx.Create(&record).Error; err != nil {
		tx.Rollback()
		return models.HistoricalOrder{}, fmt.Errorf("failed to save order: %w", err)
	}
	if err := tx.Commit().Error; err != nil {
		return models.HistoricalOrder{}, fmt.Errorf("failed to commit order: %w", err)
	}

	s.log.Debug().
		Uint("order_id", record.ID).
		Str("customer_id", record.CustomerID).
		Int("week", record.WeekNumber).
		Int("year", record.Year).
		Int("items", len(record.Items)).
		Msg("Order saved")

	return record.toModel(), nil
}

// GetOrder returns an order by id
func (s *Store) GetOrder(ctx context.Context, id uint) (models.HistoricalOrder, error) {
	if err := ctx.Err(); err != nil {
		return models.HistoricalOrder{}, err
	}

	var record OrderRecord
	if err := preloadItems(s.db).Where("id = ?", id).First(&record).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return models.HistoricalOrder{}, ErrOrderNotFound
		}
		return models.HistoricalOrder{}, fmt.Errorf("failed to get order %d: %w", id, err)
	}
	return record.toModel(), nil
}

// DeleteOrder removes an order and its lines
func (s *Store) DeleteOrder(ctx context.Context, id uint) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var record OrderRecord
	if err := s.db.Where("id = ?", id).First(&record).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to find order %d: %w", id, err)
	}

	tx := s.db.Begin()
	if err := tx.Where("order_id = ?", record.ID).Delete(&OrderItemRecord{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete order items: %w", err)
	}
	if err := tx.Delete(&record).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return tx.Commit().Error
}

// CountOrders returns how many orders a customer has stored
func (s *Store) CountOrders(ctx context.Context, customerID string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var count int
	if err := s.db.Model(&OrderRecord{}).Where("customer_id = ?", customerID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}
