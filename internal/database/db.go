package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres" // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3"              // SQLite driver
)

// Supported drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Open connects to the order database and migrates its schema
func Open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		// sqlite allows a single writer; an in-memory database also lives
		// only as long as its connection
		db.DB().SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the order tables
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&OrderRecord{}, &OrderItemRecord{}).Error; err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	if err := db.Model(&OrderRecord{}).AddIndex("idx_orders_customer_week", "customer_id", "year", "week_number").Error; err != nil {
		return fmt.Errorf("failed to create order index: %w", err)
	}
	return nil
}
