// Package storage opens the MySQL database and owns the schema
// migration for all four tables.
package storage

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/frotafleet/frotafleet/internal/common/config"
	"github.com/frotafleet/frotafleet/internal/company"
	"github.com/frotafleet/frotafleet/internal/rental"
	"github.com/frotafleet/frotafleet/internal/user"
	"github.com/frotafleet/frotafleet/internal/vehicle"
)

// Open connects to MySQL. TranslateError is on so uniqueness breaches
// surface as gorm.ErrDuplicatedKey and the repos can map them to the
// application error taxonomy.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate creates or updates the four tables, including the composite
// unique index that enforces at most one active rental per vehicle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&vehicle.Vehicle{},
		&company.Company{},
		&rental.Rental{},
		&user.User{},
	)
}
