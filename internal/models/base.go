package models

import (
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Database connection instance
var DB *gorm.DB

// InitDB initializes the MySQL database connection and runs migrations.
func InitDB(config DatabaseConfig) (*gorm.DB, error) {
	var err error

	DB, err = gorm.Open(mysql.Open(config.DSN), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := Migrate(DB); err != nil {
		return nil, err
	}

	return DB, nil
}

// Migrate auto-migrates all application models. Exported separately so tests
// can run the same migrations against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Patient{},
		&Doctor{},
		&Appointment{},
	)
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	DSN string
}
