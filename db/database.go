package db

import (
	"fmt"
	"log"

	"klage_registrering_go/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared handle to the registration store
var DB *gorm.DB

// Initialize opens the registration store and migrates its tables. The
// schema is fixed: drafts, their receivers and the mulighet snapshot cache.
// WAL mode with a busy timeout: field mutations and snapshot writes for the
// same draft can arrive concurrently.
func Initialize(dbPath string, environment string) error {
	logLevel := logger.Info
	if environment == "production" {
		logLevel = logger.Warn
	}

	dsn := dbPath + "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"

	var err error
	DB, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := DB.AutoMigrate(&models.Registrering{}, &models.Mottaker{}, &models.MulighetSnapshot{}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Registration store ready (WAL mode enabled)")
	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	return sqlDB.Close()
}
