package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tup-eyegrade/eyegrade-api/logger"
	"github.com/tup-eyegrade/eyegrade-api/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Connect opens the database named by DB_URL and migrates the schema.
// postgres:// and postgresql:// URLs use the postgres driver, anything else is a sqlite path.
func Connect(cfg Config, log *logger.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.New(log.StdLog(), gormlogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	}

	db, err := gorm.Open(dialector(cfg.DatabaseURL), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table the API owns.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Prescription{},
		&models.AssessmentLog{},
		&models.Account{},
		&models.ReminderNotification{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto migrate database: %w", err)
	}
	return nil
}

func dialector(url string) gorm.Dialector {
	if strings.HasPrefix(url, "postgres://") || strings.HasPrefix(url, "postgresql://") {
		return postgres.Open(url)
	}
	return sqlite.Open(url)
}
