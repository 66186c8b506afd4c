package database

import (
	"errors"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/questboard/server/internal/models"
)

func (d *Database) Connect() error {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return errors.New("DATABASE_URL is not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return err
	}

	if err := Migrate(db); err != nil {
		return err
	}

	d.db = db

	return nil
}

// Migrate creates or updates the schema for every scheduling entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Availability{},
		&models.DateRangeSettings{},
		&models.Game{},
		&models.GameSubscription{},
		&models.GameSessionDay{},
		&models.TimeRange{},
	)
}
