package database

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/questboard/server/internal/models"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return NewDatabase(db)
}

func createTestUser(t *testing.T, d *Database, name string) *models.User {
	t.Helper()
	user := &models.User{
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "x",
	}
	if err := d.SaveUser(user); err != nil {
		t.Fatalf("failed to create test user %s: %v", name, err)
	}
	return user
}

func createTestGame(t *testing.T, d *Database, game *models.Game) *models.Game {
	t.Helper()
	if err := d.CreateGame(game); err != nil {
		t.Fatalf("failed to create test game: %v", err)
	}
	return game
}
