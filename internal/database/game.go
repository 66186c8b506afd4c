package database

import (
	"gorm.io/gorm"

	"github.com/questboard/server/internal/models"
)

func (d *Database) CreateGame(game *models.Game) error {
	return d.db.Create(game).Error
}

func (d *Database) GetGame(id string) (*models.Game, error) {
	var game models.Game
	if err := d.db.First(&game, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// ListGamesWithDetails loads every game newest-first with everything the
// aggregator needs: DM, subscriptions with their users, and session days
// in date order.
func (d *Database) ListGamesWithDetails() ([]models.Game, error) {
	var games []models.Game
	err := d.db.
		Preload("DM").
		Preload("Subscriptions.User").
		Preload("SessionDays", func(tx *gorm.DB) *gorm.DB { return tx.Order("date asc") }).
		Order("created_at desc").
		Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}
