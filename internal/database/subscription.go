package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/questboard/server/internal/models"
)

// ErrGameFull is returned when a capacity-limited game already has
// maxPlayers subscribers.
var ErrGameFull = errors.New("game is full")

// Subscribe joins a user to a game. The call is idempotent: an existing
// subscription is returned unchanged. The game row is locked FOR UPDATE
// before counting, so joins for one game serialize and two racing users
// cannot both pass a count of maxPlayers-1; the (game_id, user_id)
// unique index separately closes the duplicate-join race.
func (d *Database) Subscribe(gameID, userID uuid.UUID) (*models.GameSubscription, error) {
	var sub models.GameSubscription
	err := d.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("User").
			Where("game_id = ? AND user_id = ?", gameID, userID).
			First(&sub).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		gameQuery := tx.Clauses(clause.Locking{Strength: "UPDATE"})
		if tx.Dialector.Name() == "sqlite" {
			// sqlite has no FOR UPDATE; its single writer already
			// serializes the transaction.
			gameQuery = tx
		}

		var game models.Game
		if err := gameQuery.First(&game, "id = ?", gameID).Error; err != nil {
			return err
		}

		if game.MaxPlayers != nil {
			var count int64
			if err := tx.Model(&models.GameSubscription{}).
				Where("game_id = ?", gameID).
				Count(&count).Error; err != nil {
				return err
			}
			if count >= int64(*game.MaxPlayers) {
				return ErrGameFull
			}
		}

		sub = models.GameSubscription{GameID: gameID, UserID: userID}
		if err := tx.Create(&sub).Error; err != nil {
			return err
		}
		return tx.Preload("User").First(&sub, "id = ?", sub.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

// Unsubscribe removes the user's subscription if one exists. Deleting
// nothing is not an error.
func (d *Database) Unsubscribe(gameID, userID uuid.UUID) error {
	return d.db.
		Where("game_id = ? AND user_id = ?", gameID, userID).
		Delete(&models.GameSubscription{}).Error
}

// CountSubscriptions returns the number of subscribers for a game.
func (d *Database) CountSubscriptions(gameID uuid.UUID) (int64, error) {
	var count int64
	err := d.db.Model(&models.GameSubscription{}).
		Where("game_id = ?", gameID).
		Count(&count).Error
	return count, err
}
