package database

import (
	"github.com/google/uuid"

	"github.com/questboard/server/internal/models"
)

func (d *Database) ListSessionDays(gameID uuid.UUID) ([]models.GameSessionDay, error) {
	var days []models.GameSessionDay
	err := d.db.
		Where("game_id = ?", gameID).
		Order("date asc").
		Find(&days).Error
	if err != nil {
		return nil, err
	}
	return days, nil
}

func (d *Database) CreateSessionDay(day *models.GameSessionDay) error {
	return d.db.Create(day).Error
}

// GetSessionDayWithGame loads a session day together with its owning game
// so callers can compare the DM against the acting identity.
func (d *Database) GetSessionDayWithGame(id string) (*models.GameSessionDay, error) {
	var day models.GameSessionDay
	if err := d.db.Preload("Game").First(&day, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &day, nil
}

// UpdateSessionDay writes the given column set on one session day.
func (d *Database) UpdateSessionDay(id uuid.UUID, updates map[string]interface{}) (*models.GameSessionDay, error) {
	if err := d.db.Model(&models.GameSessionDay{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	var day models.GameSessionDay
	if err := d.db.First(&day, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &day, nil
}

func (d *Database) DeleteSessionDay(id uuid.UUID) error {
	return d.db.Delete(&models.GameSessionDay{}, "id = ?", id).Error
}
