package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/questboard/server/internal/models"
)

// GetDateRangeSettings returns the user's saved default window, or nil
// when none has been saved yet.
func (d *Database) GetDateRangeSettings(userID uuid.UUID) (*models.DateRangeSettings, error) {
	var settings models.DateRangeSettings
	err := d.db.Where("user_id = ?", userID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpsertDateRangeSettings saves the user's default window, replacing any
// previous one.
func (d *Database) UpsertDateRangeSettings(userID uuid.UUID, startDate, endDate string) error {
	settings := models.DateRangeSettings{
		UserID:    userID,
		StartDate: startDate,
		EndDate:   endDate,
	}
	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_date", "end_date", "updated_at"}),
	}).Create(&settings).Error
}
