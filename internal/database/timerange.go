package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/questboard/server/internal/models"
)

func (d *Database) ListTimeRanges(userID uuid.UUID) ([]models.TimeRange, error) {
	var ranges []models.TimeRange
	err := d.db.
		Where("user_id = ?", userID).
		Order("day_of_week asc").
		Find(&ranges).Error
	if err != nil {
		return nil, err
	}
	return ranges, nil
}

// UpsertTimeRange saves the preferred window for one weekday, replacing
// any previous one for the same (user, weekday) pair.
func (d *Database) UpsertTimeRange(userID uuid.UUID, dayOfWeek int, startTime, endTime string) (*models.TimeRange, error) {
	tr := models.TimeRange{
		UserID:    userID,
		DayOfWeek: dayOfWeek,
		StartTime: startTime,
		EndTime:   endTime,
	}
	err := d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "day_of_week"}},
		DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "updated_at"}),
	}).Create(&tr).Error
	if err != nil {
		return nil, err
	}

	var saved models.TimeRange
	if err := d.db.Where("user_id = ? AND day_of_week = ?", userID, dayOfWeek).First(&saved).Error; err != nil {
		return nil, err
	}
	return &saved, nil
}

// DeleteTimeRange removes the weekday preference and reports whether a
// row actually existed.
func (d *Database) DeleteTimeRange(userID uuid.UUID, dayOfWeek int) (bool, error) {
	res := d.db.
		Where("user_id = ? AND day_of_week = ?", userID, dayOfWeek).
		Delete(&models.TimeRange{})
	return res.RowsAffected > 0, res.Error
}
