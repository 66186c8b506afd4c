package database

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/questboard/server/internal/models"
)

// AvailabilityAction is the per-date outcome recorded in a bulk-save ledger.
type AvailabilityAction string

const (
	ActionCreated AvailabilityAction = "created"
	ActionUpdated AvailabilityAction = "updated"
	ActionDeleted AvailabilityAction = "deleted"
	ActionNoop    AvailabilityAction = "no-op"
	ActionError   AvailabilityAction = "error"
)

// AvailabilityResult is one ledger entry of a bulk save.
type AvailabilityResult struct {
	Date   string             `json:"date"`
	Action AvailabilityAction `json:"action"`
	Error  string             `json:"error,omitempty"`
}

// SetAvailability applies a single-day change for a user. A nil value
// deletes any existing row (back to "undecided"); true/false create or
// update the row.
func (d *Database) SetAvailability(userID uuid.UUID, date string, value *bool) (AvailabilityAction, error) {
	if value == nil {
		res := d.db.Where("user_id = ? AND date = ?", userID, date).Delete(&models.Availability{})
		if res.Error != nil {
			return ActionError, res.Error
		}
		if res.RowsAffected > 0 {
			return ActionDeleted, nil
		}
		return ActionNoop, nil
	}

	var existing models.Availability
	err := d.db.Where("user_id = ? AND date = ?", userID, date).First(&existing).Error
	switch {
	case err == nil:
		if err := d.db.Model(&existing).Update("is_available", *value).Error; err != nil {
			return ActionError, err
		}
		return ActionUpdated, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		row := models.Availability{UserID: userID, Date: date, IsAvailable: *value}
		if err := d.db.Create(&row).Error; err != nil {
			return ActionError, err
		}
		return ActionCreated, nil
	default:
		return ActionError, err
	}
}

// ApplyAvailability applies per-date changes independently and returns a
// ledger with one entry per applied date, in range order. A failing date
// is recorded and never aborts its siblings; there is deliberately no
// wrapping transaction here.
func (d *Database) ApplyAvailability(userID uuid.UUID, dates []string, changes map[string]*bool) []AvailabilityResult {
	results := make([]AvailabilityResult, 0, len(changes))
	for _, date := range dates {
		value, ok := changes[date]
		if !ok {
			continue
		}
		action, err := d.SetAvailability(userID, date, value)
		entry := AvailabilityResult{Date: date, Action: action}
		if err != nil {
			entry.Error = err.Error()
		}
		results = append(results, entry)
	}
	return results
}

// ClearAvailability deletes every row for the user on the given dates and
// reports how many were removed.
func (d *Database) ClearAvailability(userID uuid.UUID, dates []string) (int64, error) {
	res := d.db.Where("user_id = ? AND date IN ?", userID, dates).Delete(&models.Availability{})
	return res.RowsAffected, res.Error
}

// ListAvailabilityForDates returns every user's rows on the given dates,
// with the owning users loaded for aggregation.
func (d *Database) ListAvailabilityForDates(dates []string) ([]models.Availability, error) {
	var rows []models.Availability
	err := d.db.Preload("User").Where("date IN ?", dates).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
