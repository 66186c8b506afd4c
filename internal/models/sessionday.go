package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GameSessionDay is a concrete date a DM proposes for running a session.
// Confirmation is one-way: once confirmed a day cannot go back to
// unconfirmed, only be deleted.
type GameSessionDay struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	GameID      uuid.UUID `gorm:"type:uuid;not null"`
	Date        string    `gorm:"not null"` // YYYY-MM-DD
	StartTime   *string
	EndTime     *string
	Notes       *string
	IsConfirmed bool `gorm:"not null;default:false"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Game Game `gorm:"foreignKey:GameID"`
}

func (d *GameSessionDay) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}
