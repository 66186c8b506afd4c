package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CreatedAt    time.Time

	// Relations
	Availabilities []Availability     `gorm:"foreignKey:UserID"`
	Games          []Game             `gorm:"foreignKey:DMID"`
	Subscriptions  []GameSubscription `gorm:"foreignKey:UserID"`
}

// BeforeCreate fills the id client-side so the models work both on
// Postgres and on the in-memory test database.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
