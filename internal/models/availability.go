package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Availability is one user's answer for one calendar day. Absence of a
// row means "undecided"; true/false are the two stored states.
type Availability struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_date"`
	Date        string    `gorm:"not null;uniqueIndex:idx_user_date"` // YYYY-MM-DD
	IsAvailable bool      `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"foreignKey:UserID"`
}

func (a *Availability) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// DateRangeSettings is a user's saved default calendar window, used when
// a request carries no explicit range.
type DateRangeSettings struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	StartDate string    `gorm:"not null"`
	EndDate   string    `gorm:"not null"`
	UpdatedAt time.Time
}

func (s *DateRangeSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
