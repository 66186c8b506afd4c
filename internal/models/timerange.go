package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TimeRange is a user's preferred play window for one weekday,
// 0=Sunday .. 6=Saturday.
type TimeRange struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_weekday"`
	DayOfWeek int       `gorm:"not null;uniqueIndex:idx_user_weekday;check:day_of_week BETWEEN 0 AND 6"`
	StartTime string    `gorm:"not null"` // HH:MM
	EndTime   string    `gorm:"not null"`
	UpdatedAt time.Time

	User User `gorm:"foreignKey:UserID"`
}

func (t *TimeRange) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
