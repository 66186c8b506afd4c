package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Game is a campaign run by one DM. Either it carries a bounding date
// window (StartDate/EndDate) or it is flagged always-available and the
// bounds stay null.
type Game struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"not null"`
	Description       *string
	DMID              uuid.UUID `gorm:"type:uuid;not null"`
	StartDate         *string
	EndDate           *string
	IsAlwaysAvailable bool `gorm:"not null;default:false"`
	MaxPlayers        *int
	CreatedAt         time.Time

	// Relations
	DM            User               `gorm:"foreignKey:DMID"`
	Subscriptions []GameSubscription `gorm:"foreignKey:GameID"`
	SessionDays   []GameSessionDay   `gorm:"foreignKey:GameID"`
}

func (g *Game) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	return nil
}

// GameSubscription is a pure membership record; the unique index is what
// closes the duplicate-join race at the store level.
type GameSubscription struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	GameID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_game_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_game_user"`
	CreatedAt time.Time

	Game Game `gorm:"foreignKey:GameID"`
	User User `gorm:"foreignKey:UserID"`
}

func (s *GameSubscription) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
