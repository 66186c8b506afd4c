package schedule

import (
	"github.com/google/uuid"

	"github.com/questboard/server/internal/models"
)

// PlayerRef is the slimmed user identity embedded in aggregation rows.
type PlayerRef struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// DayStats describes one calendar day of one game.
type DayStats struct {
	Date              string                 `json:"date"`
	TotalAvailable    int                    `json:"totalAvailable"`
	AvailablePlayers  []PlayerRef            `json:"availablePlayers"`
	SubscribedPlayers []PlayerRef            `json:"subscribedPlayers"`
	SessionDay        *models.GameSessionDay `json:"sessionDay"`
}

// GameStats is the per-game view over a queried date range.
type GameStats struct {
	ID                 uuid.UUID  `json:"id"`
	Name               string     `json:"name"`
	Description        *string    `json:"description"`
	DM                 PlayerRef  `json:"dm"`
	StartDate          *string    `json:"startDate"`
	EndDate            *string    `json:"endDate"`
	IsAlwaysAvailable  bool       `json:"isAlwaysAvailable"`
	MaxPlayers         *int       `json:"maxPlayers"`
	TotalSubscriptions int        `json:"totalSubscriptions"`
	AvailabilityByDate []DayStats `json:"availabilityByDate"`
}

// Overlaps reports whether a game's window intersects the queried range.
// Games without bounds are treated as always relevant. The day strings
// sort lexicographically, so plain string comparison is enough.
func Overlaps(gameStart, gameEnd *string, rangeStart, rangeEnd string) bool {
	if gameStart == nil || gameEnd == nil {
		return true
	}
	return *gameStart <= rangeEnd && *gameEnd >= rangeStart
}

// relevantSubscriptions filters a game's subscriptions to those that
// matter for the queried range.
func relevantSubscriptions(game models.Game, rangeStart, rangeEnd string) []models.GameSubscription {
	if game.IsAlwaysAvailable || Overlaps(game.StartDate, game.EndDate, rangeStart, rangeEnd) {
		return game.Subscriptions
	}
	return nil
}

func playerRef(u models.User) PlayerRef {
	return PlayerRef{ID: u.ID, Name: u.Name, Email: u.Email}
}

// AggregateGames joins games, subscriptions and per-day availability into
// per-game per-day statistics for the presentation layer. It performs no
// writes; games must come with Subscriptions (and their Users), SessionDays
// and DM loaded, availabilities with their Users loaded.
func AggregateGames(games []models.Game, availabilities []models.Availability, dates []string) []GameStats {
	var rangeStart, rangeEnd string
	if len(dates) > 0 {
		rangeStart, rangeEnd = dates[0], dates[len(dates)-1]
	}

	// Available users keyed by day.
	availableByDate := make(map[string][]PlayerRef, len(dates))
	for _, a := range availabilities {
		if a.IsAvailable {
			availableByDate[a.Date] = append(availableByDate[a.Date], playerRef(a.User))
		}
	}

	stats := make([]GameStats, 0, len(games))
	for _, game := range games {
		relevant := relevantSubscriptions(game, rangeStart, rangeEnd)

		sessionByDate := make(map[string]*models.GameSessionDay, len(game.SessionDays))
		for i := range game.SessionDays {
			sd := game.SessionDays[i]
			if _, ok := sessionByDate[sd.Date]; !ok {
				sessionByDate[sd.Date] = &game.SessionDays[i]
			}
		}

		byDate := make([]DayStats, 0, len(dates))
		for _, date := range dates {
			available := availableByDate[date]

			availableIDs := make(map[uuid.UUID]bool, len(available))
			for _, p := range available {
				availableIDs[p.ID] = true
			}

			subscribed := make([]PlayerRef, 0)
			for _, sub := range relevant {
				if availableIDs[sub.UserID] {
					subscribed = append(subscribed, playerRef(sub.User))
				}
			}

			if available == nil {
				available = []PlayerRef{}
			}

			byDate = append(byDate, DayStats{
				Date:              date,
				TotalAvailable:    len(available),
				AvailablePlayers:  available,
				SubscribedPlayers: subscribed,
				SessionDay:        sessionByDate[date],
			})
		}

		stats = append(stats, GameStats{
			ID:                 game.ID,
			Name:               game.Name,
			Description:        game.Description,
			DM:                 playerRef(game.DM),
			StartDate:          game.StartDate,
			EndDate:            game.EndDate,
			IsAlwaysAvailable:  game.IsAlwaysAvailable,
			MaxPlayers:         game.MaxPlayers,
			TotalSubscriptions: len(relevant),
			AvailabilityByDate: byDate,
		})
	}
	return stats
}
