package dto

// SaveAvailabilityRequest carries per-date tri-state changes: true/false
// store a decision, null clears one. Dates outside the submitted range
// are ignored.
type SaveAvailabilityRequest struct {
	Availabilities map[string]*bool `json:"availabilities" binding:"required"`
	StartDate      string           `json:"startDate"`
	EndDate        string           `json:"endDate"`
}

type CreateGameRequest struct {
	Name              string `json:"name" binding:"required"`
	Description       string `json:"description"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	IsAlwaysAvailable bool   `json:"isAlwaysAvailable"`
	MaxPlayers        *int   `json:"maxPlayers"`
}

type SubscribeRequest struct {
	GameID string `json:"gameId" binding:"required"`
}

type SessionDayInput struct {
	Date      string  `json:"date" binding:"required"`
	StartTime *string `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Notes     *string `json:"notes"`
}

type CreateSessionDaysRequest struct {
	GameID      string            `json:"gameId" binding:"required"`
	SessionDays []SessionDayInput `json:"sessionDays" binding:"required"`
}

// SessionDayUpdates lists the mutable fields; nil means "leave as is".
// IsConfirmed only moves from false to true, never back.
type SessionDayUpdates struct {
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime"`
	EndTime     *string `json:"endTime"`
	Notes       *string `json:"notes"`
	IsConfirmed *bool   `json:"isConfirmed"`
}

type UpdateSessionDayRequest struct {
	SessionID string            `json:"sessionId" binding:"required"`
	Updates   SessionDayUpdates `json:"updates" binding:"required"`
}

type TimeRangeRequest struct {
	DayOfWeek *int   `json:"dayOfWeek" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
}
