package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/questboard/server/internal/database"
	"github.com/questboard/server/internal/handlers/dto"
	"github.com/questboard/server/internal/middleware"
	"github.com/questboard/server/internal/models"
	"github.com/questboard/server/internal/schedule"
	ws "github.com/questboard/server/internal/websocket"
)

type SessionDayHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewSessionDayHandler(db *database.Database, hub *ws.Hub) *SessionDayHandler {
	return &SessionDayHandler{db: db, hub: hub}
}

// requireOwnedGame resolves a game and checks the caller runs it. Unknown
// and not-owned games answer identically so existence never leaks.
func (h *SessionDayHandler) requireOwnedGame(c *gin.Context, gameID string, userID uuid.UUID) *models.Game {
	game, err := h.db.GetGame(gameID)
	if err != nil || game.DMID != userID {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Game not found or access denied"})
		return nil
	}
	return game
}

// requireOwnedSessionDay resolves a session day through its owning game,
// collapsing not-found and not-owned into the same response.
func (h *SessionDayHandler) requireOwnedSessionDay(c *gin.Context, sessionID string, userID uuid.UUID) *models.GameSessionDay {
	day, err := h.db.GetSessionDayWithGame(sessionID)
	if err != nil || day.Game.DMID != userID {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Session day not found or access denied"})
		return nil
	}
	return day
}

// ListSessionDays returns the proposed and confirmed days of one of the
// caller's games, ascending by date.
func (h *SessionDayHandler) ListSessionDays(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	gameID := c.Query("gameId")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Game ID is required"})
		return
	}

	game := h.requireOwnedGame(c, gameID, userID)
	if game == nil {
		return
	}

	days, err := h.db.ListSessionDays(game.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch session days"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "sessionDays": days})
}

// CreateSessionDays batch-creates proposed days for one of the caller's
// games. Items are persisted independently; failures are reported per
// item instead of rolling back siblings.
func (h *SessionDayHandler) CreateSessionDays(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateSessionDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Game ID and session days array are required"})
		return
	}

	game := h.requireOwnedGame(c, req.GameID, userID)
	if game == nil {
		return
	}

	created := make([]models.GameSessionDay, 0, len(req.SessionDays))
	failed := make([]gin.H, 0)
	for _, input := range req.SessionDays {
		if !schedule.ValidDay(input.Date) {
			failed = append(failed, gin.H{"date": input.Date, "error": "date must be YYYY-MM-DD"})
			continue
		}
		day := models.GameSessionDay{
			GameID:    game.ID,
			Date:      input.Date,
			StartTime: input.StartTime,
			EndTime:   input.EndTime,
			Notes:     input.Notes,
		}
		if err := h.db.CreateSessionDay(&day); err != nil {
			failed = append(failed, gin.H{"date": input.Date, "error": err.Error()})
			continue
		}
		created = append(created, day)
	}

	if len(created) == 0 && len(failed) > 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create session days", "failed": failed})
		return
	}

	if len(created) > 0 {
		h.hub.Broadcast(ws.TypeSessionDaysCreated, userID, gin.H{"gameId": game.ID, "sessionDays": created})
	}

	resp := gin.H{"success": true, "message": "Session days created successfully", "sessionDays": created}
	if len(failed) > 0 {
		resp["failed"] = failed
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateSessionDay edits one session day of a game the caller runs.
// Confirmation is one-way: isConfirmed can only move to true.
func (h *SessionDayHandler) UpdateSessionDay(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.UpdateSessionDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Session ID and updates are required"})
		return
	}

	day := h.requireOwnedSessionDay(c, req.SessionID, userID)
	if day == nil {
		return
	}

	updates := make(map[string]interface{})
	if req.Updates.Date != nil {
		if !schedule.ValidDay(*req.Updates.Date) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "date must be YYYY-MM-DD"})
			return
		}
		updates["date"] = *req.Updates.Date
	}
	if req.Updates.StartTime != nil {
		updates["start_time"] = req.Updates.StartTime
	}
	if req.Updates.EndTime != nil {
		updates["end_time"] = req.Updates.EndTime
	}
	if req.Updates.Notes != nil {
		updates["notes"] = req.Updates.Notes
	}
	if req.Updates.IsConfirmed != nil && *req.Updates.IsConfirmed && !day.IsConfirmed {
		updates["is_confirmed"] = true
	}

	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "sessionDay": day})
		return
	}

	updated, err := h.db.UpdateSessionDay(day.ID, updates)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Session day not found or access denied"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to update session day"})
		return
	}

	h.hub.Broadcast(ws.TypeSessionDayUpdated, userID, gin.H{"gameId": day.GameID, "sessionDay": updated})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Session day updated successfully", "sessionDay": updated})
}

// DeleteSessionDay removes one session day of a game the caller runs.
func (h *SessionDayHandler) DeleteSessionDay(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	sessionID := c.Query("sessionId")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Session ID is required"})
		return
	}

	day := h.requireOwnedSessionDay(c, sessionID, userID)
	if day == nil {
		return
	}

	if err := h.db.DeleteSessionDay(day.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete session day"})
		return
	}

	h.hub.Broadcast(ws.TypeSessionDayDeleted, userID, gin.H{"gameId": day.GameID, "sessionId": day.ID})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Session day deleted successfully"})
}
