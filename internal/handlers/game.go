package handlers

import (
	"errors"
	"net/http"
	"strings"

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

type GameHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewGameHandler(db *database.Database, hub *ws.Hub) *GameHandler {
	return &GameHandler{db: db, hub: hub}
}

// ListGames returns every game with per-date statistics for the resolved
// range: who is available, which subscribers among them, and any session
// day scheduled on that date. Read-only.
func (h *GameHandler) ListGames(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	startDate, endDate, dates, err := resolveDateRange(c, h.db, userID)
	if err != nil {
		if errors.Is(err, errBadRange) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch games"})
		return
	}

	games, err := h.db.ListGamesWithDetails()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch games"})
		return
	}

	availabilities, err := h.db.ListAvailabilityForDates(dates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch games"})
		return
	}

	stats := schedule.AggregateGames(games, availabilities, dates)

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"games":     stats,
		"dates":     dates,
		"startDate": startDate,
		"endDate":   endDate,
	})
}

// CreateGame registers a new game owned by the caller. Unless the game is
// flagged always-available it needs a well-ordered date window.
func (h *GameHandler) CreateGame(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Game name is required"})
		return
	}

	game := &models.Game{
		Name:              name,
		DMID:              userID,
		IsAlwaysAvailable: req.IsAlwaysAvailable,
		MaxPlayers:        req.MaxPlayers,
	}

	if desc := strings.TrimSpace(req.Description); desc != "" {
		game.Description = &desc
	}

	if !req.IsAlwaysAvailable {
		if !schedule.ValidDay(req.StartDate) || !schedule.ValidDay(req.EndDate) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "A valid date range is required unless the game is always available"})
			return
		}
		if req.StartDate > req.EndDate {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "End date must be after start date"})
			return
		}
		game.StartDate = &req.StartDate
		game.EndDate = &req.EndDate
	}

	if req.MaxPlayers != nil && *req.MaxPlayers < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "maxPlayers must be positive"})
		return
	}

	if err := h.db.CreateGame(game); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create game"})
		return
	}

	h.hub.Broadcast(ws.TypeGameCreated, userID, gin.H{"gameId": game.ID, "name": game.Name})

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Game created successfully", "game": game})
}

// Subscribe joins the caller to a game. Joining twice returns the same
// subscription; a full game answers 409.
func (h *GameHandler) Subscribe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Game ID is required"})
		return
	}

	gameID, err := uuid.Parse(req.GameID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid game id"})
		return
	}

	sub, err := h.db.Subscribe(gameID, userID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Game not found"})
		return
	case errors.Is(err, database.ErrGameFull):
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Game is full"})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to subscribe to game"})
		return
	}

	h.hub.Broadcast(ws.TypeSubscriptionAdded, userID, gin.H{"gameId": gameID})

	c.JSON(http.StatusOK, gin.H{"success": true, "subscription": sub})
}

// Unsubscribe removes the caller's subscription; removing nothing is
// still success.
func (h *GameHandler) Unsubscribe(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	gameIDParam := c.Query("gameId")
	if gameIDParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Game ID is required"})
		return
	}

	gameID, err := uuid.Parse(gameIDParam)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid game id"})
		return
	}

	if err := h.db.Unsubscribe(gameID, userID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to unsubscribe from game"})
		return
	}

	h.hub.Broadcast(ws.TypeSubscriptionRemoved, userID, gin.H{"gameId": gameID})

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Unsubscribed from game successfully"})
}
