package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/questboard/server/internal/database"
	"github.com/questboard/server/internal/handlers/dto"
	"github.com/questboard/server/internal/middleware"
	"github.com/questboard/server/internal/schedule"
	ws "github.com/questboard/server/internal/websocket"
)

type AvailabilityHandler struct {
	db  *database.Database
	hub *ws.Hub
}

func NewAvailabilityHandler(db *database.Database, hub *ws.Hub) *AvailabilityHandler {
	return &AvailabilityHandler{db: db, hub: hub}
}

// GetAvailability returns every user's per-date answers for the resolved
// range; days without a row stay absent (undecided).
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	startDate, endDate, dates, err := resolveDateRange(c, h.db, userID)
	if err != nil {
		if errors.Is(err, errBadRange) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch availability"})
		return
	}

	users, err := h.db.ListUsersWithAvailability(dates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch availability"})
		return
	}

	formatted := make([]gin.H, len(users))
	for i, user := range users {
		byDate := make(map[string]bool, len(user.Availabilities))
		for _, a := range user.Availabilities {
			byDate[a.Date] = a.IsAvailable
		}
		formatted[i] = gin.H{
			"id":             user.ID,
			"email":          user.Email,
			"name":           user.Name,
			"availabilities": byDate,
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"users":       formatted,
		"dates":       dates,
		"startDate":   startDate,
		"endDate":     endDate,
		"onlineCount": len(h.hub.OnlineUsers()),
	})
}

// SaveAvailability applies per-date changes best-effort and returns the
// resulting ledger. One bad date never rolls back its siblings, so this
// deliberately runs without a transaction. When the body carries both
// bounds they become the caller's saved default window.
func (h *AvailabilityHandler) SaveAvailability(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.SaveAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid availability data"})
		return
	}

	if req.StartDate != "" && req.EndDate != "" {
		if !schedule.ValidDay(req.StartDate) || !schedule.ValidDay(req.EndDate) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": errBadRange.Error()})
			return
		}
		if err := h.db.UpsertDateRangeSettings(userID, req.StartDate, req.EndDate); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save availability"})
			return
		}
	}

	dates := schedule.DateRange(req.StartDate, req.EndDate)
	results := h.db.ApplyAvailability(userID, dates, req.Availabilities)

	if len(results) > 0 {
		changed := make([]string, 0, len(results))
		for _, r := range results {
			if r.Action == database.ActionCreated || r.Action == database.ActionUpdated || r.Action == database.ActionDeleted {
				changed = append(changed, r.Date)
			}
		}
		if len(changed) > 0 {
			h.hub.Broadcast(ws.TypeAvailabilitySaved, userID, gin.H{"dates": changed})
		}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}

// ClearAvailability wipes the caller's rows in the resolved range.
func (h *AvailabilityHandler) ClearAvailability(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	startDate, endDate, dates, err := resolveDateRange(c, h.db, userID)
	if err != nil {
		if errors.Is(err, errBadRange) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to clear availability"})
		return
	}

	deleted, err := h.db.ClearAvailability(userID, dates)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to clear availability"})
		return
	}

	if deleted > 0 {
		h.hub.Broadcast(ws.TypeAvailabilityCleared, userID, gin.H{
			"startDate": startDate,
			"endDate":   endDate,
		})
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All availability data cleared"})
}
