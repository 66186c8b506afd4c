package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/questboard/server/internal/database"
	"github.com/questboard/server/internal/handlers/dto"
	"github.com/questboard/server/internal/middleware"
)

type TimeRangeHandler struct {
	db *database.Database
}

func NewTimeRangeHandler(db *database.Database) *TimeRangeHandler {
	return &TimeRangeHandler{db: db}
}

// ListTimeRanges returns the caller's weekly preferences ascending by
// weekday.
func (h *TimeRangeHandler) ListTimeRanges(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	ranges, err := h.db.ListTimeRanges(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to fetch time ranges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "timeRanges": ranges})
}

// SaveTimeRange upserts the preferred window for one weekday.
func (h *TimeRangeHandler) SaveTimeRange(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	var req dto.TimeRangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Day of week, start time, and end time are required"})
		return
	}

	if *req.DayOfWeek < 0 || *req.DayOfWeek > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Day of week must be between 0 (Sunday) and 6 (Saturday)"})
		return
	}

	tr, err := h.db.UpsertTimeRange(userID, *req.DayOfWeek, req.StartTime, req.EndTime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to save time range"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Time range saved successfully", "timeRange": tr})
}

// DeleteTimeRange removes one weekday preference; a missing one is 404.
func (h *TimeRangeHandler) DeleteTimeRange(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	dayParam := c.Query("dayOfWeek")
	if dayParam == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Day of week is required"})
		return
	}

	dayOfWeek, err := strconv.Atoi(dayParam)
	if err != nil || dayOfWeek < 0 || dayOfWeek > 6 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Day of week must be between 0 (Sunday) and 6 (Saturday)"})
		return
	}

	deleted, err := h.db.DeleteTimeRange(userID, dayOfWeek)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to delete time range"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Time range not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Time range deleted successfully"})
}
