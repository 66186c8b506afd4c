package handlers

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/questboard/server/internal/database"
	"github.com/questboard/server/internal/schedule"
)

var errBadRange = errors.New("startDate and endDate must be YYYY-MM-DD")

// resolveDateRange picks the calendar window for a request: explicit
// query params win, then the user's saved settings, then the current
// month. Returns the bounds and the expanded day list.
func resolveDateRange(c *gin.Context, db *database.Database, userID uuid.UUID) (string, string, []string, error) {
	startDate := c.Query("startDate")
	endDate := c.Query("endDate")

	if startDate == "" || endDate == "" {
		settings, err := db.GetDateRangeSettings(userID)
		if err != nil {
			return "", "", nil, err
		}
		if settings != nil {
			startDate, endDate = settings.StartDate, settings.EndDate
		} else {
			startDate, endDate = schedule.CurrentMonth(time.Now())
		}
	}

	if !schedule.ValidDay(startDate) || !schedule.ValidDay(endDate) {
		return "", "", nil, errBadRange
	}

	return startDate, endDate, schedule.DateRange(startDate, endDate), nil
}
