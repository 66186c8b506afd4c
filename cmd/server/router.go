package server

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/questboard/server/internal/handlers"
	"github.com/questboard/server/internal/middleware"
	jwtauth "github.com/questboard/server/pkg/auth"
)

func APIEndpoints(
	r *gin.Engine,
	jwtMgr *jwtauth.JWTManager,
	rdb *redis.Client,
	authH *handlers.AuthHandler,
	availabilityH *handlers.AvailabilityHandler,
	gameH *handlers.GameHandler,
	sessionDayH *handlers.SessionDayHandler,
	timeRangeH *handlers.TimeRangeHandler,
	wsH *handlers.WebSocketHandler,
) {
	// Auth endpoints
	auth := r.Group("/auth")
	{
		auth.POST("/register", authH.Register)
		auth.POST("/login", authH.Login)
		auth.POST("/logout", authH.Logout)
	}

	// API endpoints
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(jwtMgr, rdb))
	{
		api.GET("/me", authH.Me)

		api.GET("/availability", availabilityH.GetAvailability)
		api.POST("/availability", availabilityH.SaveAvailability)
		api.DELETE("/availability", availabilityH.ClearAvailability)

		api.GET("/games", gameH.ListGames)
		api.POST("/games", gameH.CreateGame)
		api.POST("/games/subscribe", gameH.Subscribe)
		api.DELETE("/games/subscribe", gameH.Unsubscribe)

		api.GET("/session-days", sessionDayH.ListSessionDays)
		api.POST("/session-days", sessionDayH.CreateSessionDays)
		api.PUT("/session-days", sessionDayH.UpdateSessionDay)
		api.DELETE("/session-days", sessionDayH.DeleteSessionDay)

		api.GET("/time-ranges", timeRangeH.ListTimeRanges)
		api.POST("/time-ranges", timeRangeH.SaveTimeRange)
		api.DELETE("/time-ranges", timeRangeH.DeleteTimeRange)
	}

	// Schedule event feed; token may come from the query string.
	ws := r.Group("/ws")
	ws.Use(middleware.WSAuthMiddleware(jwtMgr, rdb))
	{
		ws.GET("", wsH.HandleWebSocket)
	}
}
