package server

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/questboard/server/internal/database"
	"github.com/questboard/server/internal/handlers"
	ws "github.com/questboard/server/internal/websocket"
	"github.com/questboard/server/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *ws.Hub
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)

	hub := ws.NewHub()
	go hub.Run()

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, rdb)
	availabilityH := handlers.NewAvailabilityHandler(dbConn, hub)
	gameH := handlers.NewGameHandler(dbConn, hub)
	sessionDayH := handlers.NewSessionDayHandler(dbConn, hub)
	timeRangeH := handlers.NewTimeRangeHandler(dbConn)
	wsH := handlers.NewWebSocketHandler(hub)

	router := gin.Default()
	APIEndpoints(router, jwtMgr, rdb, authH, availabilityH, gameH, sessionDayH, timeRangeH, wsH)

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
	}
}

func (s *Server) Run() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}
