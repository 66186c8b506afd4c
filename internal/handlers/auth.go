package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/questboard/server/internal/database"
	"github.com/questboard/server/internal/handlers/dto"
	"github.com/questboard/server/internal/middleware"
	"github.com/questboard/server/internal/models"
	"github.com/questboard/server/pkg/auth"
)

type AuthHandler struct {
	db         *database.Database
	jwtManager *auth.JWTManager
	redis      *redis.Client
}

func NewAuthHandler(db *database.Database, jwtMgr *auth.JWTManager, rdb *redis.Client) *AuthHandler {
	return &AuthHandler{db: db, jwtManager: jwtMgr, redis: rdb}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if _, err := h.db.FindUserByEmail(req.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "email already registered"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create user"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "cannot hash password"})
		return
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := h.db.SaveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "user registered"})
}

// Login verifies credentials and issues the JWT every other endpoint
// requires.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	user, err := h.db.FindUserByEmail(req.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid credentials"})
		return
	}

	token, err := h.jwtManager.Generate(user.ID.String(), user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

// Me returns the profile of the authenticated user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.MustGet(middleware.UserIDKey).(uuid.UUID)

	user, err := h.db.GetUser(userID.String())
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
	}})
}

// Logout blacklists the presented token in Redis until it expires.
func (h *AuthHandler) Logout(c *gin.Context) {
	rawToken, err := auth.ExtractTokenFromHeader(c.Request)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	exp, err := h.jwtManager.Expiry(rawToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "invalid token"})
		return
	}

	ttl := time.Until(exp)
	h.redis.Set(context.Background(), "blacklist:"+rawToken, 1, ttl)

	c.JSON(http.StatusOK, gin.H{"success": true})
}
