package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"github.com/questboard/server/pkg/auth"
)

const (
	UserIDKey    = "userID"
	UserEmailKey = "userEmail"
)

// AuthMiddleware verifies the bearer JWT, rejects blacklisted tokens and
// stores the verified identity in the request context.
func AuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			c.Abort()
			return
		}

		authenticate(c, jwtManager, redisClient, token)
	}
}

// WSAuthMiddleware accepts the token from the query string as well, since
// browser websocket clients cannot set headers.
func WSAuthMiddleware(jwtManager *auth.JWTManager, redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			c.Abort()
			return
		}

		authenticate(c, jwtManager, redisClient, token)
	}
}

func authenticate(c *gin.Context, jwtManager *auth.JWTManager, redisClient *redis.Client, token string) {
	exists, err := redisClient.Exists(context.Background(), "blacklist:"+token).Result()
	if err != nil || exists > 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
		c.Abort()
		return
	}

	claims, err := jwtManager.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
		c.Abort()
		return
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token"})
		c.Abort()
		return
	}

	c.Set(UserIDKey, userID)
	c.Set(UserEmailKey, claims.Email)
	c.Next()
}
