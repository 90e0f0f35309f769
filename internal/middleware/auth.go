package middleware

import (
	"net/http"
	"strings"

	"ctchen222/Crypto-Tracker/internal/api/service"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

// RequireAuth gates a route group behind a Bearer token. The token is
// verified statelessly; no store lookup happens here.
func RequireAuth(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing token"})
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		userID, err := tokens.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by RequireAuth.
func UserID(c *gin.Context) int64 {
	id, _ := c.Get(userIDKey)
	userID, _ := id.(int64)
	return userID
}
