package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"raffle_system/internal/token" // Session token helpers

	"github.com/gin-gonic/gin" // Gin web framework
)

// SessionCookie is the cookie carrying the signed session token
const SessionCookie = "session"

// SessionToken extracts the session token from the request: the session
// cookie for browser clients, with a Bearer header fallback for scripts
func SessionToken(c *gin.Context) string {
	if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
		return v
	}
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// SessionAuthMiddleware validates the session token and stores the caller's
// user ID in the request context
func SessionAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := SessionToken(c)
		if tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		claims, err := token.Parse(tokenStr, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired session"})
			return
		}
		c.Set("userID", claims.UserID) // Store userID in context
		c.Next()
	}
}
