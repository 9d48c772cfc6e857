package api

import (
	"net/http" // HTTP status codes

	"raffle_system/internal/domain"     // Importing domain models
	"raffle_system/internal/middleware" // Session cookie name
	"raffle_system/internal/token"      // Session token helpers

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// LoginRequest carries the login form
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// LoginHandler authenticates a user and opens a session. The signed token is
// set as an HttpOnly cookie for browsers and also returned in the body so
// scripted clients can send it as a Bearer header.
func LoginHandler(db *gorm.DB, secret string, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		var user domain.User
		if err := db.Where("username = ?", req.Username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		tok, err := token.Generate(user.ID, secret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open session"})
			return
		}
		c.SetCookie(middleware.SessionCookie, tok, int(token.SessionTTL.Seconds()), "/", "", secureCookie, true)
		c.JSON(http.StatusOK, gin.H{"token": tok, "is_admin": user.IsAdmin})
	}
}

// LogoutHandler clears the session cookie
func LogoutHandler(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(middleware.SessionCookie, "", -1, "/", "", secureCookie, true)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
