package middleware

import (
	"net/http"
	"strings"

	"kirana-tracker/internal/auth"
	"kirana-tracker/internal/database"
	"kirana-tracker/internal/models"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware checks the bearer token and loads the current user.
// The user record is re-read from the store on every request so a
// profile update (store name, role) applies without a new login.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header must start with Bearer"})
			c.Abort()
			return
		}

		claims, err := auth.ValidateToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		var user models.User
		if err := database.DB.First(&user, "email = ?", claims.Email).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session user no longer exists"})
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("email", user.Email)
		c.Set("role", user.Role)
		c.Next()
	}
}

// RequireOnboarded gates the main application: a user who has not
// completed the profile step only gets the profile routes.
func RequireOnboarded() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := c.MustGet("user").(models.User)
		if user.NeedsOnboarding() {
			c.JSON(http.StatusForbidden, gin.H{
				"error":            "Complete your store profile to continue",
				"needs_onboarding": true,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole is a secondary guard that checks for specific permissions.
func RequireRole(allowedRole models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role != allowedRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to access this resource"})
			c.Abort()
			return
		}
		c.Next()
	}
}
