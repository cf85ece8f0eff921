package handlers

import (
	"errors"
	"net/http"

	"kirana-tracker/internal/auth"
	"kirana-tracker/internal/database"
	"kirana-tracker/internal/events"
	"kirana-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CredentialsRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup creates a new account. The user lands in the onboarding
// state until the store profile is filled in.
func Signup(c *gin.Context) {
	var input CredentialsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email and password are required"})
		return
	}

	var existing models.User
	err := database.DB.First(&existing, "email = ?", input.Email).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User with this email already exists."})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up user"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.User{
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := auth.GenerateToken(user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	events.Default.Publish(events.Change{Table: "users", Action: "created", UserID: user.Email})
	c.JSON(http.StatusCreated, gin.H{
		"token":            token,
		"user":             user,
		"needs_onboarding": user.NeedsOnboarding(),
	})
}

// Login resolves the email and verifies the password.
func Login(c *gin.Context) {
	var input CredentialsRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Valid email and password are required"})
		return
	}

	var user models.User
	if err := database.DB.First(&user, "email = ?", input.Email).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	token, err := auth.GenerateToken(user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":            token,
		"user":             user,
		"needs_onboarding": user.NeedsOnboarding(),
	})
}

// Me returns the current session user. Works even before onboarding
// so the client knows which screen to show.
func Me(c *gin.Context) {
	user := c.MustGet("user").(models.User)
	c.JSON(http.StatusOK, gin.H{
		"user":             user,
		"needs_onboarding": user.NeedsOnboarding(),
	})
}

type ProfileRequest struct {
	StoreName string          `json:"store_name" binding:"required"`
	Role      models.UserRole `json:"role" binding:"required"`
}

// UpdateProfile completes onboarding or edits the profile later.
// Identity fields (email) never change here.
func UpdateProfile(c *gin.Context) {
	var input ProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Store name and role are required"})
		return
	}

	switch input.Role {
	case models.RoleRetailer, models.RoleDistributor, models.RoleAdmin:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	user := c.MustGet("user").(models.User)
	user.StoreName = input.StoreName
	user.Role = input.Role
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	events.Default.Publish(events.Change{Table: "users", Action: "updated", UserID: user.Email})
	c.JSON(http.StatusOK, gin.H{"user": user})
}
