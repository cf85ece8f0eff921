package handlers

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"kirana-tracker/internal/ai"
	"kirana-tracker/internal/database"
	"kirana-tracker/internal/models"
	"kirana-tracker/internal/reports"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps product photos at 8 MB.
const maxUploadBytes = 8 << 20

func aiGateway(c *gin.Context) (*ai.Gateway, bool) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server missing Gemini API key"})
		return nil, false
	}
	return ai.NewGateway(apiKey), true
}

// ExtractProductDetails takes a product photo and returns the brand,
// MRP, expiry and size the model reads off the packaging. On any
// failure the client falls back to manual entry.
func ExtractProductDetails(c *gin.Context) {
	gateway, ok := aiGateway(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read image"})
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	details, err := gateway.ExtractProductDetails(c.Request.Context(), data, mimeType)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Could not extract product details: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, details)
}

type ForecastRequest struct {
	Context string `json:"context"`
}

// Forecast asks the model for a 7-10 day demand outlook based on the
// store's inventory and recent sales.
func Forecast(c *gin.Context) {
	gateway, ok := aiGateway(c)
	if !ok {
		return
	}

	var req ForecastRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user := c.MustGet("user").(models.User)

	var items []models.InventoryItem
	if err := database.DB.Where("user_id = ?", user.Email).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	var sales []models.Sale
	if err := database.DB.Preload("Items").Where("user_id = ?", user.Email).Order("date desc").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	// Fold the last month's totals into the context so the model sees
	// overall velocity, not just the three sample transactions.
	now := time.Now()
	summary, err := database.GetSalesSummary(user.Email, now.AddDate(0, 0, -30), now)
	freeText := req.Context
	if err == nil && summary.TotalCount > 0 {
		freeText = fmt.Sprintf("%s (Last 30 days: %d transactions totalling %.2f.)", freeText, summary.TotalCount, summary.TotalRevenue)
	}

	forecast, err := gateway.GenerateDemandForecast(c.Request.Context(), items, sales, freeText)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Forecast failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"forecast": forecast})
}

// Replenish drafts a purchase order covering the store's low-stock
// items.
func Replenish(c *gin.Context) {
	gateway, ok := aiGateway(c)
	if !ok {
		return
	}

	user := c.MustGet("user").(models.User)

	var items []models.InventoryItem
	if err := database.DB.Where("user_id = ?", user.Email).Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	lowStock := reports.LowStock(items)
	if len(lowStock) == 0 {
		c.JSON(http.StatusOK, gin.H{"order": "", "message": "No items are low on stock"})
		return
	}

	order, err := gateway.GenerateReplenishmentOrder(c.Request.Context(), lowStock, user.StoreName)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Order generation failed: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}
