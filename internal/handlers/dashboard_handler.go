package handlers

import (
	"net/http"
	"time"

	"kirana-tracker/internal/database"
	"kirana-tracker/internal/models"
	"kirana-tracker/internal/reports"

	"github.com/gin-gonic/gin"
)

// GetDashboard returns the role's dashboard. One endpoint, one switch
// over the role: each variant computes exactly what that role may see
// and nothing else.
func GetDashboard(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	switch user.Role {
	case models.RoleRetailer:
		retailerDashboard(c, user)
	case models.RoleDistributor:
		distributorDashboard(c)
	case models.RoleAdmin:
		adminDashboard(c)
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Unknown role"})
	}
}

func retailerDashboard(c *gin.Context, user models.User) {
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

	c.JSON(http.StatusOK, gin.H{
		"role":                user.Role,
		"inventory_value":     reports.InventoryValue(items),
		"total_units":         reports.TotalUnits(items),
		"low_stock_count":     len(reports.LowStock(items)),
		"expiring_soon_count": len(reports.ExpiringSoon(items, time.Now())),
		"top_selling":         reports.TopSelling(sales, 5),
	})
}

// distributorDashboard is deliberately thin: a distributor only gets
// the number of stores with replenishment demand, no drill-down.
func distributorDashboard(c *gin.Context) {
	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stores"})
		return
	}
	var items []models.InventoryItem
	if err := database.DB.Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"role":                   models.RoleDistributor,
		"stores_needing_restock": reports.StoresNeedingReplenishment(users, items),
	})
}

func adminDashboard(c *gin.Context) {
	var users []models.User
	if err := database.DB.Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch stores"})
		return
	}

	var sales []models.Sale
	if err := database.DB.Preload("Items").Order("date desc").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	storeCount := 0
	for _, u := range users {
		if u.Role == models.RoleRetailer {
			storeCount++
		}
	}

	revenue := reports.Revenue(sales)
	avgSale := 0.0
	if len(sales) > 0 {
		avgSale = revenue / float64(len(sales))
	}

	c.JSON(http.StatusOK, gin.H{
		"role":           models.RoleAdmin,
		"total_stores":   storeCount,
		"total_revenue":  revenue,
		"avg_sale_value": avgSale,
		"top_selling":    reports.TopSelling(sales, 5),
	})
}
