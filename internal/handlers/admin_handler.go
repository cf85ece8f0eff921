package handlers

import (
	"net/http"

	"kirana-tracker/internal/database"
	"kirana-tracker/internal/models"
	"kirana-tracker/internal/reports"

	"github.com/gin-gonic/gin"
)

// GetStores returns one rollup card per retailer: inventory value,
// stock units, sale count and revenue, each computed from that
// store's rows only.
func GetStores(c *gin.Context) {
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
	var sales []models.Sale
	if err := database.DB.Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, reports.StoreRollups(users, items, sales))
}

// resolveStore loads the retailer a drill-down targets. The store id
// in the URL is the account email.
func resolveStore(c *gin.Context) (*models.User, bool) {
	var store models.User
	if err := database.DB.First(&store, "email = ?", c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Store not found"})
		return nil, false
	}
	return &store, true
}

// GetStoreInventory is the drill-down inventory tab. Rows are scoped
// strictly to the selected store, so switching stores can never leak
// the previous selection's items.
func GetStoreInventory(c *gin.Context) {
	store, ok := resolveStore(c)
	if !ok {
		return
	}

	var items []models.InventoryItem
	if err := database.DB.Where("user_id = ?", store.Email).Order("date_added desc, id desc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"store": store,
		"items": items,
	})
}

// GetStoreSales is the drill-down sales tab.
func GetStoreSales(c *gin.Context) {
	store, ok := resolveStore(c)
	if !ok {
		return
	}

	var sales []models.Sale
	if err := database.DB.Preload("Items").Where("user_id = ?", store.Email).Order("date desc").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"store": store,
		"sales": sales,
	})
}
