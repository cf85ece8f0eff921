package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"kirana-tracker/internal/database"
	"kirana-tracker/internal/events"
	"kirana-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// inventoryScope applies role visibility to an inventory query:
// admins see every store, retailers only their own rows.
func inventoryScope(c *gin.Context, db *gorm.DB) (*gorm.DB, bool) {
	user := c.MustGet("user").(models.User)
	switch user.Role {
	case models.RoleAdmin:
		return db, true
	case models.RoleRetailer:
		return db.Where("user_id = ?", user.Email), true
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Distributors only see aggregate demand"})
		return nil, false
	}
}

// GetInventory lists the stock visible to the current role.
func GetInventory(c *gin.Context) {
	scoped, ok := inventoryScope(c, database.DB.Model(&models.InventoryItem{}))
	if !ok {
		return
	}

	var items []models.InventoryItem
	if err := scoped.Order("date_added desc, id desc").Find(&items).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch inventory"})
		return
	}
	c.JSON(http.StatusOK, items)
}

type AddItemRequest struct {
	Brand      string  `json:"brand" binding:"required"`
	Size       string  `json:"size" binding:"required"`
	MRP        float64 `json:"mrp" binding:"required,gt=0"`
	ExpiryDate string  `json:"expiry_date" binding:"required"`
	Quantity   int     `json:"quantity"`
	ImageURL   string  `json:"image_url"`
}

// placeholderImage derives a stable stand-in picture from the brand
// name so a re-added product keeps the same image.
func placeholderImage(brand string) string {
	seed := "item"
	if fields := strings.Fields(brand); len(fields) > 0 {
		seed = strings.ToLower(fields[0])
	}
	var b strings.Builder
	for _, r := range seed {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "https://picsum.photos/seed/item/200"
	}
	return fmt.Sprintf("https://picsum.photos/seed/%s/200", b.String())
}

// AddItem is the merge-insert: one row per (store, brand, size). An
// existing row absorbs the added quantity and takes the newest MRP
// and expiry; otherwise a fresh row is created.
func AddItem(c *gin.Context) {
	var input AddItemRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand, size, MRP and expiry date are required"})
		return
	}
	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be at least 1"})
		return
	}

	user := c.MustGet("user").(models.User)
	if user.Role != models.RoleRetailer {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only retailers hold inventory"})
		return
	}

	today := time.Now().Format("2006-01-02")
	var result models.InventoryItem

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.InventoryItem
		err := tx.Where("user_id = ? AND brand = ? AND size = ?", user.Email, input.Brand, input.Size).
			First(&existing).Error

		switch {
		case err == nil:
			// Merge: most-recent MRP and expiry win, stock adds up.
			existing.Quantity += input.Quantity
			existing.MRP = input.MRP
			existing.ExpiryDate = input.ExpiryDate
			existing.DateAdded = today
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			result = existing
			return nil
		case errors.Is(err, gorm.ErrRecordNotFound):
			item := models.InventoryItem{
				UserID:     user.Email,
				Brand:      input.Brand,
				Size:       input.Size,
				MRP:        input.MRP,
				ExpiryDate: input.ExpiryDate,
				Quantity:   input.Quantity,
				DateAdded:  today,
				ImageURL:   input.ImageURL,
			}
			if item.ImageURL == "" {
				item.ImageURL = placeholderImage(item.Brand)
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			result = item
			return nil
		default:
			return err
		}
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save item"})
		return
	}

	events.Default.Publish(events.Change{Table: "inventory", Action: "updated", UserID: user.Email})
	c.JSON(http.StatusCreated, result)
}

type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// SetQuantity sets an explicit stock count on one item. Negative
// input clamps to zero (the manual stepper can't go below empty).
func SetQuantity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}

	var input QuantityRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity is required"})
		return
	}
	if input.Quantity < 0 {
		input.Quantity = 0
	}

	scoped, ok := inventoryScope(c, database.DB.Model(&models.InventoryItem{}))
	if !ok {
		return
	}

	var item models.InventoryItem
	if err := scoped.Where("id = ?", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	item.Quantity = input.Quantity
	if err := database.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quantity"})
		return
	}

	events.Default.Publish(events.Change{Table: "inventory", Action: "updated", UserID: item.UserID})
	c.JSON(http.StatusOK, item)
}

type BulkUpdateRequest struct {
	IDs      []uint `json:"ids" binding:"required"`
	Quantity int    `json:"quantity"`
}

// BulkUpdate applies one target quantity to a set of items at once.
// A negative target is rejected outright, nothing is touched.
func BulkUpdate(c *gin.Context) {
	var input BulkUpdateRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Item IDs are required"})
		return
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity cannot be negative"})
		return
	}
	if len(input.IDs) == 0 {
		c.JSON(http.StatusOK, gin.H{"updated": 0})
		return
	}

	scoped, ok := inventoryScope(c, database.DB.Model(&models.InventoryItem{}))
	if !ok {
		return
	}

	res := scoped.Where("id IN ?", input.IDs).Update("quantity", input.Quantity)
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update items"})
		return
	}

	user := c.MustGet("user").(models.User)
	events.Default.Publish(events.Change{Table: "inventory", Action: "updated", UserID: user.Email})
	c.JSON(http.StatusOK, gin.H{"updated": res.RowsAffected})
}

// DeleteItem permanently removes a row. The client confirms with the
// user first and proves it with the confirm flag.
func DeleteItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid item ID"})
		return
	}
	if c.Query("confirm") != "true" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Deletion must be confirmed"})
		return
	}

	scoped, ok := inventoryScope(c, database.DB.Model(&models.InventoryItem{}))
	if !ok {
		return
	}

	var item models.InventoryItem
	if err := scoped.Where("id = ?", id).First(&item).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Item not found"})
		return
	}

	if err := database.DB.Delete(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete item"})
		return
	}

	events.Default.Publish(events.Change{Table: "inventory", Action: "deleted", UserID: item.UserID})
	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}
