package handlers

import (
	"errors"
	"net/http"
	"time"

	"kirana-tracker/internal/database"
	"kirana-tracker/internal/events"
	"kirana-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CheckoutRequest is the cart the billing screen sends.
type CheckoutRequest struct {
	Items []struct {
		ItemID   uint `json:"item_id"`
		Quantity int  `json:"quantity"`
	} `json:"items" binding:"required"`
}

// Checkout turns a cart into a Sale. All inventory decrements and the
// sale record commit in one transaction, so a failure anywhere leaves
// the store untouched. Cart lines whose item id no longer exists are
// skipped and contribute nothing.
//
// Stock is not floor-clamped here: the billing screen caps cart
// quantity at remaining stock while the cart is built.
func Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user := c.MustGet("user").(models.User)
	if user.Role != models.RoleRetailer {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only retailers record sales"})
		return
	}

	var sale models.Sale
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		sale = models.Sale{
			UserID: user.Email,
			Date:   time.Now().UTC(),
		}

		for _, line := range req.Items {
			var item models.InventoryItem
			err := tx.Where("id = ? AND user_id = ?", line.ItemID, user.Email).First(&item).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			if err != nil {
				return err
			}

			// Snapshot the line so later price or expiry edits
			// never rewrite this sale.
			sale.Items = append(sale.Items, models.SaleItem{
				Brand:      item.Brand,
				Size:       item.Size,
				MRP:        item.MRP,
				ExpiryDate: item.ExpiryDate,
				Quantity:   line.Quantity,
			})
			sale.Total += item.MRP * float64(line.Quantity)

			item.Quantity -= line.Quantity
			if err := tx.Save(&item).Error; err != nil {
				return err
			}
		}

		return tx.Create(&sale).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record sale"})
		return
	}

	events.Default.Publish(events.Change{Table: "sales", Action: "created", UserID: user.Email})
	events.Default.Publish(events.Change{Table: "inventory", Action: "updated", UserID: user.Email})
	c.JSON(http.StatusOK, sale)
}

// GetSales lists the sale history visible to the current role,
// newest first.
func GetSales(c *gin.Context) {
	user := c.MustGet("user").(models.User)

	query := database.DB.Preload("Items").Order("date desc")
	switch user.Role {
	case models.RoleAdmin:
	case models.RoleRetailer:
		query = query.Where("user_id = ?", user.Email)
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "Distributors only see aggregate demand"})
		return
	}

	var sales []models.Sale
	if err := query.Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch sales"})
		return
	}
	c.JSON(http.StatusOK, sales)
}
