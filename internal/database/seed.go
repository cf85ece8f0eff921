package database

import (
	"log"
	"time"

	"kirana-tracker/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Seed populates an empty database with two demo stores and an admin
// so the app is usable on first run. A database with any user at all
// is left alone.
func Seed(db *gorm.DB) error {
	var userCount int64
	if err := db.Model(&models.User{}).Count(&userCount).Error; err != nil {
		return err
	}
	if userCount > 0 {
		return nil
	}

	log.Println("Empty database, seeding demo stores")

	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	users := []models.User{
		{Email: "store1@test.com", PasswordHash: string(hash), StoreName: "Apna Kirana", Role: models.RoleRetailer},
		{Email: "store2@test.com", PasswordHash: string(hash), StoreName: "Best Mart", Role: models.RoleRetailer},
		{Email: "admin@test.com", PasswordHash: string(hash), StoreName: "Kirana Corp", Role: models.RoleAdmin},
	}
	if err := db.Create(&users).Error; err != nil {
		return err
	}

	inventory := []models.InventoryItem{
		{UserID: "store1@test.com", Brand: "Parle-G", Size: "50g", MRP: 5, ExpiryDate: "2025-12-31", Quantity: 100, DateAdded: "2024-07-01", ImageURL: "https://picsum.photos/seed/parle/200"},
		{UserID: "store1@test.com", Brand: "Amul Milk", Size: "500ml", MRP: 28, ExpiryDate: "2024-08-15", Quantity: 40, DateAdded: "2024-07-10", ImageURL: "https://picsum.photos/seed/amul/200"},
		{UserID: "store1@test.com", Brand: "Lays Chips", Size: "52g", MRP: 20, ExpiryDate: "2025-01-31", Quantity: 75, DateAdded: "2024-07-05", ImageURL: "https://picsum.photos/seed/lays/200"},
		{UserID: "store2@test.com", Brand: "Tata Salt", Size: "1kg", MRP: 25, ExpiryDate: "2026-06-30", Quantity: 60, DateAdded: "2024-06-20", ImageURL: "https://picsum.photos/seed/tata/200"},
		{UserID: "store2@test.com", Brand: "Maggi Noodles", Size: "70g", MRP: 12, ExpiryDate: "2025-03-31", Quantity: 120, DateAdded: "2024-07-08", ImageURL: "https://picsum.photos/seed/maggi/200"},
		{UserID: "store2@test.com", Brand: "Coca-Cola", Size: "750ml", MRP: 40, ExpiryDate: "2025-02-28", Quantity: 4, DateAdded: "2024-07-12", ImageURL: "https://picsum.photos/seed/coke/200"},
	}
	if err := db.Create(&inventory).Error; err != nil {
		return err
	}

	sales := []models.Sale{
		{
			UserID: "store1@test.com",
			Date:   time.Date(2024, 7, 20, 10, 30, 0, 0, time.UTC),
			Total:  25,
			Items: []models.SaleItem{
				{Brand: "Parle-G", Size: "50g", MRP: 5, ExpiryDate: "2025-12-31", Quantity: 5},
			},
		},
		{
			UserID: "store2@test.com",
			Date:   time.Date(2024, 7, 21, 11, 0, 0, 0, time.UTC),
			Total:  120,
			Items: []models.SaleItem{
				{Brand: "Maggi Noodles", Size: "70g", MRP: 12, ExpiryDate: "2025-03-31", Quantity: 10},
			},
		},
	}
	return db.Create(&sales).Error
}
