package database

import (
	"log"
	"os"
	"time"

	"kirana-tracker/internal/models"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Connect opens the store. With DB_DSN set we talk to MySQL; without
// it we fall back to a local sqlite file, which is the normal
// single-shop deployment (one persistent database per installation).
func Connect() {
	dsn := os.Getenv("DB_DSN")

	var err error
	if dsn == "" {
		path := os.Getenv("SQLITE_PATH")
		if path == "" {
			path = "kirana.db"
		}
		DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Warn),
		})
		if err != nil {
			log.Fatal("Failed to open sqlite database:", err)
		}
		log.Println("Connected to sqlite store at " + path)
	} else {
		// Wait for MySQL to come up (container deployments).
		for i := 0; i < 5; i++ {
			DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
				Logger: logger.Default.LogMode(logger.Warn),
			})
			if err == nil {
				break
			}
			log.Printf("Failed to connect to database. Retrying in 2 seconds... (%d/5)", i+1)
			time.Sleep(2 * time.Second)
		}
		if err != nil {
			log.Fatal("Failed to connect to database after 5 attempts:", err)
		}
		log.Println("Connected to MySQL")
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("Failed to migrate schema:", err)
	}
	log.Println("Database schema synced")

	if err := Seed(DB); err != nil {
		log.Fatal("Failed to seed demo data:", err)
	}
}

// Migrate syncs the schema, including the unique
// (user_id, brand, size) index that backs the merge-insert rule.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.InventoryItem{},
		&models.Sale{},
		&models.SaleItem{},
	)
}
