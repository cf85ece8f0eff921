package main

import (
	"log"
	"os"
	"time"

	"kirana-tracker/internal/database"
	"kirana-tracker/internal/handlers"
	"kirana-tracker/internal/middleware"
	"kirana-tracker/internal/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found")
	}

	database.Connect()
	r := gin.Default()

	allowedOrigin := os.Getenv("ALLOWED_ORIGIN")
	if allowedOrigin == "" {
		allowedOrigin = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{allowedOrigin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "online"}) })
	r.POST("/signup", handlers.Signup)
	r.POST("/login", handlers.Login)

	// --- AUTHENTICATED ROUTES ---
	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		// Reachable before onboarding so the client can finish the
		// profile step.
		api.GET("/auth/me", handlers.Me)
		api.PUT("/auth/profile", handlers.UpdateProfile)

		// Everything below requires a completed store profile.
		app := api.Group("/")
		app.Use(middleware.RequireOnboarded())
		{
			app.GET("/inventory", handlers.GetInventory)
			app.POST("/inventory", handlers.AddItem)
			app.PUT("/inventory", handlers.BulkUpdate)
			app.PUT("/inventory/:id/quantity", handlers.SetQuantity)
			app.DELETE("/inventory/:id", handlers.DeleteItem)

			app.POST("/checkout", handlers.Checkout)
			app.GET("/sales", handlers.GetSales)

			app.GET("/dashboard", handlers.GetDashboard)
			app.GET("/events", handlers.StreamChanges)

			app.POST("/ai/extract", handlers.ExtractProductDetails)
			app.POST("/ai/forecast", handlers.Forecast)
			app.POST("/ai/replenish", handlers.Replenish)

			// ADMIN ONLY: per-store rollups and drill-down.
			admin := app.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/stores", handlers.GetStores)
				admin.GET("/stores/:id/inventory", handlers.GetStoreInventory)
				admin.GET("/stores/:id/sales", handlers.GetStoreSales)
			}
		}
	}

	addr := os.Getenv("LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Println("Kirana Tracker API starting on " + addr)
	if err := r.Run(addr); err != nil {
		log.Fatal("Server failed to start:", err)
	}
}
