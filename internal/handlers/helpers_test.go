package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"kirana-tracker/internal/auth"
	"kirana-tracker/internal/database"
	"kirana-tracker/internal/middleware"
	"kirana-tracker/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupDB points the global store at a fresh in-memory sqlite
// database named after the test, so tests stay isolated.
func setupDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	database.DB = db
}

func createUser(t *testing.T, email, storeName string, role models.UserRole) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user := models.User{Email: email, PasswordHash: string(hash), StoreName: storeName, Role: role}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func tokenFor(t *testing.T, user models.User) string {
	t.Helper()
	token, err := auth.GenerateToken(user.Email, user.Role)
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	return token
}

// testRouter wires the same route table the server uses.
func testRouter() *gin.Engine {
	r := gin.New()
	r.POST("/signup", Signup)
	r.POST("/login", Login)

	api := r.Group("/api")
	api.Use(middleware.AuthMiddleware())
	{
		api.GET("/auth/me", Me)
		api.PUT("/auth/profile", UpdateProfile)

		app := api.Group("/")
		app.Use(middleware.RequireOnboarded())
		{
			app.GET("/inventory", GetInventory)
			app.POST("/inventory", AddItem)
			app.PUT("/inventory", BulkUpdate)
			app.PUT("/inventory/:id/quantity", SetQuantity)
			app.DELETE("/inventory/:id", DeleteItem)

			app.POST("/checkout", Checkout)
			app.GET("/sales", GetSales)
			app.GET("/dashboard", GetDashboard)

			admin := app.Group("/admin")
			admin.Use(middleware.RequireRole(models.RoleAdmin))
			{
				admin.GET("/stores", GetStores)
				admin.GET("/stores/:id/inventory", GetStoreInventory)
				admin.GET("/stores/:id/sales", GetStoreSales)
			}
		}
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d (body: %s)", w.Code, want, w.Body.String())
	}
}
