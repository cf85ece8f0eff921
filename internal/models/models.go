package models

import (
	"time"
)

// UserRole - what the account acts as. Assigned at onboarding.
type UserRole string

const (
	RoleRetailer    UserRole = "Retailer"
	RoleDistributor UserRole = "Distributor"
	RoleAdmin       UserRole = "Admin"
)

// User - one account/tenant. Email is the identity key.
type User struct {
	Email        string    `gorm:"primaryKey;size:191" json:"email"`
	PasswordHash string    `json:"-"` // Never return this in JSON
	StoreName    string    `json:"store_name"`
	Role         UserRole  `json:"role"` // empty until onboarding completes
	CreatedAt    time.Time `json:"created_at"`
}

// NeedsOnboarding reports whether the profile step is still pending.
// A user without a store name or role must not reach the main app.
func (u *User) NeedsOnboarding() bool {
	return u.StoreName == "" || u.Role == ""
}

// InventoryItem - one stocked product lot. At most one row per store
// per (brand, size); a duplicate add merges into the existing row.
type InventoryItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	UserID     string  `gorm:"size:191;uniqueIndex:idx_store_brand_size" json:"user_id"`
	Brand      string  `gorm:"size:191;uniqueIndex:idx_store_brand_size" json:"brand"`
	Size       string  `gorm:"size:64;uniqueIndex:idx_store_brand_size" json:"size"`
	MRP        float64 `json:"mrp"`
	ExpiryDate string  `json:"expiry_date"` // YYYY-MM-DD
	Quantity   int     `json:"quantity"`
	DateAdded  string  `json:"date_added"` // YYYY-MM-DD, refreshed on merge
	ImageURL   string  `json:"image_url"`
}

// Sale - one completed checkout. Never mutated after creation.
type Sale struct {
	ID     uint       `gorm:"primaryKey" json:"id"`
	UserID string     `gorm:"index;size:191" json:"user_id"`
	Date   time.Time  `json:"date"`
	Total  float64    `json:"total"`
	Items  []SaleItem `gorm:"foreignKey:SaleID" json:"items"`
}

// SaleItem - one line in a sale. Snapshot of the inventory row at sale
// time, so later price/expiry edits never rewrite history.
type SaleItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	SaleID     uint    `json:"sale_id"`
	Brand      string  `json:"brand"`
	Size       string  `json:"size"`
	MRP        float64 `json:"mrp"`
	ExpiryDate string  `json:"expiry_date"`
	Quantity   int     `json:"quantity"` // quantity sold, not remaining stock
}

// ProductDetails - what the AI extracts from a product photo.
type ProductDetails struct {
	Brand      string  `json:"brand"`
	MRP        float64 `json:"mrp"`
	ExpiryDate string  `json:"expiryDate"` // YYYY-MM-DD
	Size       string  `json:"size"`
}
