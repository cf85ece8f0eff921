package reports

import (
	"testing"
	"time"

	"kirana-tracker/internal/models"
)

func item(userID, brand string, qty int, mrp float64) models.InventoryItem {
	return models.InventoryItem{UserID: userID, Brand: brand, Quantity: qty, MRP: mrp, ExpiryDate: "2030-01-01"}
}

func TestLowStockBoundaries(t *testing.T) {
	items := []models.InventoryItem{
		item("s", "Empty", 0, 1),
		item("s", "AtThreshold", 5, 1),
		item("s", "AboveThreshold", 6, 1),
	}

	low := LowStock(items)
	if len(low) != 2 {
		t.Fatalf("expected 2 low-stock items, got %d", len(low))
	}
	for _, it := range low {
		if it.Brand == "AboveThreshold" {
			t.Errorf("quantity 6 must not be low stock")
		}
	}
}

func TestExpiringSoonWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	items := []models.InventoryItem{
		{Brand: "ExactlyThirty", Quantity: 1, ExpiryDate: "2026-09-27"},
		{Brand: "ThirtyOne", Quantity: 1, ExpiryDate: "2026-09-28"},
		{Brand: "AlreadyExpired", Quantity: 1, ExpiryDate: "2026-01-01"},
		{Brand: "Garbage", Quantity: 1, ExpiryDate: "soonish"},
	}

	soon := ExpiringSoon(items, now)

	got := make(map[string]bool)
	for _, it := range soon {
		got[it.Brand] = true
	}
	if !got["ExactlyThirty"] {
		t.Errorf("item expiring exactly 30 days out must be included")
	}
	if got["ThirtyOne"] {
		t.Errorf("item expiring 31 days out must be excluded")
	}
	if !got["AlreadyExpired"] {
		t.Errorf("already-expired item must be included")
	}
	if got["Garbage"] {
		t.Errorf("unparseable expiry must be silently excluded")
	}
}

func TestExpiringSoonUnparseableDoesNotPanic(t *testing.T) {
	items := []models.InventoryItem{{Brand: "Bad", ExpiryDate: ""}}
	if got := ExpiringSoon(items, time.Now()); len(got) != 0 {
		t.Fatalf("expected empty result, got %d items", len(got))
	}
}

func TestInventoryValueAndUnits(t *testing.T) {
	items := []models.InventoryItem{
		item("s", "A", 10, 5),
		item("s", "B", 3, 28),
	}
	if v := InventoryValue(items); v != 10*5+3*28 {
		t.Errorf("inventory value = %v, want %v", v, 10*5+3*28)
	}
	if u := TotalUnits(items); u != 13 {
		t.Errorf("total units = %d, want 13", u)
	}
}

func TestTopSellingRanksAndTruncates(t *testing.T) {
	sales := []models.Sale{
		{Items: []models.SaleItem{
			{Brand: "Parle-G", Quantity: 5},
			{Brand: "Lays", Quantity: 2},
		}},
		{Items: []models.SaleItem{
			{Brand: "Parle-G", Quantity: 3},
			{Brand: "Maggi", Quantity: 4},
			{Brand: "Amul", Quantity: 1},
			{Brand: "Tata Salt", Quantity: 1},
			{Brand: "Coke", Quantity: 1},
		}},
	}

	top := TopSelling(sales, 5)
	if len(top) != 5 {
		t.Fatalf("expected top 5, got %d", len(top))
	}
	if top[0].Brand != "Parle-G" || top[0].Quantity != 8 {
		t.Errorf("top seller = %+v, want Parle-G 8", top[0])
	}
	if top[1].Brand != "Maggi" {
		t.Errorf("second = %s, want Maggi", top[1].Brand)
	}
	// Amul, Tata Salt and Coke tie at 1; first-appearance order holds.
	if top[2].Brand != "Lays" || top[3].Brand != "Amul" || top[4].Brand != "Tata Salt" {
		t.Errorf("tie order not stable: %+v", top)
	}
}

func TestTopSellingEmpty(t *testing.T) {
	if got := TopSelling(nil, 5); len(got) != 0 {
		t.Fatalf("expected no results for no sales, got %v", got)
	}
}

func TestStoreRollupsAreIndependent(t *testing.T) {
	users := []models.User{
		{Email: "a@test.com", StoreName: "A", Role: models.RoleRetailer},
		{Email: "b@test.com", StoreName: "B", Role: models.RoleRetailer},
		{Email: "admin@test.com", StoreName: "HQ", Role: models.RoleAdmin},
	}
	items := []models.InventoryItem{
		item("a@test.com", "X", 10, 5),
		item("b@test.com", "Y", 2, 40),
	}
	sales := []models.Sale{
		{UserID: "a@test.com", Total: 100},
		{UserID: "a@test.com", Total: 50},
		{UserID: "b@test.com", Total: 7},
	}

	rollups := StoreRollups(users, items, sales)
	if len(rollups) != 2 {
		t.Fatalf("expected rollups for 2 retailers, got %d", len(rollups))
	}

	byEmail := make(map[string]StoreRollup)
	for _, r := range rollups {
		byEmail[r.Email] = r
	}

	a := byEmail["a@test.com"]
	if a.InventoryValue != 50 || a.StockUnits != 10 || a.SaleCount != 2 || a.Revenue != 150 {
		t.Errorf("store A rollup = %+v", a)
	}
	b := byEmail["b@test.com"]
	if b.InventoryValue != 80 || b.StockUnits != 2 || b.SaleCount != 1 || b.Revenue != 7 {
		t.Errorf("store B rollup = %+v", b)
	}
}

func TestStoresNeedingReplenishment(t *testing.T) {
	users := []models.User{
		{Email: "a@test.com", Role: models.RoleRetailer},
		{Email: "b@test.com", Role: models.RoleRetailer},
		{Email: "admin@test.com", Role: models.RoleAdmin},
	}
	items := []models.InventoryItem{
		item("a@test.com", "X", 2, 1),     // low
		item("b@test.com", "Y", 50, 1),    // fine
		item("admin@test.com", "Z", 0, 1), // not a retailer
	}

	if got := StoresNeedingReplenishment(users, items); got != 1 {
		t.Fatalf("stores needing restock = %d, want 1", got)
	}
}
