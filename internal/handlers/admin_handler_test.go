package handlers

import (
	"net/http"
	"testing"

	"kirana-tracker/internal/models"
	"kirana-tracker/internal/reports"
)

func seedTwoStores(t *testing.T) (alice, bob models.User) {
	t.Helper()
	return createUser(t, "alice@test.com", "Apna Kirana", models.RoleRetailer),
		createUser(t, "bob@test.com", "Best Mart", models.RoleRetailer)
}

func TestStoreRollupsEndpoint(t *testing.T) {
	setupDB(t)
	r := testRouter()
	alice, bob := seedTwoStores(t)
	admin := createUser(t, "admin@test.com", "Kirana Corp", models.RoleAdmin)

	doJSON(t, r, http.MethodPost, "/api/inventory", tokenFor(t, alice), addItemBody("Parle-G", "50g", 5, 10))
	doJSON(t, r, http.MethodPost, "/api/inventory", tokenFor(t, bob), addItemBody("Maggi", "70g", 12, 2))

	w := doJSON(t, r, http.MethodGet, "/api/admin/stores", tokenFor(t, admin), nil)
	wantStatus(t, w, http.StatusOK)

	var rollups []reports.StoreRollup
	decode(t, w, &rollups)
	if len(rollups) != 2 {
		t.Fatalf("expected 2 store cards, got %d", len(rollups))
	}
	for _, roll := range rollups {
		switch roll.Email {
		case "alice@test.com":
			if roll.InventoryValue != 50 || roll.StockUnits != 10 {
				t.Errorf("alice rollup = %+v", roll)
			}
		case "bob@test.com":
			if roll.InventoryValue != 24 || roll.StockUnits != 2 {
				t.Errorf("bob rollup = %+v", roll)
			}
		}
	}
}

// Drill-down must show only the selected store's rows, and switching
// stores must not leak the previous selection.
func TestDrillDownScoping(t *testing.T) {
	setupDB(t)
	r := testRouter()
	alice, bob := seedTwoStores(t)
	admin := createUser(t, "admin@test.com", "Kirana Corp", models.RoleAdmin)

	doJSON(t, r, http.MethodPost, "/api/inventory", tokenFor(t, alice), addItemBody("Parle-G", "50g", 5, 10))
	doJSON(t, r, http.MethodPost, "/api/inventory", tokenFor(t, bob), addItemBody("Maggi", "70g", 12, 2))

	var view struct {
		Store models.User            `json:"store"`
		Items []models.InventoryItem `json:"items"`
	}

	w := doJSON(t, r, http.MethodGet, "/api/admin/stores/alice@test.com/inventory", tokenFor(t, admin), nil)
	wantStatus(t, w, http.StatusOK)
	decode(t, w, &view)
	if len(view.Items) != 1 || view.Items[0].UserID != "alice@test.com" {
		t.Errorf("alice drill-down leaked rows: %+v", view.Items)
	}

	w = doJSON(t, r, http.MethodGet, "/api/admin/stores/bob@test.com/inventory", tokenFor(t, admin), nil)
	wantStatus(t, w, http.StatusOK)
	decode(t, w, &view)
	if len(view.Items) != 1 || view.Items[0].Brand != "Maggi" {
		t.Errorf("bob drill-down shows the wrong rows: %+v", view.Items)
	}
}

func TestDrillDownUnknownStore(t *testing.T) {
	setupDB(t)
	r := testRouter()
	admin := createUser(t, "admin@test.com", "Kirana Corp", models.RoleAdmin)

	w := doJSON(t, r, http.MethodGet, "/api/admin/stores/ghost@test.com/sales", tokenFor(t, admin), nil)
	wantStatus(t, w, http.StatusNotFound)
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	setupDB(t)
	r := testRouter()
	retailer := createUser(t, "shop@test.com", "Apna Kirana", models.RoleRetailer)

	w := doJSON(t, r, http.MethodGet, "/api/admin/stores", tokenFor(t, retailer), nil)
	wantStatus(t, w, http.StatusForbidden)
}

func TestDashboardSwitchesOnRole(t *testing.T) {
	setupDB(t)
	r := testRouter()
	alice, _ := seedTwoStores(t)
	dist := createUser(t, "dist@test.com", "Metro Wholesale", models.RoleDistributor)
	admin := createUser(t, "admin@test.com", "Kirana Corp", models.RoleAdmin)

	// One low-stock item in alice's store.
	doJSON(t, r, http.MethodPost, "/api/inventory", tokenFor(t, alice), addItemBody("Coca-Cola", "750ml", 40, 4))

	var retailerDash struct {
		Role           models.UserRole `json:"role"`
		InventoryValue float64         `json:"inventory_value"`
		LowStockCount  int             `json:"low_stock_count"`
	}
	w := doJSON(t, r, http.MethodGet, "/api/dashboard", tokenFor(t, alice), nil)
	wantStatus(t, w, http.StatusOK)
	decode(t, w, &retailerDash)
	if retailerDash.Role != models.RoleRetailer || retailerDash.InventoryValue != 160 || retailerDash.LowStockCount != 1 {
		t.Errorf("retailer dashboard = %+v", retailerDash)
	}

	var distDash struct {
		Role                 models.UserRole `json:"role"`
		StoresNeedingRestock int             `json:"stores_needing_restock"`
	}
	w = doJSON(t, r, http.MethodGet, "/api/dashboard", tokenFor(t, dist), nil)
	wantStatus(t, w, http.StatusOK)
	decode(t, w, &distDash)
	if distDash.Role != models.RoleDistributor || distDash.StoresNeedingRestock != 1 {
		t.Errorf("distributor dashboard = %+v", distDash)
	}

	var adminDash struct {
		Role        models.UserRole `json:"role"`
		TotalStores int             `json:"total_stores"`
	}
	w = doJSON(t, r, http.MethodGet, "/api/dashboard", tokenFor(t, admin), nil)
	wantStatus(t, w, http.StatusOK)
	decode(t, w, &adminDash)
	if adminDash.Role != models.RoleAdmin || adminDash.TotalStores != 2 {
		t.Errorf("admin dashboard = %+v", adminDash)
	}
}
