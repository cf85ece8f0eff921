package reports

import (
	"sort"
	"time"

	"kirana-tracker/internal/models"
)

// LowStockThreshold is the reorder point: quantity at or below this
// counts as low stock.
const LowStockThreshold = 5

// ExpiryWindowDays is how far ahead the "expiring soon" check looks.
const ExpiryWindowDays = 30

// All functions here are pure: they only read the slices they are
// given, so dashboards can recompute them on every change event.

// LowStock returns the items at or below the reorder threshold.
func LowStock(items []models.InventoryItem) []models.InventoryItem {
	var out []models.InventoryItem
	for _, item := range items {
		if item.Quantity <= LowStockThreshold {
			out = append(out, item)
		}
	}
	return out
}

// ExpiringSoon returns items whose expiry date falls on or before
// now + 30 days. Already-expired items count too. Items with an
// unparseable date are skipped, not treated as an error.
func ExpiringSoon(items []models.InventoryItem, now time.Time) []models.InventoryItem {
	cutoff := now.AddDate(0, 0, ExpiryWindowDays)
	var out []models.InventoryItem
	for _, item := range items {
		expiry, err := time.Parse("2006-01-02", item.ExpiryDate)
		if err != nil {
			continue
		}
		if !expiry.After(cutoff) {
			out = append(out, item)
		}
	}
	return out
}

// InventoryValue is the stock's worth at retail price.
func InventoryValue(items []models.InventoryItem) float64 {
	var total float64
	for _, item := range items {
		total += item.MRP * float64(item.Quantity)
	}
	return total
}

// TotalUnits sums quantity across all items.
func TotalUnits(items []models.InventoryItem) int {
	var units int
	for _, item := range items {
		units += item.Quantity
	}
	return units
}

// Revenue sums sale totals.
func Revenue(sales []models.Sale) float64 {
	var total float64
	for _, sale := range sales {
		total += sale.Total
	}
	return total
}

// BrandSales is one bar of the top-sellers chart.
type BrandSales struct {
	Brand    string `json:"brand"`
	Quantity int    `json:"quantity"`
}

// TopSelling flattens every sale line, sums quantity per brand, and
// returns the top n brands by units sold. Ties keep the order the
// brand first appeared in the sales stream.
func TopSelling(sales []models.Sale, n int) []BrandSales {
	totals := make(map[string]int)
	var order []string
	for _, sale := range sales {
		for _, line := range sale.Items {
			if _, seen := totals[line.Brand]; !seen {
				order = append(order, line.Brand)
			}
			totals[line.Brand] += line.Quantity
		}
	}

	ranked := make([]BrandSales, 0, len(order))
	for _, brand := range order {
		ranked = append(ranked, BrandSales{Brand: brand, Quantity: totals[brand]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Quantity > ranked[j].Quantity
	})

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// StoreRollup is the admin view's summary card for one retailer.
type StoreRollup struct {
	Email          string  `json:"email"`
	StoreName      string  `json:"store_name"`
	InventoryValue float64 `json:"inventory_value"`
	StockUnits     int     `json:"stock_units"`
	SaleCount      int     `json:"sale_count"`
	Revenue        float64 `json:"revenue"`
}

// StoreRollups computes one rollup per retailer user by filtering the
// global inventory and sales collections on the owning store.
func StoreRollups(users []models.User, items []models.InventoryItem, sales []models.Sale) []StoreRollup {
	var rollups []StoreRollup
	for _, u := range users {
		if u.Role != models.RoleRetailer {
			continue
		}
		r := StoreRollup{Email: u.Email, StoreName: u.StoreName}
		for _, item := range items {
			if item.UserID != u.Email {
				continue
			}
			r.InventoryValue += item.MRP * float64(item.Quantity)
			r.StockUnits += item.Quantity
		}
		for _, sale := range sales {
			if sale.UserID != u.Email {
				continue
			}
			r.SaleCount++
			r.Revenue += sale.Total
		}
		rollups = append(rollups, r)
	}
	return rollups
}

// StoresNeedingReplenishment counts retailer stores holding at least
// one low-stock item. This is all a distributor gets to see.
func StoresNeedingReplenishment(users []models.User, items []models.InventoryItem) int {
	low := make(map[string]bool)
	for _, item := range items {
		if item.Quantity <= LowStockThreshold {
			low[item.UserID] = true
		}
	}
	count := 0
	for _, u := range users {
		if u.Role == models.RoleRetailer && low[u.Email] {
			count++
		}
	}
	return count
}
