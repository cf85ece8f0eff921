package database

import (
	"time"

	"kirana-tracker/internal/models"
)

// SalesSummary is the per-store revenue snapshot fed into the
// forecast prompt.
type SalesSummary struct {
	TotalRevenue float64
	TotalCount   int64
}

// GetSalesSummary calculates one store's revenue and transaction
// count within a date range.
func GetSalesSummary(userID string, start, end time.Time) (*SalesSummary, error) {
	var result SalesSummary

	// COALESCE ensures we get 0 instead of NULL if no sales exist
	err := DB.Model(&models.Sale{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Select("COALESCE(SUM(total), 0)").
		Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.Sale{}).
		Where("user_id = ? AND date BETWEEN ? AND ?", userID, start, end).
		Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
