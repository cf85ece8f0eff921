package ai

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"kirana-tracker/internal/models"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// rupees renders an amount with Indian digit grouping (1,00,000).
var rupees = message.NewPrinter(language.MustParse("en-IN"))

func formatRupees(amount float64) string {
	return rupees.Sprintf("₹%v", number.Decimal(amount, number.MaxFractionDigits(2)))
}

// BuildForecastPrompt shapes the demand-forecast request. Only the
// three most recent sales go in to keep the prompt small.
func BuildForecastPrompt(inventory []models.InventoryItem, sales []models.Sale, context string) string {
	var b strings.Builder
	b.WriteString("As a retail demand forecasting expert for a small Kirana store in India, analyze the following data to predict demand for the next 7-10 days.\n\n")

	b.WriteString("Current Inventory:\n")
	for _, item := range inventory {
		fmt.Fprintf(&b, "- %s (%s): %d units, MRP: %s\n", item.Brand, item.Size, item.Quantity, formatRupees(item.MRP))
	}

	b.WriteString("\nRecent Sales (last 3 transactions):\n")
	recent := sales
	if len(recent) > 3 {
		recent = recent[:3]
	}
	for _, sale := range recent {
		var lines []string
		for _, li := range sale.Items {
			lines = append(lines, fmt.Sprintf("%s (x%d)", li.Brand, li.Quantity))
		}
		fmt.Fprintf(&b, "- Date: %s, Total: %s, Items: %s\n",
			sale.Date.Format("02/01/2006"), formatRupees(sale.Total), strings.Join(lines, ", "))
	}

	fmt.Fprintf(&b, "\nAdditional Context: %s\n\n", context)
	b.WriteString("Provide a concise forecast. Identify 3-5 products likely to see high demand and suggest reorder quantities. Mention any potential risks or opportunities. Structure your output clearly.")
	return b.String()
}

// BuildReplenishmentPrompt shapes the purchase-order request for the
// store's low-stock items.
func BuildReplenishmentPrompt(items []models.InventoryItem, storeName string, now time.Time) string {
	if storeName == "" {
		storeName = "Apna Kirana"
	}
	var b strings.Builder
	b.WriteString("Generate a professional purchase order request for a Kirana store to send to its distributor.\n")
	b.WriteString("The following items are running low on stock and need to be replenished. Suggest a reasonable reorder quantity for each.\n\n")

	b.WriteString("Items to Reorder:\n")
	for _, item := range items {
		fmt.Fprintf(&b, "- Brand: %s, Size: %s, Current Stock: %d\n", item.Brand, item.Size, item.Quantity)
	}

	b.WriteString("\nFormat the output as a simple but clear purchase order, including item name, size, and suggested quantity.\n")
	fmt.Fprintf(&b, "Start with a subject line like \"Purchase Order - %s - %s\".", storeName, now.Format("2 January 2006"))
	return b.String()
}

const extractionPrompt = "Analyze this image of a product. Extract the brand name, MRP (Maximum Retail Price as a number), expiry date in YYYY-MM-DD format, and size/weight. Provide a JSON response."

// ParseProductDetails decodes the extraction response. The model is
// asked for bare JSON, but fenced output still shows up occasionally.
func ParseProductDetails(raw []byte) (*models.ProductDetails, error) {
	text := strings.TrimSpace(string(raw))
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	var details models.ProductDetails
	if err := json.Unmarshal([]byte(text), &details); err != nil {
		return nil, fmt.Errorf("malformed extraction response: %w", err)
	}
	if details.Brand == "" || details.Size == "" || details.ExpiryDate == "" {
		return nil, errors.New("extraction response missing required fields")
	}
	return &details, nil
}
