package ai

import (
	"context"
	"errors"
	"time"

	"kirana-tracker/internal/models"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Model choices mirror the original app: flash for cheap structured
// extraction and order drafting, pro for the forecast.
const (
	extractionModel = "gemini-2.5-flash"
	forecastModel   = "gemini-2.5-pro"
	replenishModel  = "gemini-2.5-flash"
)

// Gateway is the opaque boundary to the generative AI service. Every
// call is a single request/response; a failure is terminal for that
// request and the caller surfaces it, no automatic retry.
type Gateway struct {
	apiKey string
}

func NewGateway(apiKey string) *Gateway {
	return &Gateway{apiKey: apiKey}
}

// ExtractProductDetails sends a product photo and asks for the brand,
// MRP, expiry date and size as strict JSON.
func (g *Gateway) ExtractProductDetails(ctx context.Context, imageData []byte, mimeType string) (*models.ProductDetails, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return nil, err
	}
	defer client.Close()

	model := client.GenerativeModel(extractionModel)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"brand":      {Type: genai.TypeString, Description: "The brand name of the product."},
			"mrp":        {Type: genai.TypeNumber, Description: "The Maximum Retail Price (MRP) of the product."},
			"expiryDate": {Type: genai.TypeString, Description: "The expiry date in YYYY-MM-DD format."},
			"size":       {Type: genai.TypeString, Description: "The size or weight of the product (e.g., 50g, 500ml, 1kg)."},
		},
		Required: []string{"brand", "mrp", "expiryDate", "size"},
	}

	resp, err := model.GenerateContent(ctx,
		genai.Blob{MIMEType: mimeType, Data: imageData},
		genai.Text(extractionPrompt),
	)
	if err != nil {
		return nil, err
	}

	return ParseProductDetails([]byte(firstText(resp)))
}

// GenerateDemandForecast returns a plain-text demand forecast for the
// store. No structured schema; the caller renders it line by line.
func (g *Gateway) GenerateDemandForecast(ctx context.Context, inventory []models.InventoryItem, sales []models.Sale, freeText string) (string, error) {
	return g.generateText(ctx, forecastModel, BuildForecastPrompt(inventory, sales, freeText))
}

// GenerateReplenishmentOrder drafts a plain-text purchase order for
// the given low-stock items.
func (g *Gateway) GenerateReplenishmentOrder(ctx context.Context, items []models.InventoryItem, storeName string) (string, error) {
	return g.generateText(ctx, replenishModel, BuildReplenishmentPrompt(items, storeName, time.Now()))
}

func (g *Gateway) generateText(ctx context.Context, modelName, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
	if err != nil {
		return "", err
	}
	defer client.Close()

	resp, err := client.GenerativeModel(modelName).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	text := firstText(resp)
	if text == "" {
		return "", errors.New("empty response from model")
	}
	return text, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				return string(txt)
			}
		}
	}
	return ""
}
