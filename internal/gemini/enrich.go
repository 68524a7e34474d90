package gemini

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"lumina-backend/internal/models"
)

// AnalyzeShoppableItems detects exactly 4 grounded shoppable products in a
// rendered variant. Enrichment is best-effort: failures return an empty list.
func (c *Client) AnalyzeShoppableItems(ctx context.Context, image, mask string, settings *models.GenerationSettings, instruction string) []models.ProductItem {
	parts := []*genai.Part{
		{Text: shoppingPrompt(settings, instruction)},
		imagePart(image),
	}

	resp, err := c.gen.GenerateContent(ctx, c.textModel, userContent(parts...), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   productSchema,
	})
	if err != nil {
		slog.Warn("shopping analysis failed", "error", err)
		return []models.ProductItem{}
	}

	var items []models.ProductItem
	if err := json.Unmarshal([]byte(resp.Text()), &items); err != nil {
		slog.Warn("shopping response is not valid JSON", "error", err)
		return []models.ProductItem{}
	}

	for _, item := range items {
		if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.Name) == "" ||
			strings.TrimSpace(item.Query) == "" || (item.Box != nil && !item.Box.Valid()) {
			slog.Warn("product response violates schema", "id", item.ID)
			return []models.ProductItem{}
		}
	}
	return items
}

// EstimateRenovationCost asks for a market-cost breakdown (fixed currency:
// INR) of the redesign. Failures return an empty list; unknown categories are
// normalized through the default arm.
func (c *Client) EstimateRenovationCost(ctx context.Context, image, mask string, roomType models.RoomType) []models.BudgetItem {
	parts := []*genai.Part{
		{Text: budgetPrompt(roomType)},
		imagePart(image),
	}

	resp, err := c.gen.GenerateContent(ctx, c.textModel, userContent(parts...), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   budgetSchema,
	})
	if err != nil {
		slog.Warn("cost estimation failed", "error", err)
		return []models.BudgetItem{}
	}

	var items []models.BudgetItem
	if err := json.Unmarshal([]byte(resp.Text()), &items); err != nil {
		slog.Warn("budget response is not valid JSON", "error", err)
		return []models.BudgetItem{}
	}

	for i, item := range items {
		if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.Item) == "" || !item.Valid() {
			slog.Warn("budget response violates schema", "id", item.ID)
			return []models.BudgetItem{}
		}
		items[i].Category = item.Category.Normalize()
	}
	return items
}
