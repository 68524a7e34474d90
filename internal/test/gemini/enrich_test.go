package gemini_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"lumina-backend/internal/models"
)

func TestAnalyzeShoppableItems_ParsesValidResponse(t *testing.T) {
	payload := `[
		{"id": "p1", "name": "Oak Sideboard", "query": "oak sideboard 1.8m", "category": "Storage",
		 "priceRange": "$400-$600", "box_2d": [100, 100, 400, 500],
		 "dimensions": {"length": "1.8m", "width": "0.4m", "height": "0.8m"}, "isSpaceOptimized": true},
		{"id": "p2", "name": "Linen Sofa", "query": "3 seat linen sofa", "category": "Seating"}
	]`
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(payload), nil
	}}
	client := newClient(gen)

	items := client.AnalyzeShoppableItems(context.Background(), sourceImage, "", nil, "brief")

	assert.Len(t, items, 2)
	assert.Equal(t, "Oak Sideboard", items[0].Name)
	assert.True(t, items[0].IsSpaceOptimized)
	assert.Equal(t, "1.8m", items[0].Dimensions.Length)
	assert.Nil(t, items[1].Box)
}

func TestAnalyzeShoppableItems_EmptyOnError(t *testing.T) {
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("unavailable")
	}}
	client := newClient(gen)

	items := client.AnalyzeShoppableItems(context.Background(), sourceImage, "", nil, "")

	assert.Empty(t, items)
	assert.NotNil(t, items)
}

func TestAnalyzeShoppableItems_EmptyOnSchemaViolation(t *testing.T) {
	// Missing query on the second item invalidates the whole list.
	payload := `[
		{"id": "p1", "name": "Oak Sideboard", "query": "oak sideboard", "category": "Storage"},
		{"id": "p2", "name": "Linen Sofa", "query": "", "category": "Seating"}
	]`
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(payload), nil
	}}
	client := newClient(gen)

	items := client.AnalyzeShoppableItems(context.Background(), sourceImage, "", nil, "")

	assert.Empty(t, items)
}

func TestAnalyzeShoppableItems_EmptyOnMalformedJSON(t *testing.T) {
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse("not json at all"), nil
	}}
	client := newClient(gen)

	assert.Empty(t, client.AnalyzeShoppableItems(context.Background(), sourceImage, "", nil, ""))
}

func TestEstimateRenovationCost_NormalizesCategories(t *testing.T) {
	payload := `[
		{"id": "b1", "item": "Engineered oak flooring", "costMin": 40000, "costMax": 65000, "category": "Material"},
		{"id": "b2", "item": "Installation crew", "costMin": 15000, "costMax": 25000, "category": "Contractors"}
	]`
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(payload), nil
	}}
	client := newClient(gen)

	items := client.EstimateRenovationCost(context.Background(), sourceImage, "", models.RoomLivingRoom)

	assert.Len(t, items, 2)
	assert.Equal(t, models.BudgetMaterial, items[0].Category)
	assert.Equal(t, models.BudgetOther, items[1].Category, "unknown categories normalize to Other")
}

func TestEstimateRenovationCost_EmptyOnInvertedCosts(t *testing.T) {
	payload := `[{"id": "b1", "item": "Flooring", "costMin": 65000, "costMax": 40000, "category": "Material"}]`
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(payload), nil
	}}
	client := newClient(gen)

	assert.Empty(t, client.EstimateRenovationCost(context.Background(), sourceImage, "", models.RoomLivingRoom))
}

func TestDetectRoomImprovements_ParsesValidResponse(t *testing.T) {
	payload := `[
		{"id": "s1", "text": "Add a floor lamp beside the sofa", "category": "lighting", "box_2d": [600, 100, 950, 300]},
		{"id": "s2", "text": "Swap the rug for a larger wool piece", "category": "decor"}
	]`
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(payload), nil
	}}
	client := newClient(gen)

	suggestions := client.DetectRoomImprovements(context.Background(), sourceImage, models.RoomLivingRoom)

	assert.Len(t, suggestions, 2)
	assert.Equal(t, models.SuggestionLighting, suggestions[0].Category)
}

func TestDetectRoomImprovements_EmptyOnInvalidCategory(t *testing.T) {
	payload := `[{"id": "s1", "text": "Repaint", "category": "painting"}]`
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(payload), nil
	}}
	client := newClient(gen)

	assert.Empty(t, client.DetectRoomImprovements(context.Background(), sourceImage, models.RoomLivingRoom))
}

func TestDetectRoomImprovements_EmptyOnInvalidBox(t *testing.T) {
	payload := `[{"id": "s1", "text": "Add plants", "category": "decor", "box_2d": [900, 100, 100, 300]}]`
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse(payload), nil
	}}
	client := newClient(gen)

	assert.Empty(t, client.DetectRoomImprovements(context.Background(), sourceImage, models.RoomLivingRoom))
}
