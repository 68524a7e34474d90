package gemini

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"lumina-backend/internal/models"
)

// DetectRoomImprovements asks for 3-4 buildable, grounded suggestions for the
// given room photo. Suggestions are advisory: any failure (network, parse,
// schema) yields an empty list so the main flow is never blocked.
func (c *Client) DetectRoomImprovements(ctx context.Context, image string, roomType models.RoomType) []models.DesignSuggestion {
	parts := []*genai.Part{
		{Text: suggestionPrompt(roomType)},
		imagePart(image),
	}

	resp, err := c.gen.GenerateContent(ctx, c.textModel, userContent(parts...), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   suggestionSchema,
	})
	if err != nil {
		slog.Warn("suggestion detection failed", "error", err)
		return []models.DesignSuggestion{}
	}

	var suggestions []models.DesignSuggestion
	if err := json.Unmarshal([]byte(resp.Text()), &suggestions); err != nil {
		slog.Warn("suggestion response is not valid JSON", "error", err)
		return []models.DesignSuggestion{}
	}

	for _, s := range suggestions {
		if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.Text) == "" ||
			!s.Category.Valid() || (s.Box != nil && !s.Box.Valid()) {
			slog.Warn("suggestion response violates schema", "id", s.ID)
			return []models.DesignSuggestion{}
		}
	}
	return suggestions
}
