package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"lumina-backend/internal/models"
)

// GenerateDepthMap requests a grayscale depth render of a variant for 3D
// reconstruction. Unlike enrichment, failure here must surface: the caller
// reports it as a scoped user-visible error.
func (c *Client) GenerateDepthMap(ctx context.Context, image string) (string, error) {
	parts := []*genai.Part{
		{Text: depthPrompt},
		imagePart(image),
	}

	var rendered string
	err := c.retryWithBackoff(ctx, func() error {
		resp, err := c.gen.GenerateContent(ctx, c.imageModel, userContent(parts...), nil)
		if err != nil {
			return fmt.Errorf("depth map request failed: %w", err)
		}
		rendered, err = firstInlineImage(resp)
		return err
	})
	if err != nil {
		return "", err
	}
	return rendered, nil
}

// EstimateRealWorldDistance returns a textual distance estimate between two
// normalized image points. It never fails: errors become the sentinel label
// so the measurement tool stays usable.
func (c *Client) EstimateRealWorldDistance(ctx context.Context, image string, start, end models.MeasurementPoint) string {
	parts := []*genai.Part{
		{Text: distancePrompt(start, end)},
		imagePart(image),
	}

	resp, err := c.gen.GenerateContent(ctx, c.textModel, userContent(parts...), nil)
	if err != nil {
		slog.Warn("distance estimation failed", "error", err)
		return models.MeasurementError
	}

	label := strings.TrimSpace(resp.Text())
	if label == "" {
		return "---"
	}
	return label
}
