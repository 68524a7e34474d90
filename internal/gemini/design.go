package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"lumina-backend/internal/models"
)

// OrchestrateDesign synthesizes the single dense instruction paragraph shared
// by all variants of a generation attempt. On failure it falls back to a
// deterministic templated instruction so the pipeline always has something to
// proceed with.
func (c *Client) OrchestrateDesign(ctx context.Context, settings models.GenerationSettings, image, mask string) string {
	parts := []*genai.Part{
		{Text: orchestrationPrompt(settings)},
		imagePart(image),
	}
	if mask != "" {
		parts = append(parts, imagePart(mask))
	}

	resp, err := c.gen.GenerateContent(ctx, c.textModel, userContent(parts...), nil)
	if err != nil {
		slog.Warn("instruction synthesis failed, using templated fallback", "error", err)
		return fallbackInstruction(settings)
	}

	instruction := strings.TrimSpace(resp.Text())
	if instruction == "" {
		slog.Warn("instruction synthesis returned empty text, using templated fallback")
		return fallbackInstruction(settings)
	}
	return instruction
}

// GenerateRoomImage requests one rendered variant. This is the one call whose
// failure is fatal to the batch: an error is returned when the service yields
// no image payload. The mask, when present, is forwarded un-resampled so the
// confinement region stays pixel-aligned.
func (c *Client) GenerateRoomImage(ctx context.Context, image, instruction, mask string) (string, error) {
	parts := []*genai.Part{
		imagePart(image),
		{Text: renderPrompt(instruction)},
	}
	if mask != "" {
		parts = append(parts, rawImagePart(mask))
		parts = append(parts, &genai.Part{Text: maskDirective})
	}

	var rendered string
	err := c.retryWithBackoff(ctx, func() error {
		resp, err := c.gen.GenerateContent(ctx, c.imageModel, userContent(parts...), nil)
		if err != nil {
			return fmt.Errorf("image synthesis request failed: %w", err)
		}
		rendered, err = firstInlineImage(resp)
		return err
	})
	if err != nil {
		return "", err
	}
	return rendered, nil
}
