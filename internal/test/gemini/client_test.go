package gemini_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"

	"lumina-backend/internal/gemini"
	"lumina-backend/internal/models"
)

// fakeGenerator scripts GenerateContent responses and records every request.
type fakeGenerator struct {
	respond func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
	calls   int
	models  []string
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	call := f.calls
	f.calls++
	f.models = append(f.models, model)
	return f.respond(call, model, contents, config)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func imageResponse(data []byte) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: "image/png", Data: data}},
			}},
		}},
	}
}

func newClient(gen gemini.ContentGenerator) *gemini.Client {
	return gemini.NewWithGenerator(gen, gemini.Options{MaxRetries: 1})
}

const sourceImage = "data:image/jpeg;base64,aGVsbG8="

func TestOrchestrateDesign_ReturnsSynthesizedInstruction(t *testing.T) {
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse("  A dense technical brief.  "), nil
	}}
	client := newClient(gen)

	instruction := client.OrchestrateDesign(context.Background(), models.DefaultSettings(), sourceImage, "")

	assert.Equal(t, "A dense technical brief.", instruction)
	assert.Equal(t, 1, gen.calls)
}

func TestOrchestrateDesign_FallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return nil, errors.New("quota exhausted")
	}}
	client := newClient(gen)

	settings := models.DefaultSettings()
	instruction := client.OrchestrateDesign(context.Background(), settings, sourceImage, "")

	assert.Equal(t, fmt.Sprintf("A %s %s with real-world furniture and premium finishes.", settings.Style, settings.RoomType), instruction)
}

func TestOrchestrateDesign_PartialDimensionsFallBackOnError(t *testing.T) {
	var prompt string
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		for _, content := range contents {
			for _, part := range content.Parts {
				if part.Text != "" {
					prompt = part.Text
				}
			}
		}
		return nil, errors.New("quota exhausted")
	}}
	client := newClient(gen)

	length := 3.5
	settings := models.DefaultSettings()
	settings.Dimensions = &models.Dimensions{Length: &length}
	instruction := client.OrchestrateDesign(context.Background(), settings, sourceImage, "")

	// Unset measurements render as N/A in the outbound request.
	assert.Contains(t, prompt, "Length: 3.5m, Width: N/Am, Height: N/Am")
	assert.Equal(t, fmt.Sprintf("A %s %s with real-world furniture and premium finishes.", settings.Style, settings.RoomType), instruction)
}

func TestOrchestrateDesign_FallsBackOnEmptyText(t *testing.T) {
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse("   "), nil
	}}
	client := newClient(gen)

	instruction := client.OrchestrateDesign(context.Background(), models.DefaultSettings(), sourceImage, "")

	assert.Contains(t, instruction, "real-world furniture")
}

func TestGenerateRoomImage_ReturnsDataURI(t *testing.T) {
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return imageResponse([]byte("pixels")), nil
	}}
	client := newClient(gen)

	rendered, err := client.GenerateRoomImage(context.Background(), sourceImage, "instruction", "")

	assert.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,cGl4ZWxz", rendered)
}

func TestGenerateRoomImage_ErrorsWhenNoImagePayload(t *testing.T) {
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		return textResponse("sorry, text only"), nil
	}}
	client := newClient(gen)

	_, err := client.GenerateRoomImage(context.Background(), sourceImage, "instruction", "")

	assert.Error(t, err)
}

func TestGenerateRoomImage_RetriesUpToLimit(t *testing.T) {
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		if call == 0 {
			return nil, errors.New("transient")
		}
		return imageResponse([]byte("pixels")), nil
	}}
	client := gemini.NewWithGenerator(gen, gemini.Options{MaxRetries: 2})

	rendered, err := client.GenerateRoomImage(context.Background(), sourceImage, "instruction", "")

	assert.NoError(t, err)
	assert.NotEmpty(t, rendered)
	assert.Equal(t, 2, gen.calls)
}

func TestGenerateRoomImage_ForwardsMaskDirective(t *testing.T) {
	var sawMaskDirective bool
	gen := &fakeGenerator{respond: func(call int, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
		for _, content := range contents {
			for _, part := range content.Parts {
				if part.Text != "" && part.InlineData == nil {
					if len(part.Text) > 0 && part.Text[0] == 'C' { // CRITICAL: ...
						sawMaskDirective = true
					}
				}
			}
		}
		return imageResponse([]byte("pixels")), nil
	}}
	client := newClient(gen)

	_, err := client.GenerateRoomImage(context.Background(), sourceImage, "instruction", sourceImage)

	assert.NoError(t, err)
	assert.True(t, sawMaskDirective, "mask requests must carry the confinement directive")
}
