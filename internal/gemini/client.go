package gemini

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"

	"lumina-backend/internal/vision"
)

const (
	// DefaultTextModel handles instruction synthesis, detection and
	// estimation calls (text or JSON responses).
	DefaultTextModel = "gemini-3-flash-preview"
	// DefaultImageModel handles image synthesis and depth rendering.
	DefaultImageModel = "gemini-2.5-flash-image"
)

// ContentGenerator is the single call the client needs from the generative
// service. Tests inject fakes; production wraps *genai.Client.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type sdkGenerator struct {
	client *genai.Client
}

func (g sdkGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.Models.GenerateContent(ctx, model, contents, config)
}

type Options struct {
	TextModel  string
	ImageModel string
	// MaxRetries applies to essential-path calls only (image synthesis,
	// depth render). 1 means a single attempt.
	MaxRetries int
}

func (o Options) withDefaults() Options {
	if o.TextModel == "" {
		o.TextModel = DefaultTextModel
	}
	if o.ImageModel == "" {
		o.ImageModel = DefaultImageModel
	}
	if o.MaxRetries < 1 {
		o.MaxRetries = 1
	}
	return o
}

// Client wraps the multimodal generative service. Every operation is a
// stateless request/response exchange; raster inputs pass through the vision
// preprocessor before leaving the process.
type Client struct {
	gen        ContentGenerator
	textModel  string
	imageModel string
	maxRetries int
}

func NewClient(ctx context.Context, apiKey string, opts Options) (*Client, error) {
	genClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return NewWithGenerator(sdkGenerator{client: genClient}, opts), nil
}

// NewWithGenerator builds a client over an explicit generator. Used by tests.
func NewWithGenerator(gen ContentGenerator, opts Options) *Client {
	opts = opts.withDefaults()
	return &Client{
		gen:        gen,
		textModel:  opts.TextModel,
		imageModel: opts.ImageModel,
		maxRetries: opts.MaxRetries,
	}
}

// userContent wraps parts into a single-turn user message.
func userContent(parts ...*genai.Part) []*genai.Content {
	return []*genai.Content{{Role: "user", Parts: parts}}
}

// imagePart converts a data URI into an inline payload, downscaling through
// the preprocessor first.
func imagePart(dataURI string) *genai.Part {
	return rawImagePart(vision.Optimize(dataURI))
}

// rawImagePart converts a data URI as-is. Masks use this in image synthesis:
// re-sampling would soften the region edges the service must honor.
func rawImagePart(dataURI string) *genai.Part {
	mime, data, err := vision.DecodeDataURI(dataURI)
	if err != nil {
		// Degenerate input; send an empty jpeg payload rather than fail
		// here, the service reports unusable parts in its own error.
		return &genai.Part{InlineData: &genai.Blob{MIMEType: "image/jpeg", Data: nil}}
	}
	return &genai.Part{InlineData: &genai.Blob{MIMEType: mime, Data: data}}
}

// firstInlineImage extracts the first inline image payload from a response as
// a data URI, or an error when the response carries none.
func firstInlineImage(resp *genai.GenerateContentResponse) (string, error) {
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mime := part.InlineData.MIMEType
				if mime == "" {
					mime = "image/png"
				}
				return vision.EncodeDataURI(mime, part.InlineData.Data), nil
			}
		}
	}
	return "", fmt.Errorf("response contains no image payload")
}

var retryBackoffs = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// retryWithBackoff retries fn with exponential backoff, honoring context
// cancellation between attempts.
func (c *Client) retryWithBackoff(ctx context.Context, fn func() error) error {
	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
		}

		if i >= c.maxRetries-1 {
			break
		}
		backoff := retryBackoffs[len(retryBackoffs)-1]
		if i < len(retryBackoffs) {
			backoff = retryBackoffs[i]
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}
	return fmt.Errorf("failed after %d attempts: %w", c.maxRetries, lastErr)
}
