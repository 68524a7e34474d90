package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"lumina-backend/internal/models"
)

// State names one stage of a generation attempt.
type State string

const (
	StateIdle                    State = "idle"
	StateSynthesizingInstruction State = "synthesizing_instruction"
	StateRenderingVariant        State = "rendering_variant"
	StateEnrichingBatch          State = "enriching_batch"
	StateComplete                State = "complete"
	StateErrorStop               State = "error"
)

// Generative is the slice of the generative client the pipeline consumes.
type Generative interface {
	OrchestrateDesign(ctx context.Context, settings models.GenerationSettings, image, mask string) string
	GenerateRoomImage(ctx context.Context, image, instruction, mask string) (string, error)
	AnalyzeShoppableItems(ctx context.Context, image, mask string, settings *models.GenerationSettings, instruction string) []models.ProductItem
	EstimateRenovationCost(ctx context.Context, image, mask string, roomType models.RoomType) []models.BudgetItem
}

// AssetStore persists generated images durably. Optional; uploads are
// best-effort and never gate the attempt.
type AssetStore interface {
	StoreAsset(ctx context.Context, userID, name string, dataURI string) (string, error)
}

// Input is everything one attempt needs, snapshotted at start. The mask is
// captured by the caller before Run; an empty mask means no region
// restriction.
type Input struct {
	UserID      string
	SourceImage string
	Mask        string
	Settings    models.GenerationSettings
}

// Hooks let the session observe stage boundaries. Progress percentages are
// advisory but monotonic, reaching 100 only on success. BatchReady fires once,
// after the last variant renders and before enrichment begins, so already
// rendered images survive any enrichment trouble.
type Hooks struct {
	Progress   func(state State, pct int, note string)
	BatchReady func(batch []models.GenerationResult)
}

func (h Hooks) progress(state State, pct int, note string) {
	if h.Progress != nil {
		h.Progress(state, pct, note)
	}
}

// Outcome is the assembled result of a successful attempt.
type Outcome struct {
	Instruction string
	Batch       []models.GenerationResult
	Enrichment  map[string]models.Enrichment
}

// Pipeline sequences one generation attempt: instruction synthesis, three
// sequential variant renders, then concurrent per-variant enrichment.
type Pipeline struct {
	gen    Generative
	assets AssetStore
}

func New(gen Generative) *Pipeline {
	return &Pipeline{gen: gen}
}

// WithAssets enables durable storage of rendered variants.
func (p *Pipeline) WithAssets(assets AssetStore) *Pipeline {
	p.assets = assets
	return p
}

// Run executes one attempt. An error from instruction rendering is impossible
// (the client falls back to a template); an error from any variant render
// aborts the whole attempt and no batch is delivered. Enrichment failures are
// absorbed at the client layer and arrive here as empty lists.
func (p *Pipeline) Run(ctx context.Context, in Input, hooks Hooks) (*Outcome, error) {
	note := "Designing Structural Matrix..."
	if in.Settings.Dimensions.Any() {
		note = "Architecting 1:1 Metric Layout..."
	}
	hooks.progress(StateSynthesizingInstruction, 10, note)

	hooks.progress(StateSynthesizingInstruction, 20, "Analyzing Spatial Constraints...")
	base := p.gen.OrchestrateDesign(ctx, in.Settings, in.SourceImage, in.Mask)

	hooks.progress(StateRenderingVariant, 35, "Generating Design Batches...")

	settings := in.Settings.Snapshot()
	batch := make([]models.GenerationResult, 0, models.BatchSize)
	for i, profile := range layoutProfiles {
		hooks.progress(StateRenderingVariant, 35+i*15, fmt.Sprintf("Rendering Layout 0%d: %s...", i+1, profile.Name))

		instruction := composeInstruction(base, profile)
		image, err := p.gen.GenerateRoomImage(ctx, in.SourceImage, instruction, in.Mask)
		if err != nil {
			return nil, fmt.Errorf("failed to render layout %q: %w", profile.Name, err)
		}

		batch = append(batch, models.GenerationResult{
			ID:          uuid.NewString(),
			ImageURL:    image,
			PromptUsed:  instruction,
			Timestamp:   time.Now().UnixMilli(),
			SourceImage: in.SourceImage,
			Settings:    settings,
		})
		hooks.progress(StateRenderingVariant, 35+(i+1)*15, "")
	}

	p.storeBatchAssets(ctx, in.UserID, batch)

	if hooks.BatchReady != nil {
		hooks.BatchReady(batch)
	}

	hooks.progress(StateEnrichingBatch, 90, "Grounding Product Assets...")
	enrichment := p.enrichBatch(ctx, in, base, batch)

	hooks.progress(StateComplete, 100, "")
	return &Outcome{Instruction: base, Batch: batch, Enrichment: enrichment}, nil
}

// enrichBatch fans out one task per result, each issuing its shopping and
// budget calls concurrently, and fans the lot back into a map keyed by result
// identity. Failures were already normalized to empty lists downstream, so
// the group never returns an error.
func (p *Pipeline) enrichBatch(ctx context.Context, in Input, instruction string, batch []models.GenerationResult) map[string]models.Enrichment {
	var mu sync.Mutex
	enrichment := make(map[string]models.Enrichment, len(batch))

	g, gctx := errgroup.WithContext(ctx)
	for _, result := range batch {
		g.Go(func() error {
			var shopping []models.ProductItem
			var budget []models.BudgetItem

			pair, pctx := errgroup.WithContext(gctx)
			pair.Go(func() error {
				shopping = p.gen.AnalyzeShoppableItems(pctx, result.ImageURL, in.Mask, &in.Settings, instruction)
				return nil
			})
			pair.Go(func() error {
				budget = p.gen.EstimateRenovationCost(pctx, result.ImageURL, in.Mask, in.Settings.RoomType)
				return nil
			})
			_ = pair.Wait()

			mu.Lock()
			enrichment[result.ID] = models.Enrichment{Shopping: shopping, Budget: budget}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	return enrichment
}

// storeBatchAssets uploads rendered variants when asset storage is
// configured. Best-effort: a failed upload leaves AssetURL empty.
func (p *Pipeline) storeBatchAssets(ctx context.Context, userID string, batch []models.GenerationResult) {
	if p.assets == nil {
		return
	}
	for i := range batch {
		name := fmt.Sprintf("variant_%s.png", batch[i].ID)
		url, err := p.assets.StoreAsset(ctx, userID, name, batch[i].ImageURL)
		if err != nil {
			slog.Warn("failed to store variant asset", "result_id", batch[i].ID, "error", err)
			continue
		}
		batch[i].AssetURL = url
	}
}
