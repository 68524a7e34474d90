package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"lumina-backend/internal/models"
	"lumina-backend/internal/pipeline"
	"lumina-backend/internal/store"
	"lumina-backend/internal/supabase"
)

var (
	ErrNoSource     = errors.New("no source image set")
	ErrNoResult     = errors.New("no active result")
	ErrNotInHistory = errors.New("result not found in history")
	ErrBadIndex     = errors.New("layout index out of range")
)

// Generative is the full generative surface a session needs: the pipeline
// slice plus the independently triggered operations.
type Generative interface {
	pipeline.Generative
	DetectRoomImprovements(ctx context.Context, image string, roomType models.RoomType) []models.DesignSuggestion
	GenerateDepthMap(ctx context.Context, image string) (string, error)
	EstimateRealWorldDistance(ctx context.Context, image string, start, end models.MeasurementPoint) string
}

// Publisher pushes advisory session events (progress, completion) to the
// client transport. Nil-safe from the session's point of view.
type Publisher interface {
	PublishSessionEvent(userID uuid.UUID, event string, payload map[string]interface{}) error
}

// Session is the authoritative in-memory view of one user's studio state.
// All mutation happens under the session mutex; batch and enrichment are
// replaced whole, never mutated in place, so readers always see a coherent
// view.
type Session struct {
	mu sync.Mutex

	userID uuid.UUID
	repo   store.Repository
	gen    Generative
	pipe   *pipeline.Pipeline
	events Publisher
	assets pipeline.AssetStore

	state        pipeline.State
	progress     int
	stageNote    string
	errorMessage string

	sourceImage string
	mask        string
	settings    models.GenerationSettings

	activeIndex int
	batch       []models.GenerationResult
	enrichment  map[string]models.Enrichment

	suggestions  []models.DesignSuggestion
	measurements []models.ManualMeasurement

	history       []models.GenerationResult
	budgetHistory []models.BudgetHistoryEntry

	// epoch guards against a stale attempt clobbering a newer one: each
	// attempt captures the epoch at start and discards its results if the
	// session has moved on.
	epoch uint64

	depthFlight singleflight.Group
}

// View assembles the read-only session snapshot served to clients.
func (s *Session) View() models.SessionResponse {
	s.mu.Lock()
	defer s.mu.Unlock()

	batch := make([]models.GenerationResult, len(s.batch))
	copy(batch, s.batch)

	enrichment := make(map[string]models.Enrichment, len(s.enrichment))
	for id, e := range s.enrichment {
		enrichment[id] = e
	}

	suggestions := make([]models.DesignSuggestion, len(s.suggestions))
	copy(suggestions, s.suggestions)

	measurements := make([]models.ManualMeasurement, len(s.measurements))
	copy(measurements, s.measurements)

	return models.SessionResponse{
		State:        string(s.state),
		Progress:     s.progress,
		StageNote:    s.stageNote,
		ErrorMessage: s.errorMessage,
		HasSource:    s.sourceImage != "",
		HasMask:      s.mask != "",
		ActiveIndex:  s.activeIndex,
		Batch:        batch,
		Enrichment:   enrichment,
		Settings:     s.settings.Snapshot(),
		Suggestions:  suggestions,
		Measurements: measurements,
	}
}

// History returns a copy of the in-memory history, most recent first.
func (s *Session) History() []models.GenerationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	history := make([]models.GenerationResult, len(s.history))
	copy(history, s.history)
	return history
}

// SetSource replaces the source image and resets everything derived from the
// previous one.
func (s *Session) SetSource(image string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sourceImage = image
	s.mask = ""
	s.batch = nil
	s.enrichment = map[string]models.Enrichment{}
	s.activeIndex = 0
	s.suggestions = nil
	s.measurements = nil
	s.state = pipeline.StateIdle
	s.progress = 0
	s.stageNote = ""
	s.errorMessage = ""
}

func (s *Session) UpdateSettings(settings models.GenerationSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings.Snapshot()
	return nil
}

func (s *Session) Settings() models.GenerationSettings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings.Snapshot()
}

// SetMask records the painted occlusion mask; empty clears it.
func (s *Session) SetMask(mask string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mask = mask
}

// StartGeneration launches a new pipeline attempt and returns its epoch.
// The working batch is cleared here, at attempt start, so a failed attempt
// never destroys a previously displayed batch mid-flight but a new attempt
// always begins from a clean slate.
func (s *Session) StartGeneration() (uint64, error) {
	s.mu.Lock()

	if s.sourceImage == "" {
		s.mu.Unlock()
		return 0, ErrNoSource
	}

	s.epoch++
	epoch := s.epoch

	input := pipeline.Input{
		UserID:      s.userID.String(),
		SourceImage: s.sourceImage,
		Mask:        s.mask,
		Settings:    s.settings.Snapshot(),
	}

	s.batch = nil
	s.enrichment = map[string]models.Enrichment{}
	s.activeIndex = 0
	s.progress = 0
	s.stageNote = ""
	s.errorMessage = ""
	s.state = pipeline.StateSynthesizingInstruction
	s.mu.Unlock()

	go s.runAttempt(epoch, input)

	return epoch, nil
}

func (s *Session) runAttempt(epoch uint64, input pipeline.Input) {
	ctx := context.Background()

	outcome, err := s.pipe.Run(ctx, input, pipeline.Hooks{
		Progress: func(state pipeline.State, pct int, note string) {
			s.onProgress(epoch, state, pct, note)
		},
		BatchReady: func(batch []models.GenerationResult) {
			s.onBatchReady(ctx, epoch, batch)
		},
	})
	s.onComplete(ctx, epoch, outcome, err)
}

func (s *Session) onProgress(epoch uint64, state pipeline.State, pct int, note string) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}
	s.state = state
	if pct > s.progress {
		s.progress = pct
	}
	if note != "" {
		s.stageNote = note
	}
	progress := s.progress
	s.mu.Unlock()

	s.publish("generation_progress", supabase.GenerationProgressPayload(string(state), progress, note))
}

// onBatchReady atomically swaps in the rendered batch and prepends it to
// history before enrichment begins. History grows unbounded; pruning is a
// client concern.
func (s *Session) onBatchReady(ctx context.Context, epoch uint64, batch []models.GenerationResult) {
	s.mu.Lock()
	if epoch != s.epoch {
		s.mu.Unlock()
		return
	}

	s.batch = batch
	s.activeIndex = 0
	s.history = append(append([]models.GenerationResult{}, batch...), s.history...)
	history := make([]models.GenerationResult, len(s.history))
	copy(history, s.history)
	s.mu.Unlock()

	if err := s.repo.PutHistory(ctx, s.userID, history); err != nil {
		slog.Warn("failed to persist history", "user_id", s.userID, "error", err)
	}
}

func (s *Session) onComplete(ctx context.Context, epoch uint64, outcome *pipeline.Outcome, err error) {
	s.mu.Lock()
	if epoch != s.epoch {
		// A newer attempt superseded this one; discard its results.
		s.mu.Unlock()
		slog.Info("discarding superseded generation attempt", "user_id", s.userID, "epoch", epoch)
		return
	}

	if err != nil {
		s.state = pipeline.StateErrorStop
		s.progress = 0
		s.stageNote = ""
		s.errorMessage = humanMessage(err)
		s.mu.Unlock()

		s.publish("generation_failed", supabase.GenerationFailedPayload(humanMessage(err)))
		return
	}

	s.enrichment = outcome.Enrichment
	s.state = pipeline.StateComplete
	s.errorMessage = ""

	entries := append([]models.BudgetHistoryEntry{}, s.budgetHistory...)
	for _, result := range outcome.Batch {
		if e, ok := outcome.Enrichment[result.ID]; ok && len(e.Budget) > 0 {
			entries = append([]models.BudgetHistoryEntry{{ResultID: result.ID, Items: e.Budget}}, entries...)
		}
	}
	s.budgetHistory = entries
	budgetHistory := make([]models.BudgetHistoryEntry, len(entries))
	copy(budgetHistory, entries)
	s.mu.Unlock()

	if err := s.repo.PutBudgetHistory(ctx, s.userID, budgetHistory); err != nil {
		slog.Warn("failed to persist budget history", "user_id", s.userID, "error", err)
	}

	s.publish("generation_complete", supabase.GenerationCompletePayload(len(outcome.Batch), outcome.Instruction))
}

func humanMessage(err error) string {
	if err == nil || strings.TrimSpace(err.Error()) == "" {
		return "An error occurred during matrix generation."
	}
	return err.Error()
}

// SelectLayout switches the active variant. Enrichment is addressed by
// result identity and already populated, so this never refetches anything.
func (s *Session) SelectLayout(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.batch) {
		return ErrBadIndex
	}
	s.activeIndex = index
	return nil
}

func (s *Session) activeResultLocked() (models.GenerationResult, bool) {
	if s.activeIndex < 0 || s.activeIndex >= len(s.batch) {
		return models.GenerationResult{}, false
	}
	return s.batch[s.activeIndex], true
}

// RestoreHistory replaces the active batch with a singleton containing the
// stored result, restoring its settings snapshot exactly as stored.
func (s *Session) RestoreHistory(resultID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.history {
		if item.ID == resultID {
			s.batch = []models.GenerationResult{item}
			s.activeIndex = 0
			s.sourceImage = item.SourceImage
			s.settings = item.Settings.Snapshot()
			s.state = pipeline.StateComplete
			s.progress = 0
			s.stageNote = ""
			s.errorMessage = ""
			return nil
		}
	}
	return ErrNotInHistory
}

// ChainDesign promotes the currently viewed result's image to be the new
// source image for iterative re-editing.
func (s *Session) ChainDesign() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.activeResultLocked()
	if !ok {
		return ErrNoResult
	}

	s.sourceImage = result.ImageURL
	s.mask = ""
	s.batch = nil
	s.enrichment = map[string]models.Enrichment{}
	s.activeIndex = 0
	s.suggestions = nil
	s.settings.Prompt = ""
	s.state = pipeline.StateIdle
	s.progress = 0
	s.stageNote = ""
	s.errorMessage = ""
	return nil
}

// SaveProject serializes the current result, its enrichment, the settings
// and the full history into a durable Project record.
func (s *Session) SaveProject(ctx context.Context, name string) (*models.Project, error) {
	s.mu.Lock()
	result, ok := s.activeResultLocked()
	if !ok || s.sourceImage == "" {
		s.mu.Unlock()
		return nil, ErrNoResult
	}

	if name == "" {
		name = fmt.Sprintf("%s Layout Study", s.settings.Style)
	}

	enrichment := s.enrichment[result.ID]
	history := make([]models.GenerationResult, len(s.history))
	copy(history, s.history)

	project := &models.Project{
		ID:            result.ID,
		Name:          name,
		UserID:        s.userID.String(),
		UpdatedAt:     result.Timestamp,
		SourceImage:   s.sourceImage,
		Settings:      s.settings.Snapshot(),
		Result:        &result,
		History:       history,
		ShoppingItems: enrichment.Shopping,
		BudgetItems:   enrichment.Budget,
	}
	s.mu.Unlock()

	if err := s.repo.SaveProject(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to save project: %w", err)
	}

	s.publish("project_saved", supabase.ProjectSavedPayload(project.ID))
	return project, nil
}

// RefreshSuggestions recomputes the advisory suggestion list for the current
// source image. Best-effort by contract: an unreachable service simply
// yields an empty list.
func (s *Session) RefreshSuggestions(ctx context.Context) ([]models.DesignSuggestion, error) {
	s.mu.Lock()
	source := s.sourceImage
	roomType := s.settings.RoomType
	s.mu.Unlock()

	if source == "" {
		return nil, ErrNoSource
	}

	suggestions := s.gen.DetectRoomImprovements(ctx, source, roomType)

	s.mu.Lock()
	s.suggestions = suggestions
	s.mu.Unlock()
	return suggestions, nil
}

// ApplySuggestion appends the suggestion text to the live prompt, mirroring
// the editor's one-click apply.
func (s *Session) ApplySuggestion(suggestion models.DesignSuggestion) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := strings.TrimSpace(s.settings.Prompt)
	if current == "" {
		s.settings.Prompt = suggestion.Text
		return
	}
	s.settings.Prompt = current + " " + suggestion.Text
}

// GenerateDepth fetches the depth map for one result of the active batch,
// on demand and cached thereafter. Concurrent requests for the same result
// collapse into a single upstream call. Failure is scoped: the batch is left
// untouched apart from the still-unset depth field.
func (s *Session) GenerateDepth(ctx context.Context, resultID string) (string, error) {
	s.mu.Lock()
	var image string
	found := false
	for _, result := range s.batch {
		if result.ID == resultID {
			if result.DepthMapURL != "" {
				s.mu.Unlock()
				return result.DepthMapURL, nil
			}
			image = result.ImageURL
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return "", ErrNoResult
	}

	depth, err, _ := s.depthFlight.Do(resultID, func() (interface{}, error) {
		rendered, err := s.gen.GenerateDepthMap(ctx, image)
		if err != nil {
			return nil, err
		}
		if s.assets != nil {
			if url, err := s.assets.StoreAsset(ctx, s.userID.String(), fmt.Sprintf("depth_%s.png", resultID), rendered); err != nil {
				slog.Warn("failed to store depth asset", "result_id", resultID, "error", err)
			} else {
				slog.Debug("stored depth asset", "result_id", resultID, "url", url)
			}
		}
		return rendered, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate 3D view: %w", err)
	}

	depthURL := depth.(string)

	s.mu.Lock()
	for i := range s.batch {
		if s.batch[i].ID == resultID {
			s.batch[i].DepthMapURL = depthURL
			break
		}
	}
	s.mu.Unlock()

	return depthURL, nil
}

// AddMeasurement records a ruler line with a pending label and resolves the
// distance estimate asynchronously.
func (s *Session) AddMeasurement(start, end models.MeasurementPoint) (models.ManualMeasurement, error) {
	measurement := models.ManualMeasurement{
		ID:            uuid.NewString(),
		Start:         start,
		End:           end,
		DistanceLabel: models.MeasurementPending,
	}
	if err := measurement.Validate(); err != nil {
		return models.ManualMeasurement{}, err
	}

	s.mu.Lock()
	image := s.sourceImage
	if result, ok := s.activeResultLocked(); ok {
		image = result.ImageURL
	}
	if image == "" {
		s.mu.Unlock()
		return models.ManualMeasurement{}, ErrNoSource
	}
	s.measurements = append(s.measurements, measurement)
	s.mu.Unlock()

	go func() {
		label := s.gen.EstimateRealWorldDistance(context.Background(), image, start, end)
		s.mu.Lock()
		for i := range s.measurements {
			if s.measurements[i].ID == measurement.ID {
				s.measurements[i].DistanceLabel = label
				break
			}
		}
		s.mu.Unlock()
	}()

	return measurement, nil
}

// ApplyPreset bulk-replaces the preset-covered settings fields, leaving
// unrelated fields (structure preservation, auto-suggest) untouched.
func (s *Session) ApplyPreset(preset models.SavedPreset) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.RoomType = preset.RoomType.Normalize()
	s.settings.Style = preset.Style.Normalize()
	s.settings.Lighting = preset.Lighting.Normalize()
	s.settings.Creativity = preset.Creativity
	s.settings.Prompt = preset.Prompt
	if preset.Dimensions != nil {
		dims := *preset.Dimensions
		s.settings.Dimensions = &dims
	} else {
		s.settings.Dimensions = nil
	}
}

func (s *Session) publish(event string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishSessionEvent(s.userID, event, payload); err != nil {
		slog.Debug("failed to publish session event", "event", event, "error", err)
	}
}
