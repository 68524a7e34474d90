package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"lumina-backend/internal/models"
	"lumina-backend/internal/pipeline"
	"lumina-backend/internal/store"
)

// AssetStore is the storage surface the manager wires into sessions: the
// pipeline's best-effort uploads plus per-user removal for account teardown.
type AssetStore interface {
	pipeline.AssetStore
	DeleteUserAssets(userID string) error
}

// Manager owns one Session per authenticated user, created lazily on first
// touch and seeded from the durable store.
type Manager struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	repo   store.Repository
	gen    Generative
	events Publisher
	assets AssetStore
}

func NewManager(repo store.Repository, gen Generative) *Manager {
	return &Manager{
		sessions: make(map[uuid.UUID]*Session),
		repo:     repo,
		gen:      gen,
	}
}

// WithEvents enables realtime event publishing for new sessions.
func (m *Manager) WithEvents(events Publisher) *Manager {
	m.events = events
	return m
}

// WithAssets enables durable asset storage for new sessions.
func (m *Manager) WithAssets(assets AssetStore) *Manager {
	m.assets = assets
	return m
}

// Get returns the user's session, creating and hydrating it on first access.
// Hydration loads persisted history and seeds settings from the account's
// saved defaults.
func (m *Manager) Get(ctx context.Context, userID uuid.UUID) (*Session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[userID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	history, err := m.repo.GetHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	budgetHistory, err := m.repo.GetBudgetHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load budget history: %w", err)
	}

	settings := models.DefaultSettings()
	if account, err := m.repo.GetAccount(ctx, userID); err == nil {
		prefs := account.Profile.Preferences
		settings.RoomType = prefs.DefaultRoomType.Normalize()
		settings.Style = prefs.DefaultStyle.Normalize()
		settings.Lighting = prefs.DefaultLighting.Normalize()
	}

	s := &Session{
		userID:        userID,
		repo:          m.repo,
		gen:           m.gen,
		pipe:          pipeline.New(m.gen).WithAssets(m.assets),
		events:        m.events,
		assets:        m.assets,
		state:         pipeline.StateIdle,
		settings:      settings,
		enrichment:    map[string]models.Enrichment{},
		history:       history,
		budgetHistory: budgetHistory,
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Another request may have raced us here; keep the first session.
	if existing, ok := m.sessions[userID]; ok {
		return existing, nil
	}
	m.sessions[userID] = s
	return s, nil
}

// Drop discards the in-memory session; durable state is unaffected.
func (m *Manager) Drop(userID uuid.UUID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
}

// Teardown removes everything the manager holds for a deleted account: the
// live session and the user's stored assets.
func (m *Manager) Teardown(userID uuid.UUID) {
	m.Drop(userID)
	if m.assets != nil {
		if err := m.assets.DeleteUserAssets(userID.String()); err != nil {
			slog.Warn("failed to delete user assets", "user_id", userID, "error", err)
		}
	}
}
