package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"lumina-backend/internal/models"
)

// MemoryRepository is an in-process Repository used by tests and by local
// runs without a database. Values are copied through JSON on the way in and
// out so callers cannot alias stored state.
type MemoryRepository struct {
	mu       sync.Mutex
	accounts map[uuid.UUID]*models.Account
	byEmail  map[string]uuid.UUID
	records  map[uuid.UUID]map[string][]byte
	projects map[string][]byte
	order    []string
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		accounts: make(map[uuid.UUID]*models.Account),
		byEmail:  make(map[string]uuid.UUID),
		records:  make(map[uuid.UUID]map[string][]byte),
		projects: make(map[string][]byte),
	}
}

func (r *MemoryRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byEmail[account.Email]; taken {
		return ErrEmailTaken
	}
	account.CreatedAt = time.Now()
	copied := *account
	r.accounts[account.ID] = &copied
	r.byEmail[account.Email] = account.ID
	return nil
}

func (r *MemoryRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *r.accounts[id]
	return &copied, nil
}

func (r *MemoryRepository) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *MemoryRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, profile models.UserProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[userID]
	if !ok {
		return ErrNotFound
	}
	account.Profile = profile
	return nil
}

func (r *MemoryRepository) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[userID]
	if !ok {
		return ErrNotFound
	}
	delete(r.byEmail, account.Email)
	delete(r.accounts, userID)
	delete(r.records, userID)

	kept := r.order[:0]
	for _, id := range r.order {
		var project models.Project
		if err := json.Unmarshal(r.projects[id], &project); err != nil {
			return err
		}
		if project.UserID == userID.String() {
			delete(r.projects, id)
			continue
		}
		kept = append(kept, id)
	}
	r.order = kept
	return nil
}

func (r *MemoryRepository) putRecord(userID uuid.UUID, kind string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.records[userID] == nil {
		r.records[userID] = make(map[string][]byte)
	}
	r.records[userID][kind] = data
	return nil
}

func (r *MemoryRepository) getRecord(userID uuid.UUID, kind string, out interface{}) error {
	r.mu.Lock()
	data, ok := r.records[userID][kind]
	r.mu.Unlock()

	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal(data, out)
}

func (r *MemoryRepository) PutHistory(ctx context.Context, userID uuid.UUID, history []models.GenerationResult) error {
	return r.putRecord(userID, kindHistory, history)
}

func (r *MemoryRepository) GetHistory(ctx context.Context, userID uuid.UUID) ([]models.GenerationResult, error) {
	var history []models.GenerationResult
	if err := r.getRecord(userID, kindHistory, &history); err != nil {
		if err == ErrNotFound {
			return []models.GenerationResult{}, nil
		}
		return nil, err
	}
	return history, nil
}

func (r *MemoryRepository) PutBudgetHistory(ctx context.Context, userID uuid.UUID, entries []models.BudgetHistoryEntry) error {
	return r.putRecord(userID, kindBudgetHistory, entries)
}

func (r *MemoryRepository) GetBudgetHistory(ctx context.Context, userID uuid.UUID) ([]models.BudgetHistoryEntry, error) {
	var entries []models.BudgetHistoryEntry
	if err := r.getRecord(userID, kindBudgetHistory, &entries); err != nil {
		if err == ErrNotFound {
			return []models.BudgetHistoryEntry{}, nil
		}
		return nil, err
	}
	return entries, nil
}

func (r *MemoryRepository) SaveProject(ctx context.Context, project *models.Project) error {
	data, err := json.Marshal(project)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.projects[project.ID]; !exists {
		r.order = append(r.order, project.ID)
	}
	r.projects[project.ID] = data
	return nil
}

func (r *MemoryRepository) ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects := []models.Project{}
	// Most recently saved first.
	for i := len(r.order) - 1; i >= 0; i-- {
		var project models.Project
		if err := json.Unmarshal(r.projects[r.order[i]], &project); err != nil {
			return nil, err
		}
		if project.UserID == userID.String() {
			projects = append(projects, project)
		}
	}
	return projects, nil
}
