package store

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"lumina-backend/internal/models"
)

// ErrNotFound is returned for lookups that match no record.
var ErrNotFound = errors.New("record not found")

// ErrEmailTaken is returned when registering an already registered email.
var ErrEmailTaken = errors.New("email already registered")

// Repository is the durable key-value surface consumed by the session layer:
// typed get/put operations per record kind, keyed by user id. History and
// budget history are replaced whole on every write; the session never
// mutates stored lists incrementally.
type Repository interface {
	CreateAccount(ctx context.Context, account *models.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, profile models.UserProfile) error
	DeleteAccount(ctx context.Context, userID uuid.UUID) error

	PutHistory(ctx context.Context, userID uuid.UUID, history []models.GenerationResult) error
	GetHistory(ctx context.Context, userID uuid.UUID) ([]models.GenerationResult, error)
	PutBudgetHistory(ctx context.Context, userID uuid.UUID, entries []models.BudgetHistoryEntry) error
	GetBudgetHistory(ctx context.Context, userID uuid.UUID) ([]models.BudgetHistoryEntry, error)

	SaveProject(ctx context.Context, project *models.Project) error
	ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error)
}
