package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"lumina-backend/internal/models"
)

// Record kinds for the per-user key-value rows.
const (
	kindHistory       = "history"
	kindBudgetHistory = "budget_history"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(connectionString string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) CreateAccount(ctx context.Context, account *models.Account) error {
	profileJSON, err := json.Marshal(account.Profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO accounts (id, email, password_hash, profile)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, account.ID, account.Email, profileJSON, account.PasswordHash).Scan(&account.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return r.getAccount(ctx, `
		SELECT id, email, password_hash, profile, created_at
		FROM accounts
		WHERE email = $1
	`, email)
}

func (r *PostgresRepository) GetAccount(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return r.getAccount(ctx, `
		SELECT id, email, password_hash, profile, created_at
		FROM accounts
		WHERE id = $1
	`, id)
}

func (r *PostgresRepository) getAccount(ctx context.Context, query string, arg interface{}) (*models.Account, error) {
	var account models.Account
	var profileJSON []byte
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID, &account.Email, &account.PasswordHash, &profileJSON, &account.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if err := json.Unmarshal(profileJSON, &account.Profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	return &account, nil
}

func (r *PostgresRepository) UpdateProfile(ctx context.Context, userID uuid.UUID, profile models.UserProfile) error {
	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `
		UPDATE accounts
		SET profile = $1
		WHERE id = $2
	`, profileJSON, userID)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteAccount removes the account row; records and projects follow through
// the ON DELETE CASCADE constraints.
func (r *PostgresRepository) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `
		DELETE FROM accounts WHERE id = $1
	`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return ErrNotFound
	}
	return nil
}

// putRecord upserts one per-user record kind, replacing the payload whole.
func (r *PostgresRepository) putRecord(ctx context.Context, userID uuid.UUID, kind string, payload interface{}) error {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s record: %w", kind, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_records (user_id, kind, payload, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id, kind)
		DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()
	`, userID, kind, payloadJSON)
	if err != nil {
		return fmt.Errorf("failed to put %s record: %w", kind, err)
	}
	return nil
}

func (r *PostgresRepository) getRecord(ctx context.Context, userID uuid.UUID, kind string, out interface{}) error {
	var payload []byte
	err := r.db.QueryRowContext(ctx, `
		SELECT payload FROM user_records
		WHERE user_id = $1 AND kind = $2
	`, userID, kind).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get %s record: %w", kind, err)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s record: %w", kind, err)
	}
	return nil
}

func (r *PostgresRepository) PutHistory(ctx context.Context, userID uuid.UUID, history []models.GenerationResult) error {
	return r.putRecord(ctx, userID, kindHistory, history)
}

func (r *PostgresRepository) GetHistory(ctx context.Context, userID uuid.UUID) ([]models.GenerationResult, error) {
	var history []models.GenerationResult
	err := r.getRecord(ctx, userID, kindHistory, &history)
	if errors.Is(err, ErrNotFound) {
		return []models.GenerationResult{}, nil
	}
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (r *PostgresRepository) PutBudgetHistory(ctx context.Context, userID uuid.UUID, entries []models.BudgetHistoryEntry) error {
	return r.putRecord(ctx, userID, kindBudgetHistory, entries)
}

func (r *PostgresRepository) GetBudgetHistory(ctx context.Context, userID uuid.UUID) ([]models.BudgetHistoryEntry, error) {
	var entries []models.BudgetHistoryEntry
	err := r.getRecord(ctx, userID, kindBudgetHistory, &entries)
	if errors.Is(err, ErrNotFound) {
		return []models.BudgetHistoryEntry{}, nil
	}
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *PostgresRepository) SaveProject(ctx context.Context, project *models.Project) error {
	payloadJSON, err := json.Marshal(project)
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO projects (id, user_id, name, payload, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (id)
		DO UPDATE SET name = EXCLUDED.name, payload = EXCLUDED.payload, updated_at = NOW()
	`, project.ID, project.UserID, project.Name, payloadJSON)
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListProjects(ctx context.Context, userID uuid.UUID) ([]models.Project, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT payload FROM projects
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		var project models.Project
		if err := json.Unmarshal(payload, &project); err != nil {
			return nil, fmt.Errorf("failed to unmarshal project: %w", err)
		}
		projects = append(projects, project)
	}
	return projects, rows.Err()
}
