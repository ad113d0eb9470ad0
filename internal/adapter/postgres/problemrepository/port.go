// package postgres contains PostgreSQL implementations of repositories
package problemrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"gitlab.com/algojudge.net/internal/core/ports/primary"
	"gitlab.com/algojudge.net/internal/core/ports/secondary"
	"gitlab.com/algojudge.net/internal/domain"
)

var _ secondary.ProblemRepository = (*ProblemRepository)(nil)

// ProblemRepository implements the ProblemRepository interface with PostgreSQL
type ProblemRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// New creates a new PostgreSQL problem repository
func New(db *sqlx.DB, logger primary.Logger) *ProblemRepository {
	return &ProblemRepository{
		db:     db,
		logger: logger,
	}
}

// Save saves a problem, updating it if it already exists
func (r *ProblemRepository) Save(ctx context.Context, problem *domain.Problem) error {
	query := `
		INSERT INTO problems (
			id, title, statement, difficulty, created_at
		) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			statement = EXCLUDED.statement,
			difficulty = EXCLUDED.difficulty
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		problem.ID,
		problem.Title,
		problem.Statement,
		problem.Difficulty,
		problem.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to save problem", "problemId", problem.ID, "error", err)
		return fmt.Errorf("failed to save problem: %w", err)
	}

	return nil
}

// Get retrieves a problem by ID, nil when not found
func (r *ProblemRepository) Get(ctx context.Context, problemID uuid.UUID) (*domain.Problem, error) {
	query := `
		SELECT id, title, statement, difficulty, created_at
		FROM problems
		WHERE id = $1
	`

	var problem domain.Problem
	err := r.db.GetContext(ctx, &problem, query, problemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get problem", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}

	return &problem, nil
}

// List retrieves all problems, oldest first
func (r *ProblemRepository) List(ctx context.Context) ([]*domain.Problem, error) {
	query := `
		SELECT id, title, statement, difficulty, created_at
		FROM problems
		ORDER BY created_at ASC
	`

	problems := make([]*domain.Problem, 0)
	if err := r.db.SelectContext(ctx, &problems, query); err != nil {
		r.logger.Error("Failed to list problems", "error", err)
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}

	return problems, nil
}

// Delete removes a problem
func (r *ProblemRepository) Delete(ctx context.Context, problemID uuid.UUID) error {
	query := `DELETE FROM problems WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, problemID); err != nil {
		r.logger.Error("Failed to delete problem", "problemId", problemID, "error", err)
		return fmt.Errorf("failed to delete problem: %w", err)
	}

	return nil
}
