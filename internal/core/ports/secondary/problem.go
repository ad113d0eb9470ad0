package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/algojudge.net/internal/domain"
)

// ProblemRepository defines the interface for storing and retrieving problems
type ProblemRepository interface {
	// Save saves a problem, updating it if it already exists
	Save(ctx context.Context, problem *domain.Problem) error

	// Get retrieves a problem by ID, nil when not found
	Get(ctx context.Context, problemID uuid.UUID) (*domain.Problem, error)

	// List retrieves all problems
	List(ctx context.Context) ([]*domain.Problem, error)

	// Delete removes a problem
	Delete(ctx context.Context, problemID uuid.UUID) error
}
