package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/algojudge.net/internal/domain"
)

// TestcaseRepository defines the interface for the judging core's testcase
// source and for privileged testcase management
type TestcaseRepository interface {
	// ListByProblem retrieves a problem's testcases in stable order. When
	// includeHidden is false, hidden testcases are filtered out.
	ListByProblem(ctx context.Context, problemID uuid.UUID, includeHidden bool) ([]*domain.TestCase, error)

	// Save saves a testcase, updating it if it already exists
	Save(ctx context.Context, testcase *domain.TestCase) error

	// SaveBatch saves several testcases at once
	SaveBatch(ctx context.Context, testcases []*domain.TestCase) error

	// Get retrieves a testcase by ID, nil when not found
	Get(ctx context.Context, testcaseID uuid.UUID) (*domain.TestCase, error)

	// Delete removes a testcase
	Delete(ctx context.Context, testcaseID uuid.UUID) error

	// DeleteByProblem removes all testcases of a problem
	DeleteByProblem(ctx context.Context, problemID uuid.UUID) error
}
