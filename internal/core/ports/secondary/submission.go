package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/algojudge.net/internal/domain"
)

// SubmissionRepository defines the interface for the graded-mode result sink
type SubmissionRepository interface {
	// Save persists a submission snapshot
	Save(ctx context.Context, submission *domain.Submission) error

	// Get retrieves a submission by ID, nil when not found
	Get(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error)

	// ListByUser retrieves a user's submissions, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error)

	// ListByProblem retrieves all submissions for a problem, newest first
	ListByProblem(ctx context.Context, problemID uuid.UUID) ([]*domain.Submission, error)

	// Delete removes a submission
	Delete(ctx context.Context, submissionID uuid.UUID) error

	// DeleteByProblem removes all submissions for a problem
	DeleteByProblem(ctx context.Context, problemID uuid.UUID) error
}
