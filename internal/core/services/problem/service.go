package problem

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/algojudge.net/internal/domain"
)

// TestcaseInput is one testcase supplied by a privileged caller
type TestcaseInput struct {
	Input          string
	ExpectedOutput string
	IsHidden       bool
}

// CreateProblemInput carries a new problem, optionally with inline testcases
type CreateProblemInput struct {
	Title      string
	Statement  string
	Difficulty domain.Difficulty
	Testcases  []TestcaseInput
}

// UpdateProblemInput carries problem field updates; empty fields keep their
// current value
type UpdateProblemInput struct {
	Title      string
	Statement  string
	Difficulty domain.Difficulty
}

// ProblemWithTestcases bundles a problem with a view of its testcases
type ProblemWithTestcases struct {
	Problem   *domain.Problem
	Testcases []*domain.TestCase
}

// IProblemService defines problem and testcase management
type IProblemService interface {
	CreateProblem(ctx context.Context, input *CreateProblemInput) (*ProblemWithTestcases, error)
	ListProblems(ctx context.Context) ([]*domain.Problem, error)

	// GetProblem retrieves a problem with its testcases; hidden testcases
	// are included only when includeHidden is set
	GetProblem(ctx context.Context, problemID uuid.UUID, includeHidden bool) (*ProblemWithTestcases, error)

	UpdateProblem(ctx context.Context, problemID uuid.UUID, input *UpdateProblemInput) (*domain.Problem, error)

	// DeleteProblem removes a problem together with its testcases and
	// submissions
	DeleteProblem(ctx context.Context, problemID uuid.UUID) error

	CreateTestcase(ctx context.Context, problemID uuid.UUID, input *TestcaseInput) (*domain.TestCase, error)
	ListTestcases(ctx context.Context, problemID uuid.UUID, includeHidden bool) ([]*domain.TestCase, error)
	UpdateTestcase(ctx context.Context, testcaseID uuid.UUID, input *TestcaseInput) (*domain.TestCase, error)
	DeleteTestcase(ctx context.Context, testcaseID uuid.UUID) error
}
