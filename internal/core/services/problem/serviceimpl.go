package problem

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"gitlab.com/algojudge.net/internal/core/ports/primary"
	"gitlab.com/algojudge.net/internal/core/ports/secondary"
	"gitlab.com/algojudge.net/internal/domain"
	"gitlab.com/algojudge.net/internal/static/errs"
)

var _ IProblemService = (*ProblemService)(nil)

// ProblemService implements problem and testcase management
type ProblemService struct {
	problems    secondary.ProblemRepository
	testcases   secondary.TestcaseRepository
	submissions secondary.SubmissionRepository
	logger      primary.Logger
}

// NewProblemService creates a new problem service
func NewProblemService(
	problems secondary.ProblemRepository,
	testcases secondary.TestcaseRepository,
	submissions secondary.SubmissionRepository,
	logger primary.Logger,
) *ProblemService {
	return &ProblemService{
		problems:    problems,
		testcases:   testcases,
		submissions: submissions,
		logger:      logger,
	}
}

// CreateProblem creates a problem, saving any inline testcases with it
func (s *ProblemService) CreateProblem(ctx context.Context, input *CreateProblemInput) (*ProblemWithTestcases, error) {
	p := domain.NewProblem(input.Title, input.Statement, input.Difficulty)
	if err := s.problems.Save(ctx, p); err != nil {
		s.logger.Error("Failed to save problem", "error", err)
		return nil, fmt.Errorf("failed to save problem: %w", err)
	}

	saved := make([]*domain.TestCase, 0, len(input.Testcases))
	for _, tc := range input.Testcases {
		saved = append(saved, domain.NewTestCase(p.ID, tc.Input, tc.ExpectedOutput, tc.IsHidden))
	}
	if len(saved) > 0 {
		if err := s.testcases.SaveBatch(ctx, saved); err != nil {
			s.logger.Error("Failed to save testcases", "problemId", p.ID, "error", err)
			return nil, fmt.Errorf("failed to save testcases: %w", err)
		}
	}

	s.logger.Info("Problem created", "problemId", p.ID, "testcases", len(saved))
	return &ProblemWithTestcases{Problem: p, Testcases: saved}, nil
}

// ListProblems retrieves all problems
func (s *ProblemService) ListProblems(ctx context.Context) ([]*domain.Problem, error) {
	problems, err := s.problems.List(ctx)
	if err != nil {
		s.logger.Error("Failed to list problems", "error", err)
		return nil, fmt.Errorf("failed to list problems: %w", err)
	}
	return problems, nil
}

// GetProblem retrieves a problem with its testcase view
func (s *ProblemService) GetProblem(ctx context.Context, problemID uuid.UUID, includeHidden bool) (*ProblemWithTestcases, error) {
	p, err := s.problems.Get(ctx, problemID)
	if err != nil {
		s.logger.Error("Failed to get problem", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	if p == nil {
		return nil, errs.ProblemNotFound
	}

	cases, err := s.testcases.ListByProblem(ctx, problemID, includeHidden)
	if err != nil {
		s.logger.Error("Failed to list testcases", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to list testcases: %w", err)
	}

	return &ProblemWithTestcases{Problem: p, Testcases: cases}, nil
}

// UpdateProblem applies non-empty field updates to a problem
func (s *ProblemService) UpdateProblem(ctx context.Context, problemID uuid.UUID, input *UpdateProblemInput) (*domain.Problem, error) {
	p, err := s.problems.Get(ctx, problemID)
	if err != nil {
		s.logger.Error("Failed to get problem", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	if p == nil {
		return nil, errs.ProblemNotFound
	}

	if input.Title != "" {
		p.Title = input.Title
	}
	if input.Statement != "" {
		p.Statement = input.Statement
	}
	if input.Difficulty != "" {
		p.Difficulty = input.Difficulty
	}

	if err := s.problems.Save(ctx, p); err != nil {
		s.logger.Error("Failed to update problem", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to update problem: %w", err)
	}

	return p, nil
}

// DeleteProblem removes a problem and cascades to its testcases and
// submissions
func (s *ProblemService) DeleteProblem(ctx context.Context, problemID uuid.UUID) error {
	p, err := s.problems.Get(ctx, problemID)
	if err != nil {
		s.logger.Error("Failed to get problem", "problemId", problemID, "error", err)
		return fmt.Errorf("failed to get problem: %w", err)
	}
	if p == nil {
		return errs.ProblemNotFound
	}

	if err := s.problems.Delete(ctx, problemID); err != nil {
		s.logger.Error("Failed to delete problem", "problemId", problemID, "error", err)
		return fmt.Errorf("failed to delete problem: %w", err)
	}
	if err := s.testcases.DeleteByProblem(ctx, problemID); err != nil {
		s.logger.Error("Failed to delete testcases", "problemId", problemID, "error", err)
		return fmt.Errorf("failed to delete testcases: %w", err)
	}
	if err := s.submissions.DeleteByProblem(ctx, problemID); err != nil {
		s.logger.Error("Failed to delete submissions", "problemId", problemID, "error", err)
		return fmt.Errorf("failed to delete submissions: %w", err)
	}

	s.logger.Info("Problem deleted", "problemId", problemID)
	return nil
}

// CreateTestcase adds a testcase to an existing problem
func (s *ProblemService) CreateTestcase(ctx context.Context, problemID uuid.UUID, input *TestcaseInput) (*domain.TestCase, error) {
	p, err := s.problems.Get(ctx, problemID)
	if err != nil {
		s.logger.Error("Failed to get problem", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to get problem: %w", err)
	}
	if p == nil {
		return nil, errs.ProblemNotFound
	}

	tc := domain.NewTestCase(problemID, input.Input, input.ExpectedOutput, input.IsHidden)
	if err := s.testcases.Save(ctx, tc); err != nil {
		s.logger.Error("Failed to save testcase", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to save testcase: %w", err)
	}

	return tc, nil
}

// ListTestcases retrieves a problem's testcases
func (s *ProblemService) ListTestcases(ctx context.Context, problemID uuid.UUID, includeHidden bool) ([]*domain.TestCase, error) {
	cases, err := s.testcases.ListByProblem(ctx, problemID, includeHidden)
	if err != nil {
		s.logger.Error("Failed to list testcases", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to list testcases: %w", err)
	}
	return cases, nil
}

// UpdateTestcase applies updates to an existing testcase
func (s *ProblemService) UpdateTestcase(ctx context.Context, testcaseID uuid.UUID, input *TestcaseInput) (*domain.TestCase, error) {
	tc, err := s.testcases.Get(ctx, testcaseID)
	if err != nil {
		s.logger.Error("Failed to get testcase", "testcaseId", testcaseID, "error", err)
		return nil, fmt.Errorf("failed to get testcase: %w", err)
	}
	if tc == nil {
		return nil, errs.TestcaseNotFound
	}

	tc.Input = input.Input
	tc.ExpectedOutput = input.ExpectedOutput
	tc.IsHidden = input.IsHidden

	if err := s.testcases.Save(ctx, tc); err != nil {
		s.logger.Error("Failed to update testcase", "testcaseId", testcaseID, "error", err)
		return nil, fmt.Errorf("failed to update testcase: %w", err)
	}

	return tc, nil
}

// DeleteTestcase removes a testcase
func (s *ProblemService) DeleteTestcase(ctx context.Context, testcaseID uuid.UUID) error {
	tc, err := s.testcases.Get(ctx, testcaseID)
	if err != nil {
		s.logger.Error("Failed to get testcase", "testcaseId", testcaseID, "error", err)
		return fmt.Errorf("failed to get testcase: %w", err)
	}
	if tc == nil {
		return errs.TestcaseNotFound
	}

	if err := s.testcases.Delete(ctx, testcaseID); err != nil {
		s.logger.Error("Failed to delete testcase", "testcaseId", testcaseID, "error", err)
		return fmt.Errorf("failed to delete testcase: %w", err)
	}
	return nil
}
