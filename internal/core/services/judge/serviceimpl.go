package judge

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/algojudge.net/internal/core/ports/primary"
	"gitlab.com/algojudge.net/internal/core/ports/secondary"
	"gitlab.com/algojudge.net/internal/domain"
	"gitlab.com/algojudge.net/internal/static/errs"
)

var _ IJudgeService = (*JudgeService)(nil)

// JudgeService implements the judging orchestration. Testcases are evaluated
// strictly sequentially; the only blocking step is the sandbox dispatch.
type JudgeService struct {
	testcases   secondary.TestcaseRepository
	submissions secondary.SubmissionRepository
	executor    secondary.SandboxExecutor
	logger      primary.Logger
}

// NewJudgeService creates a new judge service
func NewJudgeService(
	testcases secondary.TestcaseRepository,
	submissions secondary.SubmissionRepository,
	executor secondary.SandboxExecutor,
	logger primary.Logger,
) *JudgeService {
	return &JudgeService{
		testcases:   testcases,
		submissions: submissions,
		executor:    executor,
		logger:      logger,
	}
}

// RunCode is the trial mode: visible testcases only, keep going after
// non-compilation errors so the caller sees every case's diagnostic.
func (s *JudgeService) RunCode(ctx context.Context, req *JudgeRequest) (*domain.JudgementResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	cases, err := s.testcases.ListByProblem(ctx, req.ProblemID, false)
	if err != nil {
		s.logger.Error("Failed to load testcases", "problemId", req.ProblemID, "error", err)
		return nil, fmt.Errorf("failed to load testcases: %w", err)
	}
	if len(cases) == 0 {
		return nil, errs.NoTestcases
	}

	result := &domain.JudgementResult{
		Verdict: domain.VerdictAccepted,
	}

	for i, tc := range cases {
		outcome := s.executor.Execute(ctx, req.Code, req.Language, tc.Input)

		if judged := Classify(outcome); judged != nil {
			if result.FirstError == nil {
				result.FirstError = judged
			}
			// Later errors overwrite the aggregate verdict: the last error
			// in the sequence decides it.
			result.Verdict = judged.Verdict
			result.Results = append(result.Results, errorResult(i+1, tc, judged))

			if judged.Verdict == domain.VerdictCompilationError {
				// Compilation fails identically for every remaining case.
				break
			}
			continue
		}

		passed := OutputsMatch(outcome.Output, tc.ExpectedOutput)
		if !passed && result.Verdict == domain.VerdictAccepted {
			result.Verdict = domain.VerdictWrongAnswer
		}
		result.Results = append(result.Results, trialComparisonResult(i+1, tc, outcome, passed))
	}

	fillSummary(result, len(cases), false)

	s.logger.Info("Trial run judged",
		"problemId", req.ProblemID,
		"verdict", result.Verdict,
		"evaluated", len(result.Results))

	return result, nil
}

// SubmitSolution is the graded mode: full testcase set, fail fast on the
// first error or mismatch, persist the snapshot.
func (s *JudgeService) SubmitSolution(ctx context.Context, userID uuid.UUID, req *JudgeRequest) (*domain.Submission, *domain.JudgementResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, nil, err
	}

	cases, err := s.testcases.ListByProblem(ctx, req.ProblemID, true)
	if err != nil {
		s.logger.Error("Failed to load testcases", "problemId", req.ProblemID, "error", err)
		return nil, nil, fmt.Errorf("failed to load testcases: %w", err)
	}
	if len(cases) == 0 {
		return nil, nil, errs.NoTestcases
	}

	result := &domain.JudgementResult{
		Verdict: domain.VerdictAccepted,
	}

	for i, tc := range cases {
		outcome := s.executor.Execute(ctx, req.Code, req.Language, tc.Input)

		if judged := Classify(outcome); judged != nil {
			if result.FirstError == nil {
				result.FirstError = judged
			}
			result.Verdict = judged.Verdict
			result.Results = append(result.Results, errorResult(i+1, tc, judged))
			break
		}

		passed := OutputsMatch(outcome.Output, tc.ExpectedOutput)
		if !passed && result.Verdict == domain.VerdictAccepted {
			result.Verdict = domain.VerdictWrongAnswer
		}
		result.Results = append(result.Results, gradedComparisonResult(i+1, tc, outcome, passed))

		if !passed {
			break
		}
	}

	fillSummary(result, len(cases), true)

	submission := domain.NewSubmission(userID, req.ProblemID, req.Code, req.Language, result)
	if err := s.submissions.Save(ctx, submission); err != nil {
		// The judgement is already computed; it must reach the caller even
		// though the record was not stored.
		s.logger.Error("Failed to persist submission",
			"problemId", req.ProblemID,
			"userId", userID,
			"error", err)
		return submission, result, fmt.Errorf("%w: %v", errs.SavingSubmission, err)
	}

	s.logger.Info("Solution submitted",
		"submissionId", submission.ID,
		"problemId", req.ProblemID,
		"verdict", result.Verdict,
		"score", result.Summary.Score)

	return submission, result, nil
}

// ListUserSubmissions retrieves the caller's submissions
func (s *JudgeService) ListUserSubmissions(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	submissions, err := s.submissions.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list submissions", "userId", userID, "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// ListProblemSubmissions retrieves all submissions for a problem
func (s *JudgeService) ListProblemSubmissions(ctx context.Context, problemID uuid.UUID) ([]*domain.Submission, error) {
	submissions, err := s.submissions.ListByProblem(ctx, problemID)
	if err != nil {
		s.logger.Error("Failed to list submissions", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	return submissions, nil
}

// DeleteSubmission removes a submission
func (s *JudgeService) DeleteSubmission(ctx context.Context, submissionID uuid.UUID) error {
	if err := s.submissions.Delete(ctx, submissionID); err != nil {
		s.logger.Error("Failed to delete submission", "submissionId", submissionID, "error", err)
		return err
	}
	return nil
}

func validateRequest(req *JudgeRequest) error {
	if strings.TrimSpace(req.Code) == "" {
		return errs.EmptyCode
	}
	if req.ProblemID == uuid.Nil {
		return errs.MissingProblemID
	}
	if req.Language == "" {
		req.Language = domain.LanguageCpp
	}
	return nil
}

// errorResult builds the row for a testcase whose execution failed
func errorResult(index int, tc *domain.TestCase, judged *domain.JudgedError) domain.TestCaseResult {
	return domain.TestCaseResult{
		Index:           index,
		Input:           redact(tc.IsHidden, tc.Input),
		Expected:        redact(tc.IsHidden, tc.ExpectedOutput),
		Got:             judged.Details,
		Status:          domain.ResultStatusError,
		Verdict:         judged.Verdict,
		Details:         judged.Details,
		ExecutionTimeMs: judged.ExecutionTimeMs,
		MemoryUsedBytes: judged.MemoryUsedBytes,
		IsHidden:        tc.IsHidden,
	}
}

// trialComparisonResult keeps the raw actual output in Got even on mismatch,
// so trial callers can diff for themselves
func trialComparisonResult(index int, tc *domain.TestCase, outcome *domain.ExecutionOutcome, passed bool) domain.TestCaseResult {
	actual := strings.TrimSpace(outcome.Output)
	expected := strings.TrimSpace(tc.ExpectedOutput)

	result := domain.TestCaseResult{
		Index:           index,
		Input:           redact(tc.IsHidden, tc.Input),
		Expected:        redact(tc.IsHidden, expected),
		Got:             actual,
		Status:          domain.ResultStatusPassed,
		Verdict:         domain.VerdictPassed,
		ExecutionTimeMs: outcome.ExecutionTimeMs,
		MemoryUsedBytes: outcome.MemoryUsedBytes,
		IsHidden:        tc.IsHidden,
	}
	if !passed {
		result.Status = domain.ResultStatusFailed
		result.Verdict = domain.VerdictWrongAnswer
		// A hidden case's expected output stays redacted in the diff too.
		result.Details = mismatchDetails(redact(tc.IsHidden, expected), actual)
	}
	return result
}

// gradedComparisonResult replaces Got with the expected/got diff on mismatch
func gradedComparisonResult(index int, tc *domain.TestCase, outcome *domain.ExecutionOutcome, passed bool) domain.TestCaseResult {
	result := trialComparisonResult(index, tc, outcome, passed)
	if !passed {
		result.Got = result.Details
	}
	return result
}

func mismatchDetails(expected, actual string) string {
	return fmt.Sprintf("Expected: %s\nGot: %s", expected, actual)
}

func redact(hidden bool, value string) string {
	if hidden {
		return domain.HiddenPlaceholder
	}
	return value
}

func fillSummary(result *domain.JudgementResult, total int, graded bool) {
	summary := domain.JudgementSummary{
		TotalTestcases: total,
	}
	for _, r := range result.Results {
		switch r.Status {
		case domain.ResultStatusPassed:
			summary.Passed++
		case domain.ResultStatusFailed:
			summary.Failed++
		case domain.ResultStatusError:
			summary.Errors++
		}
	}
	if graded {
		summary.Score = fmt.Sprintf("%d/%d", summary.Passed, total)
	}
	result.Summary = summary
}
