package judge

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/algojudge.net/internal/domain"
)

// JudgeRequest carries one judging invocation's inputs
type JudgeRequest struct {
	ProblemID uuid.UUID
	Code      string
	Language  domain.Language
}

// IJudgeService defines the judging orchestration interface
type IJudgeService interface {
	// RunCode judges the code against the problem's visible testcases only.
	// Nothing is persisted; every visible testcase is evaluated unless
	// compilation fails.
	RunCode(ctx context.Context, req *JudgeRequest) (*domain.JudgementResult, error)

	// SubmitSolution judges the code against the problem's full testcase
	// set, stopping at the first disqualifying result, and persists a
	// submission snapshot owned by userID. When persistence fails after a
	// completed judgement, the submission and judgement are still returned
	// alongside an error wrapping errs.SavingSubmission.
	SubmitSolution(ctx context.Context, userID uuid.UUID, req *JudgeRequest) (*domain.Submission, *domain.JudgementResult, error)

	// ListUserSubmissions retrieves the caller's submissions, newest first
	ListUserSubmissions(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error)

	// ListProblemSubmissions retrieves all submissions for a problem
	ListProblemSubmissions(ctx context.Context, problemID uuid.UUID) ([]*domain.Submission, error)

	// DeleteSubmission removes a submission
	DeleteSubmission(ctx context.Context, submissionID uuid.UUID) error
}
