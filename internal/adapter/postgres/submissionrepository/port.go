package submissionrepository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"gitlab.com/algojudge.net/internal/core/ports/primary"
	"gitlab.com/algojudge.net/internal/core/ports/secondary"
	"gitlab.com/algojudge.net/internal/domain"
	"gitlab.com/algojudge.net/internal/static/errs"
)

var _ secondary.SubmissionRepository = (*SubmissionRepository)(nil)

// SubmissionRepository implements the SubmissionRepository interface with
// PostgreSQL. Per-testcase results are stored as a JSON column so the
// snapshot taken at submit time survives later testcase edits.
type SubmissionRepository struct {
	db     *sqlx.DB
	logger primary.Logger
}

// New creates a new PostgreSQL submission repository
func New(db *sqlx.DB, logger primary.Logger) *SubmissionRepository {
	return &SubmissionRepository{
		db:     db,
		logger: logger,
	}
}

// Save persists a submission snapshot
func (r *SubmissionRepository) Save(ctx context.Context, submission *domain.Submission) error {
	resultsJSON, err := json.Marshal(submission.Results)
	if err != nil {
		r.logger.Error("Failed to marshal submission results", "error", err)
		return fmt.Errorf("failed to marshal submission results: %w", err)
	}

	query := `
		INSERT INTO submissions (
			id, user_id, problem_id, code, language, verdict,
			results, passed_count, total_testcases, submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err = r.db.ExecContext(
		ctx,
		query,
		submission.ID,
		submission.UserID,
		submission.ProblemID,
		submission.Code,
		submission.Language,
		submission.Verdict,
		resultsJSON,
		submission.PassedCount,
		submission.TotalTestcases,
		submission.SubmittedAt,
	)

	if err != nil {
		r.logger.Error("Failed to save submission", "submissionId", submission.ID, "error", err)
		return fmt.Errorf("failed to save submission: %w", err)
	}

	return nil
}

// Get retrieves a submission by ID, nil when not found
func (r *SubmissionRepository) Get(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	query := `
		SELECT id, user_id, problem_id, code, language, verdict,
			   results, passed_count, total_testcases, submitted_at
		FROM submissions
		WHERE id = $1
	`

	submission, err := r.scanSubmission(r.db.QueryRowContext(ctx, query, submissionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get submission", "submissionId", submissionID, "error", err)
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return submission, nil
}

// ListByUser retrieves a user's submissions, newest first
func (r *SubmissionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	query := `
		SELECT id, user_id, problem_id, code, language, verdict,
			   results, passed_count, total_testcases, submitted_at
		FROM submissions
		WHERE user_id = $1
		ORDER BY submitted_at DESC
	`

	return r.listSubmissions(ctx, query, userID)
}

// ListByProblem retrieves all submissions for a problem, newest first
func (r *SubmissionRepository) ListByProblem(ctx context.Context, problemID uuid.UUID) ([]*domain.Submission, error) {
	query := `
		SELECT id, user_id, problem_id, code, language, verdict,
			   results, passed_count, total_testcases, submitted_at
		FROM submissions
		WHERE problem_id = $1
		ORDER BY submitted_at DESC
	`

	return r.listSubmissions(ctx, query, problemID)
}

// Delete removes a submission
func (r *SubmissionRepository) Delete(ctx context.Context, submissionID uuid.UUID) error {
	query := `DELETE FROM submissions WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, submissionID)
	if err != nil {
		r.logger.Error("Failed to delete submission", "submissionId", submissionID, "error", err)
		return fmt.Errorf("failed to delete submission: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("Error checking rows affected", "error", err)
		return fmt.Errorf("error checking rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return errs.SolutionNotFound
	}

	return nil
}

// DeleteByProblem removes all submissions for a problem
func (r *SubmissionRepository) DeleteByProblem(ctx context.Context, problemID uuid.UUID) error {
	query := `DELETE FROM submissions WHERE problem_id = $1`

	if _, err := r.db.ExecContext(ctx, query, problemID); err != nil {
		r.logger.Error("Failed to delete submissions", "problemId", problemID, "error", err)
		return fmt.Errorf("failed to delete submissions: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *SubmissionRepository) scanSubmission(row rowScanner) (*domain.Submission, error) {
	var submission domain.Submission
	var resultsJSON []byte

	err := row.Scan(
		&submission.ID,
		&submission.UserID,
		&submission.ProblemID,
		&submission.Code,
		&submission.Language,
		&submission.Verdict,
		&resultsJSON,
		&submission.PassedCount,
		&submission.TotalTestcases,
		&submission.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(resultsJSON, &submission.Results); err != nil {
		return nil, fmt.Errorf("failed to unmarshal submission results: %w", err)
	}

	return &submission, nil
}

func (r *SubmissionRepository) listSubmissions(ctx context.Context, query string, arg interface{}) ([]*domain.Submission, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		r.logger.Error("Failed to list submissions", "error", err)
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer rows.Close()

	submissions := make([]*domain.Submission, 0)
	for rows.Next() {
		submission, err := r.scanSubmission(rows)
		if err != nil {
			r.logger.Error("Failed to scan submission row", "error", err)
			return nil, fmt.Errorf("failed to scan submission row: %w", err)
		}
		submissions = append(submissions, submission)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error("Error iterating submission rows", "error", err)
		return nil, fmt.Errorf("error iterating submission rows: %w", err)
	}

	return submissions, nil
}
