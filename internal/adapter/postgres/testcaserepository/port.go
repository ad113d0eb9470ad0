package testcaserepository

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
	querybuilder "gitlab.com/algojudge.net/internal/utils"
)

var _ secondary.TestcaseRepository = (*TestcaseRepository)(nil)

// TestcaseRepository implements the TestcaseRepository interface with PostgreSQL
type TestcaseRepository struct {
	db     *sqlx.DB
	logger primary.Logger
	schema string
}

// New creates a new PostgreSQL testcase repository
func New(db *sqlx.DB, logger primary.Logger, schema string) *TestcaseRepository {
	return &TestcaseRepository{
		db:     db,
		logger: logger,
		schema: schema,
	}
}

// ListByProblem retrieves a problem's testcases ordered by creation time.
// Hidden testcases are filtered out unless includeHidden is set.
func (r *TestcaseRepository) ListByProblem(ctx context.Context, problemID uuid.UUID, includeHidden bool) ([]*domain.TestCase, error) {
	tcTbl := domain.GetTestCaseTable()
	qb := querybuilder.NewQueryBuilder(r.schema).
		Select(
			tcTbl.ID, tcTbl.ProblemID,
			tcTbl.Input, tcTbl.ExpectedOutput,
			tcTbl.IsHidden, tcTbl.CreatedAt,
		).
		From(domain.TestCaseTable{}.TableName()).
		Where(fmt.Sprintf("%s = ?", tcTbl.ProblemID), problemID)

	if !includeHidden {
		qb = qb.And(fmt.Sprintf("%s = ?", tcTbl.IsHidden), false)
	}

	query, args := qb.OrderBy(tcTbl.CreatedAt, true).Build()
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	testcases := make([]*domain.TestCase, 0)
	if err := r.db.SelectContext(ctx, &testcases, query, args...); err != nil {
		r.logger.Error("Failed to list testcases", "problemId", problemID, "error", err)
		return nil, fmt.Errorf("failed to list testcases: %w", err)
	}

	return testcases, nil
}

// Save saves a testcase, updating it if it already exists
func (r *TestcaseRepository) Save(ctx context.Context, testcase *domain.TestCase) error {
	query := `
		INSERT INTO testcases (
			id, problem_id, input, expected_output, is_hidden, created_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			input = EXCLUDED.input,
			expected_output = EXCLUDED.expected_output,
			is_hidden = EXCLUDED.is_hidden
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		testcase.ID,
		testcase.ProblemID,
		testcase.Input,
		testcase.ExpectedOutput,
		testcase.IsHidden,
		testcase.CreatedAt,
	)

	if err != nil {
		r.logger.Error("Failed to save testcase", "testcaseId", testcase.ID, "error", err)
		return fmt.Errorf("failed to save testcase: %w", err)
	}

	return nil
}

// SaveBatch saves several testcases in one statement
func (r *TestcaseRepository) SaveBatch(ctx context.Context, testcases []*domain.TestCase) error {
	if len(testcases) == 0 {
		return nil
	}

	tcTbl := domain.GetTestCaseTable()
	qb := querybuilder.NewQueryBuilder(r.schema).
		Insert(
			tcTbl.ID, tcTbl.ProblemID,
			tcTbl.Input, tcTbl.ExpectedOutput,
			tcTbl.IsHidden, tcTbl.CreatedAt,
		).
		Into(domain.TestCaseTable{}.TableName())

	for _, tc := range testcases {
		qb = qb.Values(tc.ID, tc.ProblemID, tc.Input, tc.ExpectedOutput, tc.IsHidden, tc.CreatedAt)
	}

	query, args := qb.Build()
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to save testcase batch", "count", len(testcases), "error", err)
		return fmt.Errorf("failed to save testcase batch: %w", err)
	}

	return nil
}

// Get retrieves a testcase by ID, nil when not found
func (r *TestcaseRepository) Get(ctx context.Context, testcaseID uuid.UUID) (*domain.TestCase, error) {
	query := `
		SELECT id, problem_id, input, expected_output, is_hidden, created_at
		FROM testcases
		WHERE id = $1
	`

	var testcase domain.TestCase
	err := r.db.GetContext(ctx, &testcase, query, testcaseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error("Failed to get testcase", "testcaseId", testcaseID, "error", err)
		return nil, fmt.Errorf("failed to get testcase: %w", err)
	}

	return &testcase, nil
}

// Delete removes a testcase
func (r *TestcaseRepository) Delete(ctx context.Context, testcaseID uuid.UUID) error {
	tcTbl := domain.GetTestCaseTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete(domain.TestCaseTable{}.TableName()).
		Where(fmt.Sprintf("%s = ?", tcTbl.ID), testcaseID).
		Build()
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to delete testcase", "testcaseId", testcaseID, "error", err)
		return fmt.Errorf("failed to delete testcase: %w", err)
	}

	return nil
}

// DeleteByProblem removes all testcases of a problem
func (r *TestcaseRepository) DeleteByProblem(ctx context.Context, problemID uuid.UUID) error {
	tcTbl := domain.GetTestCaseTable()
	query, args := querybuilder.NewQueryBuilder(r.schema).
		Delete(domain.TestCaseTable{}.TableName()).
		Where(fmt.Sprintf("%s = ?", tcTbl.ProblemID), problemID).
		Build()
	query = sqlx.Rebind(sqlx.DOLLAR, query)

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		r.logger.Error("Failed to delete testcases", "problemId", problemID, "error", err)
		return fmt.Errorf("failed to delete testcases: %w", err)
	}

	return nil
}
