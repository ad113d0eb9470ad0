package domain

import (
	"time"

	"github.com/google/uuid"
)

// TestCase is one input/expected-output pair of a problem. Hidden testcases
// are still judged but never exposed verbatim to non-privileged callers.
// Evaluation order follows CreatedAt.
type TestCase struct {
	ID             uuid.UUID `db:"id"`
	ProblemID      uuid.UUID `db:"problem_id"`
	Input          string    `db:"input"`
	ExpectedOutput string    `db:"expected_output"`
	IsHidden       bool      `db:"is_hidden"`
	CreatedAt      time.Time `db:"created_at"`
}

// NewTestCase creates a new testcase bound to a problem
func NewTestCase(problemID uuid.UUID, input, expectedOutput string, isHidden bool) *TestCase {
	return &TestCase{
		ID:             uuid.New(),
		ProblemID:      problemID,
		Input:          input,
		ExpectedOutput: expectedOutput,
		IsHidden:       isHidden,
		CreatedAt:      time.Now(),
	}
}

type TestCaseTable struct {
	ID             string
	ProblemID      string
	Input          string
	ExpectedOutput string
	IsHidden       string
	CreatedAt      string
}

func GetTestCaseTable() TestCaseTable {
	return TestCaseTable{
		ID:             "id",
		ProblemID:      "problem_id",
		Input:          "input",
		ExpectedOutput: "expected_output",
		IsHidden:       "is_hidden",
		CreatedAt:      "created_at",
	}
}

func (TestCaseTable) TableName() string {
	return "testcases"
}
