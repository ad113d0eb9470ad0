package domain

import (
	"time"

	"github.com/google/uuid"
)

// Language identifies the programming language a submission targets
type Language string

const (
	LanguageCpp    Language = "cpp"
	LanguageC      Language = "c"
	LanguagePython Language = "python"
	LanguageJava   Language = "java"
)

// Submission is the persisted record of one graded judging run. It owns a
// snapshot of the judgement produced at submit time and is immutable after
// creation.
type Submission struct {
	ID             uuid.UUID        `db:"id"`
	UserID         uuid.UUID        `db:"user_id"`
	ProblemID      uuid.UUID        `db:"problem_id"`
	Code           string           `db:"code"`
	Language       Language         `db:"language"`
	Verdict        Verdict          `db:"verdict"`
	Results        []TestCaseResult `db:"results"`
	PassedCount    int              `db:"passed_count"`
	TotalTestcases int              `db:"total_testcases"`
	SubmittedAt    time.Time        `db:"submitted_at"`
}

// NewSubmission creates a submission snapshot from a graded judgement
func NewSubmission(userID, problemID uuid.UUID, code string, language Language, judgement *JudgementResult) *Submission {
	return &Submission{
		ID:             uuid.New(),
		UserID:         userID,
		ProblemID:      problemID,
		Code:           code,
		Language:       language,
		Verdict:        judgement.Verdict,
		Results:        judgement.Results,
		PassedCount:    judgement.Summary.Passed,
		TotalTestcases: judgement.Summary.TotalTestcases,
		SubmittedAt:    time.Now(),
	}
}

type SubmissionTable struct {
	ID             string
	UserID         string
	ProblemID      string
	Code           string
	Language       string
	Verdict        string
	Results        string
	PassedCount    string
	TotalTestcases string
	SubmittedAt    string
}

func GetSubmissionTable() SubmissionTable {
	return SubmissionTable{
		ID:             "id",
		UserID:         "user_id",
		ProblemID:      "problem_id",
		Code:           "code",
		Language:       "language",
		Verdict:        "verdict",
		Results:        "results",
		PassedCount:    "passed_count",
		TotalTestcases: "total_testcases",
		SubmittedAt:    "submitted_at",
	}
}

func (SubmissionTable) TableName() string {
	return "submissions"
}
