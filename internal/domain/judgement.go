package domain

// ResultStatus is the per-testcase outcome bucket
type ResultStatus string

const (
	ResultStatusPassed ResultStatus = "Passed"
	ResultStatusFailed ResultStatus = "Failed"
	ResultStatusError  ResultStatus = "Error"
)

// HiddenPlaceholder replaces the input and expected output of hidden
// testcases in every result row handed back to a caller.
const HiddenPlaceholder = "[Hidden]"

// TestCaseResult is the outcome of evaluating one testcase. Index is 1-based
// in evaluation order. Created once, never mutated.
type TestCaseResult struct {
	Index           int          `json:"testcase"`
	Input           string       `json:"input"`
	Expected        string       `json:"expected"`
	Got             string       `json:"got"`
	Status          ResultStatus `json:"status"`
	Verdict         Verdict      `json:"verdict"`
	Details         string       `json:"details"`
	ExecutionTimeMs int64        `json:"executionTime"`
	MemoryUsedBytes int64        `json:"memoryUsed"`
	IsHidden        bool         `json:"isHidden"`
}

// JudgementSummary aggregates the result counts of one judging invocation.
// Score is only populated in graded mode, as "passed/total".
type JudgementSummary struct {
	TotalTestcases int    `json:"totalTestcases"`
	Passed         int    `json:"passed"`
	Failed         int    `json:"failed"`
	Errors         int    `json:"errors"`
	Score          string `json:"score,omitempty"`
}

// JudgementResult is the aggregate produced by one judging invocation.
// FirstError is the earliest JudgedError encountered, kept for the caller
// even when a later error determines the overall verdict.
type JudgementResult struct {
	Verdict    Verdict          `json:"verdict"`
	Results    []TestCaseResult `json:"results"`
	Summary    JudgementSummary `json:"summary"`
	FirstError *JudgedError     `json:"error,omitempty"`
}
