package judge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"gitlab.com/algojudge.net/internal/domain"
	"gitlab.com/algojudge.net/internal/static/errs"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...interface{})  {}
func (nopLogger) Error(msg string, args ...interface{}) {}
func (nopLogger) Debug(msg string, args ...interface{}) {}
func (nopLogger) Warn(msg string, args ...interface{})  {}

type fakeTestcases struct {
	cases             []*domain.TestCase
	lastIncludeHidden bool
}

func (f *fakeTestcases) ListByProblem(ctx context.Context, problemID uuid.UUID, includeHidden bool) ([]*domain.TestCase, error) {
	f.lastIncludeHidden = includeHidden
	if includeHidden {
		return f.cases, nil
	}
	visible := make([]*domain.TestCase, 0, len(f.cases))
	for _, tc := range f.cases {
		if !tc.IsHidden {
			visible = append(visible, tc)
		}
	}
	return visible, nil
}

func (f *fakeTestcases) Save(ctx context.Context, testcase *domain.TestCase) error { return nil }
func (f *fakeTestcases) SaveBatch(ctx context.Context, testcases []*domain.TestCase) error {
	return nil
}
func (f *fakeTestcases) Get(ctx context.Context, testcaseID uuid.UUID) (*domain.TestCase, error) {
	return nil, nil
}
func (f *fakeTestcases) Delete(ctx context.Context, testcaseID uuid.UUID) error { return nil }
func (f *fakeTestcases) DeleteByProblem(ctx context.Context, problemID uuid.UUID) error {
	return nil
}

type fakeSubmissions struct {
	saved   []*domain.Submission
	saveErr error
}

func (f *fakeSubmissions) Save(ctx context.Context, submission *domain.Submission) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, submission)
	return nil
}

func (f *fakeSubmissions) Get(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	return nil, nil
}
func (f *fakeSubmissions) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	return nil, nil
}
func (f *fakeSubmissions) ListByProblem(ctx context.Context, problemID uuid.UUID) ([]*domain.Submission, error) {
	return nil, nil
}
func (f *fakeSubmissions) Delete(ctx context.Context, submissionID uuid.UUID) error { return nil }
func (f *fakeSubmissions) DeleteByProblem(ctx context.Context, problemID uuid.UUID) error {
	return nil
}

type fakeExecutor struct {
	outcomes []*domain.ExecutionOutcome
	calls    int
	language domain.Language
}

func (f *fakeExecutor) Execute(ctx context.Context, code string, language domain.Language, stdin string) *domain.ExecutionOutcome {
	f.language = language
	outcome := f.outcomes[f.calls]
	f.calls++
	return outcome
}

func pass(output string) *domain.ExecutionOutcome {
	return &domain.ExecutionOutcome{Success: true, Output: output}
}

func fail(kind domain.ErrorKind) *domain.ExecutionOutcome {
	return &domain.ExecutionOutcome{Success: false, ErrorKind: kind}
}

func visibleCase(input, expected string) *domain.TestCase {
	return &domain.TestCase{ID: uuid.New(), Input: input, ExpectedOutput: expected}
}

func hiddenCase(input, expected string) *domain.TestCase {
	tc := visibleCase(input, expected)
	tc.IsHidden = true
	return tc
}

func newService(cases []*domain.TestCase, outcomes []*domain.ExecutionOutcome) (*JudgeService, *fakeTestcases, *fakeSubmissions, *fakeExecutor) {
	testcases := &fakeTestcases{cases: cases}
	submissions := &fakeSubmissions{}
	executor := &fakeExecutor{outcomes: outcomes}
	return NewJudgeService(testcases, submissions, executor, nopLogger{}), testcases, submissions, executor
}

func judgeRequest() *JudgeRequest {
	return &JudgeRequest{
		ProblemID: uuid.New(),
		Code:      "int main() {}",
		Language:  domain.LanguageCpp,
	}
}

func TestRunCodeValidation(t *testing.T) {
	svc, _, _, _ := newService(nil, nil)

	_, err := svc.RunCode(context.Background(), &JudgeRequest{ProblemID: uuid.New(), Code: "   \n "})
	if !errors.Is(err, errs.EmptyCode) {
		t.Errorf("blank code: err = %v, want %v", err, errs.EmptyCode)
	}

	_, err = svc.RunCode(context.Background(), &JudgeRequest{Code: "x"})
	if !errors.Is(err, errs.MissingProblemID) {
		t.Errorf("missing problem: err = %v, want %v", err, errs.MissingProblemID)
	}
}

func TestRunCodeDefaultsLanguage(t *testing.T) {
	svc, _, _, executor := newService(
		[]*domain.TestCase{visibleCase("1", "1")},
		[]*domain.ExecutionOutcome{pass("1")},
	)

	req := judgeRequest()
	req.Language = ""
	if _, err := svc.RunCode(context.Background(), req); err != nil {
		t.Fatalf("RunCode: %v", err)
	}
	if executor.language != domain.LanguageCpp {
		t.Errorf("dispatched language = %q, want %q", executor.language, domain.LanguageCpp)
	}
}

func TestRunCodeNoTestcases(t *testing.T) {
	svc, _, _, _ := newService(nil, nil)

	_, err := svc.RunCode(context.Background(), judgeRequest())
	if !errors.Is(err, errs.NoTestcases) {
		t.Errorf("err = %v, want %v", err, errs.NoTestcases)
	}
}

func TestRunCodeUsesOnlyVisibleTestcases(t *testing.T) {
	svc, testcases, _, executor := newService(
		[]*domain.TestCase{visibleCase("1", "1"), hiddenCase("2", "2")},
		[]*domain.ExecutionOutcome{pass("1")},
	)

	result, err := svc.RunCode(context.Background(), judgeRequest())
	if err != nil {
		t.Fatalf("RunCode: %v", err)
	}
	if testcases.lastIncludeHidden {
		t.Error("trial run requested hidden testcases")
	}
	if executor.calls != 1 {
		t.Errorf("executor calls = %d, want 1", executor.calls)
	}
	if result.Summary.TotalTestcases != 1 {
		t.Errorf("total = %d, want 1", result.Summary.TotalTestcases)
	}
}

func TestRunCodeAllPassed(t *testing.T) {
	svc, _, _, _ := newService(
		[]*domain.TestCase{visibleCase("1", "2"), visibleCase("3", "4")},
		[]*domain.ExecutionOutcome{pass("2\n"), pass("4")},
	)

	result, err := svc.RunCode(context.Background(), judgeRequest())
	if err != nil {
		t.Fatalf("RunCode: %v", err)
	}
	if result.Verdict != domain.VerdictAccepted {
		t.Errorf("verdict = %q, want %q", result.Verdict, domain.VerdictAccepted)
	}
	if result.FirstError != nil {
		t.Errorf("firstError = %+v, want nil", result.FirstError)
	}
	if result.Summary.Passed != 2 || result.Summary.Failed != 0 || result.Summary.Errors != 0 {
		t.Errorf("summary = %+v, want 2 passed", result.Summary)
	}
	if result.Results[0].Verdict != domain.VerdictPassed {
		t.Errorf("row verdict = %q, want %q", result.Results[0].Verdict, domain.VerdictPassed)
	}
	if result.Summary.Score != "" {
		t.Errorf("trial run carries score %q, want none", result.Summary.Score)
	}
}

func TestRunCodeContinuesAfterErrorsAndLastErrorWins(t *testing.T) {
	svc, _, _, executor := newService(
		[]*domain.TestCase{visibleCase("1", "1"), visibleCase("2", "2"), visibleCase("3", "3")},
		[]*domain.ExecutionOutcome{
			fail(domain.ErrorKindRuntime),
			pass("2"),
			fail(domain.ErrorKindTimeout),
		},
	)

	result, err := svc.RunCode(context.Background(), judgeRequest())
	if err != nil {
		t.Fatalf("RunCode: %v", err)
	}
	if executor.calls != 3 {
		t.Errorf("executor calls = %d, want 3 (trial run continues after errors)", executor.calls)
	}
	if result.Verdict != domain.VerdictTimeLimitExceeded {
		t.Errorf("verdict = %q, want %q (last error decides)", result.Verdict, domain.VerdictTimeLimitExceeded)
	}
	if result.FirstError == nil || result.FirstError.Verdict != domain.VerdictRuntimeError {
		t.Errorf("firstError = %+v, want the first runtime error", result.FirstError)
	}
	if result.Summary.Errors != 2 || result.Summary.Passed != 1 {
		t.Errorf("summary = %+v, want 2 errors and 1 passed", result.Summary)
	}
}

func TestRunCodeStopsOnCompilationError(t *testing.T) {
	svc, _, _, executor := newService(
		[]*domain.TestCase{visibleCase("1", "1"), visibleCase("2", "2")},
		[]*domain.ExecutionOutcome{fail(domain.ErrorKindCompilation)},
	)

	result, err := svc.RunCode(context.Background(), judgeRequest())
	if err != nil {
		t.Fatalf("RunCode: %v", err)
	}
	if executor.calls != 1 {
		t.Errorf("executor calls = %d, want 1 (compilation failure short-circuits)", executor.calls)
	}
	if result.Verdict != domain.VerdictCompilationError {
		t.Errorf("verdict = %q, want %q", result.Verdict, domain.VerdictCompilationError)
	}
	if len(result.Results) != 1 {
		t.Errorf("results = %d rows, want 1", len(result.Results))
	}
	if result.Summary.TotalTestcases != 2 {
		t.Errorf("total = %d, want 2", result.Summary.TotalTestcases)
	}
}

func TestRunCodeWrongAnswerKeepsRawOutput(t *testing.T) {
	svc, _, _, _ := newService(
		[]*domain.TestCase{visibleCase("1", "42")},
		[]*domain.ExecutionOutcome{pass("41\n")},
	)

	result, err := svc.RunCode(context.Background(), judgeRequest())
	if err != nil {
		t.Fatalf("RunCode: %v", err)
	}
	if result.Verdict != domain.VerdictWrongAnswer {
		t.Errorf("verdict = %q, want %q", result.Verdict, domain.VerdictWrongAnswer)
	}
	row := result.Results[0]
	if row.Got != "41" {
		t.Errorf("got column = %q, want the trimmed actual output", row.Got)
	}
	if row.Details != "Expected: 42\nGot: 41" {
		t.Errorf("details = %q", row.Details)
	}
}

func TestSubmitSolutionAllPassed(t *testing.T) {
	svc, testcases, submissions, _ := newService(
		[]*domain.TestCase{visibleCase("1", "1"), hiddenCase("2", "2")},
		[]*domain.ExecutionOutcome{pass("1"), pass("2")},
	)
	userID := uuid.New()

	submission, result, err := svc.SubmitSolution(context.Background(), userID, judgeRequest())
	if err != nil {
		t.Fatalf("SubmitSolution: %v", err)
	}
	if !testcases.lastIncludeHidden {
		t.Error("graded run did not request hidden testcases")
	}
	if result.Verdict != domain.VerdictAccepted {
		t.Errorf("verdict = %q, want %q", result.Verdict, domain.VerdictAccepted)
	}
	if result.Summary.Score != "2/2" {
		t.Errorf("score = %q, want 2/2", result.Summary.Score)
	}
	if len(submissions.saved) != 1 {
		t.Fatalf("saved %d submissions, want 1", len(submissions.saved))
	}
	if submission.UserID != userID {
		t.Errorf("submission owner = %v, want %v", submission.UserID, userID)
	}
	if submission.PassedCount != 2 || submission.TotalTestcases != 2 {
		t.Errorf("submission counts = %d/%d, want 2/2", submission.PassedCount, submission.TotalTestcases)
	}

	hiddenRow := result.Results[1]
	if hiddenRow.Input != domain.HiddenPlaceholder || hiddenRow.Expected != domain.HiddenPlaceholder {
		t.Errorf("hidden row not redacted: input=%q expected=%q", hiddenRow.Input, hiddenRow.Expected)
	}
}

func TestSubmitSolutionStopsAtFirstWrongAnswer(t *testing.T) {
	svc, _, _, executor := newService(
		[]*domain.TestCase{visibleCase("1", "1"), visibleCase("2", "2"), visibleCase("3", "3")},
		[]*domain.ExecutionOutcome{pass("1"), pass("9")},
	)

	_, result, err := svc.SubmitSolution(context.Background(), uuid.New(), judgeRequest())
	if err != nil {
		t.Fatalf("SubmitSolution: %v", err)
	}
	if executor.calls != 2 {
		t.Errorf("executor calls = %d, want 2 (graded run fails fast)", executor.calls)
	}
	if result.Verdict != domain.VerdictWrongAnswer {
		t.Errorf("verdict = %q, want %q", result.Verdict, domain.VerdictWrongAnswer)
	}
	if result.Summary.Score != "1/3" {
		t.Errorf("score = %q, want 1/3", result.Summary.Score)
	}

	failedRow := result.Results[1]
	if failedRow.Got != "Expected: 2\nGot: 9" {
		t.Errorf("graded mismatch got = %q, want the diff text", failedRow.Got)
	}
}

func TestSubmitSolutionHiddenMismatchRedactsExpected(t *testing.T) {
	svc, _, _, executor := newService(
		[]*domain.TestCase{visibleCase("1", "1"), hiddenCase("2", "secret-output")},
		[]*domain.ExecutionOutcome{pass("1"), pass("wrong")},
	)

	_, result, err := svc.SubmitSolution(context.Background(), uuid.New(), judgeRequest())
	if err != nil {
		t.Fatalf("SubmitSolution: %v", err)
	}
	if executor.calls != 2 {
		t.Errorf("executor calls = %d, want 2", executor.calls)
	}
	if result.Verdict != domain.VerdictWrongAnswer {
		t.Errorf("verdict = %q, want %q", result.Verdict, domain.VerdictWrongAnswer)
	}

	hiddenRow := result.Results[1]
	if !hiddenRow.IsHidden {
		t.Fatal("second row not marked hidden")
	}
	wantDiff := "Expected: " + domain.HiddenPlaceholder + "\nGot: wrong"
	if hiddenRow.Details != wantDiff {
		t.Errorf("details = %q, want %q", hiddenRow.Details, wantDiff)
	}
	if hiddenRow.Got != wantDiff {
		t.Errorf("got = %q, want %q", hiddenRow.Got, wantDiff)
	}
	if strings.Contains(hiddenRow.Details, "secret-output") || strings.Contains(hiddenRow.Got, "secret-output") {
		t.Error("hidden expected output leaked into the mismatch diff")
	}
	if hiddenRow.Expected != domain.HiddenPlaceholder {
		t.Errorf("expected field = %q, want %q", hiddenRow.Expected, domain.HiddenPlaceholder)
	}
}

func TestSubmitSolutionStopsAtFirstError(t *testing.T) {
	svc, _, _, executor := newService(
		[]*domain.TestCase{visibleCase("1", "1"), visibleCase("2", "2")},
		[]*domain.ExecutionOutcome{fail(domain.ErrorKindRuntime)},
	)

	_, result, err := svc.SubmitSolution(context.Background(), uuid.New(), judgeRequest())
	if err != nil {
		t.Fatalf("SubmitSolution: %v", err)
	}
	if executor.calls != 1 {
		t.Errorf("executor calls = %d, want 1", executor.calls)
	}
	if result.Verdict != domain.VerdictRuntimeError {
		t.Errorf("verdict = %q, want %q", result.Verdict, domain.VerdictRuntimeError)
	}
	if result.Summary.Errors != 1 {
		t.Errorf("summary errors = %d, want 1", result.Summary.Errors)
	}
}

func TestSubmitSolutionSaveFailureStillReturnsJudgement(t *testing.T) {
	svc, _, submissions, _ := newService(
		[]*domain.TestCase{visibleCase("1", "1")},
		[]*domain.ExecutionOutcome{pass("1")},
	)
	submissions.saveErr = errors.New("connection refused")

	submission, result, err := svc.SubmitSolution(context.Background(), uuid.New(), judgeRequest())
	if !errors.Is(err, errs.SavingSubmission) {
		t.Errorf("err = %v, want %v", err, errs.SavingSubmission)
	}
	if submission == nil || result == nil {
		t.Fatal("judgement must survive a persistence failure")
	}
	if result.Verdict != domain.VerdictAccepted {
		t.Errorf("verdict = %q, want %q", result.Verdict, domain.VerdictAccepted)
	}
}
