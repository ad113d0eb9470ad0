package problem

import (
	"context"
	"errors"
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

type fakeProblems struct {
	problems map[uuid.UUID]*domain.Problem
}

func (f *fakeProblems) Save(ctx context.Context, p *domain.Problem) error {
	f.problems[p.ID] = p
	return nil
}

func (f *fakeProblems) Get(ctx context.Context, problemID uuid.UUID) (*domain.Problem, error) {
	return f.problems[problemID], nil
}

func (f *fakeProblems) List(ctx context.Context) ([]*domain.Problem, error) {
	list := make([]*domain.Problem, 0, len(f.problems))
	for _, p := range f.problems {
		list = append(list, p)
	}
	return list, nil
}

func (f *fakeProblems) Delete(ctx context.Context, problemID uuid.UUID) error {
	delete(f.problems, problemID)
	return nil
}

type fakeTestcases struct {
	cases map[uuid.UUID][]*domain.TestCase
}

func (f *fakeTestcases) ListByProblem(ctx context.Context, problemID uuid.UUID, includeHidden bool) ([]*domain.TestCase, error) {
	list := f.cases[problemID]
	if includeHidden {
		return list, nil
	}
	visible := make([]*domain.TestCase, 0, len(list))
	for _, tc := range list {
		if !tc.IsHidden {
			visible = append(visible, tc)
		}
	}
	return visible, nil
}

func (f *fakeTestcases) Save(ctx context.Context, tc *domain.TestCase) error {
	for i, existing := range f.cases[tc.ProblemID] {
		if existing.ID == tc.ID {
			f.cases[tc.ProblemID][i] = tc
			return nil
		}
	}
	f.cases[tc.ProblemID] = append(f.cases[tc.ProblemID], tc)
	return nil
}

func (f *fakeTestcases) SaveBatch(ctx context.Context, testcases []*domain.TestCase) error {
	for _, tc := range testcases {
		if err := f.Save(ctx, tc); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeTestcases) Get(ctx context.Context, testcaseID uuid.UUID) (*domain.TestCase, error) {
	for _, list := range f.cases {
		for _, tc := range list {
			if tc.ID == testcaseID {
				return tc, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeTestcases) Delete(ctx context.Context, testcaseID uuid.UUID) error {
	for problemID, list := range f.cases {
		for i, tc := range list {
			if tc.ID == testcaseID {
				f.cases[problemID] = append(list[:i], list[i+1:]...)
				return nil
			}
		}
	}
	return nil
}

func (f *fakeTestcases) DeleteByProblem(ctx context.Context, problemID uuid.UUID) error {
	delete(f.cases, problemID)
	return nil
}

type fakeSubmissions struct {
	byProblem map[uuid.UUID][]*domain.Submission
}

func (f *fakeSubmissions) Save(ctx context.Context, s *domain.Submission) error {
	f.byProblem[s.ProblemID] = append(f.byProblem[s.ProblemID], s)
	return nil
}

func (f *fakeSubmissions) Get(ctx context.Context, submissionID uuid.UUID) (*domain.Submission, error) {
	return nil, nil
}

func (f *fakeSubmissions) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Submission, error) {
	return nil, nil
}

func (f *fakeSubmissions) ListByProblem(ctx context.Context, problemID uuid.UUID) ([]*domain.Submission, error) {
	return f.byProblem[problemID], nil
}

func (f *fakeSubmissions) Delete(ctx context.Context, submissionID uuid.UUID) error { return nil }

func (f *fakeSubmissions) DeleteByProblem(ctx context.Context, problemID uuid.UUID) error {
	delete(f.byProblem, problemID)
	return nil
}

func newService() (*ProblemService, *fakeProblems, *fakeTestcases, *fakeSubmissions) {
	problems := &fakeProblems{problems: make(map[uuid.UUID]*domain.Problem)}
	testcases := &fakeTestcases{cases: make(map[uuid.UUID][]*domain.TestCase)}
	submissions := &fakeSubmissions{byProblem: make(map[uuid.UUID][]*domain.Submission)}
	return NewProblemService(problems, testcases, submissions, nopLogger{}), problems, testcases, submissions
}

func TestCreateProblemWithInlineTestcases(t *testing.T) {
	svc, problems, testcases, _ := newService()

	created, err := svc.CreateProblem(context.Background(), &CreateProblemInput{
		Title:     "Sum",
		Statement: "Add two numbers",
		Testcases: []TestcaseInput{
			{Input: "1 2", ExpectedOutput: "3"},
			{Input: "5 5", ExpectedOutput: "10", IsHidden: true},
		},
	})
	if err != nil {
		t.Fatalf("CreateProblem: %v", err)
	}

	if created.Problem.Difficulty != domain.DifficultyEasy {
		t.Errorf("difficulty = %q, want default easy", created.Problem.Difficulty)
	}
	if _, ok := problems.problems[created.Problem.ID]; !ok {
		t.Error("problem not saved")
	}
	if len(testcases.cases[created.Problem.ID]) != 2 {
		t.Errorf("saved %d testcases, want 2", len(testcases.cases[created.Problem.ID]))
	}
}

func TestGetProblemNotFound(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.GetProblem(context.Background(), uuid.New(), false)
	if !errors.Is(err, errs.ProblemNotFound) {
		t.Errorf("err = %v, want %v", err, errs.ProblemNotFound)
	}
}

func TestGetProblemFiltersHiddenTestcases(t *testing.T) {
	svc, problems, testcases, _ := newService()

	p := domain.NewProblem("Sum", "", domain.DifficultyEasy)
	problems.problems[p.ID] = p
	testcases.cases[p.ID] = []*domain.TestCase{
		domain.NewTestCase(p.ID, "1", "1", false),
		domain.NewTestCase(p.ID, "2", "2", true),
	}

	view, err := svc.GetProblem(context.Background(), p.ID, false)
	if err != nil {
		t.Fatalf("GetProblem: %v", err)
	}
	if len(view.Testcases) != 1 {
		t.Errorf("visible testcases = %d, want 1", len(view.Testcases))
	}

	full, err := svc.GetProblem(context.Background(), p.ID, true)
	if err != nil {
		t.Fatalf("GetProblem: %v", err)
	}
	if len(full.Testcases) != 2 {
		t.Errorf("full testcases = %d, want 2", len(full.Testcases))
	}
}

func TestUpdateProblemKeepsEmptyFields(t *testing.T) {
	svc, problems, _, _ := newService()

	p := domain.NewProblem("Sum", "Add numbers", domain.DifficultyEasy)
	problems.problems[p.ID] = p

	updated, err := svc.UpdateProblem(context.Background(), p.ID, &UpdateProblemInput{
		Difficulty: domain.DifficultyHard,
	})
	if err != nil {
		t.Fatalf("UpdateProblem: %v", err)
	}
	if updated.Title != "Sum" || updated.Statement != "Add numbers" {
		t.Errorf("empty fields were overwritten: %+v", updated)
	}
	if updated.Difficulty != domain.DifficultyHard {
		t.Errorf("difficulty = %q, want hard", updated.Difficulty)
	}
}

func TestDeleteProblemCascades(t *testing.T) {
	svc, problems, testcases, submissions := newService()

	p := domain.NewProblem("Sum", "", domain.DifficultyEasy)
	problems.problems[p.ID] = p
	testcases.cases[p.ID] = []*domain.TestCase{domain.NewTestCase(p.ID, "1", "1", false)}
	submissions.byProblem[p.ID] = []*domain.Submission{{ID: uuid.New(), ProblemID: p.ID}}

	if err := svc.DeleteProblem(context.Background(), p.ID); err != nil {
		t.Fatalf("DeleteProblem: %v", err)
	}

	if _, ok := problems.problems[p.ID]; ok {
		t.Error("problem still present")
	}
	if len(testcases.cases[p.ID]) != 0 {
		t.Error("testcases not cascaded")
	}
	if len(submissions.byProblem[p.ID]) != 0 {
		t.Error("submissions not cascaded")
	}
}

func TestDeleteProblemNotFound(t *testing.T) {
	svc, _, _, _ := newService()

	err := svc.DeleteProblem(context.Background(), uuid.New())
	if !errors.Is(err, errs.ProblemNotFound) {
		t.Errorf("err = %v, want %v", err, errs.ProblemNotFound)
	}
}

func TestUpdateTestcaseNotFound(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.UpdateTestcase(context.Background(), uuid.New(), &TestcaseInput{})
	if !errors.Is(err, errs.TestcaseNotFound) {
		t.Errorf("err = %v, want %v", err, errs.TestcaseNotFound)
	}
}

func TestCreateTestcaseRequiresProblem(t *testing.T) {
	svc, _, _, _ := newService()

	_, err := svc.CreateTestcase(context.Background(), uuid.New(), &TestcaseInput{Input: "1"})
	if !errors.Is(err, errs.ProblemNotFound) {
		t.Errorf("err = %v, want %v", err, errs.ProblemNotFound)
	}
}
