package errs

import "errors"

var (
	EmptyCode        = errors.New("code cannot be empty")
	MissingProblemID = errors.New("problem ID is required")
	NoTestcases      = errors.New("no testcases found for this problem")
	ProblemNotFound  = errors.New("problem not found")
	TestcaseNotFound = errors.New("testcase not found")
	SolutionNotFound = errors.New("solution not found")

	// SavingSubmission marks a graded run whose judgement succeeded but whose
	// persistence failed. The computed judgement still travels with it.
	SavingSubmission = errors.New("failed to save submission")
)
