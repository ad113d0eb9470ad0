package problems

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/algojudge.net/internal/core/ports/primary"
	"gitlab.com/algojudge.net/internal/core/services/problem"
	"gitlab.com/algojudge.net/internal/domain"
	"gitlab.com/algojudge.net/internal/handlers"
	"gitlab.com/algojudge.net/internal/static/errs"
)

// ProblemHandler handles problem and testcase management requests
type ProblemHandler struct {
	problemService problem.IProblemService
	logger         primary.Logger
}

// NewProblemHandler creates a new problem handler
func NewProblemHandler(problemService problem.IProblemService, logger primary.Logger) *ProblemHandler {
	return &ProblemHandler{
		problemService: problemService,
		logger:         logger,
	}
}

// RegisterRoutes registers the API routes for ProblemHandler
func (h *ProblemHandler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.HandleFunc("/api/problems", mw.RequireAdmin(h.CreateProblem)).Methods("POST")
	router.HandleFunc("/api/problems", mw.Authenticate(h.ListProblems)).Methods("GET")
	router.HandleFunc("/api/problems/{problemId}", mw.Authenticate(h.GetProblem)).Methods("GET")
	router.HandleFunc("/api/problems/{problemId}", mw.RequireAdmin(h.UpdateProblem)).Methods("PUT")
	router.HandleFunc("/api/problems/{problemId}", mw.RequireAdmin(h.DeleteProblem)).Methods("DELETE")

	router.HandleFunc("/api/problems/{problemId}/testcases", mw.RequireAdmin(h.CreateTestcase)).Methods("POST")
	router.HandleFunc("/api/problems/{problemId}/testcases", mw.Authenticate(h.ListTestcases)).Methods("GET")
	router.HandleFunc("/api/testcases/{testcaseId}", mw.RequireAdmin(h.UpdateTestcase)).Methods("PUT")
	router.HandleFunc("/api/testcases/{testcaseId}", mw.RequireAdmin(h.DeleteTestcase)).Methods("DELETE")
}

// TestcaseRequest represents one testcase in a management request
type TestcaseRequest struct {
	Input          string `json:"input"`
	ExpectedOutput string `json:"expectedOutput"`
	IsHidden       bool   `json:"isHidden"`
}

// CreateProblemRequest represents a problem creation request
type CreateProblemRequest struct {
	Title      string            `json:"title"`
	Statement  string            `json:"statement"`
	Difficulty string            `json:"difficulty"`
	Testcases  []TestcaseRequest `json:"testcases"`
}

// UpdateProblemRequest represents a problem update request
type UpdateProblemRequest struct {
	Title      string `json:"title"`
	Statement  string `json:"statement"`
	Difficulty string `json:"difficulty"`
}

// CreateProblem handles problem creation, optionally with inline testcases
func (h *ProblemHandler) CreateProblem(w http.ResponseWriter, r *http.Request) {
	var req CreateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		handlers.ResponseError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Title == "" {
		handlers.ResponseError(w, "Title is required", http.StatusBadRequest)
		return
	}

	input := &problem.CreateProblemInput{
		Title:      req.Title,
		Statement:  req.Statement,
		Difficulty: domain.Difficulty(req.Difficulty),
	}
	for _, tc := range req.Testcases {
		input.Testcases = append(input.Testcases, problem.TestcaseInput{
			Input:          tc.Input,
			ExpectedOutput: tc.ExpectedOutput,
			IsHidden:       tc.IsHidden,
		})
	}

	created, err := h.problemService.CreateProblem(r.Context(), input)
	if err != nil {
		h.logger.Error("Failed to create problem", "error", err)
		handlers.ResponseError(w, "Failed to create problem", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusCreated, created)
}

// ListProblems handles problem listing requests
func (h *ProblemHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	problems, err := h.problemService.ListProblems(r.Context())
	if err != nil {
		h.logger.Error("Failed to list problems", "error", err)
		handlers.ResponseError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string]interface{}{"problems": problems})
}

// GetProblem retrieves a problem with its testcases. Only admins see hidden
// testcase contents.
func (h *ProblemHandler) GetProblem(w http.ResponseWriter, r *http.Request) {
	problemID, ok := handlers.PathUUID(w, r, "problemId")
	if !ok {
		return
	}

	result, err := h.problemService.GetProblem(r.Context(), problemID, h.callerIsAdmin(r))
	if err != nil {
		h.writeProblemError(w, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, result)
}

// UpdateProblem handles problem update requests
func (h *ProblemHandler) UpdateProblem(w http.ResponseWriter, r *http.Request) {
	problemID, ok := handlers.PathUUID(w, r, "problemId")
	if !ok {
		return
	}

	var req UpdateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		handlers.ResponseError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.problemService.UpdateProblem(r.Context(), problemID, &problem.UpdateProblemInput{
		Title:      req.Title,
		Statement:  req.Statement,
		Difficulty: domain.Difficulty(req.Difficulty),
	})
	if err != nil {
		h.writeProblemError(w, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, updated)
}

// DeleteProblem removes a problem with its testcases and submissions
func (h *ProblemHandler) DeleteProblem(w http.ResponseWriter, r *http.Request) {
	problemID, ok := handlers.PathUUID(w, r, "problemId")
	if !ok {
		return
	}

	if err := h.problemService.DeleteProblem(r.Context(), problemID); err != nil {
		h.writeProblemError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateTestcase adds a testcase to a problem
func (h *ProblemHandler) CreateTestcase(w http.ResponseWriter, r *http.Request) {
	problemID, ok := handlers.PathUUID(w, r, "problemId")
	if !ok {
		return
	}

	var req TestcaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		handlers.ResponseError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	created, err := h.problemService.CreateTestcase(r.Context(), problemID, &problem.TestcaseInput{
		Input:          req.Input,
		ExpectedOutput: req.ExpectedOutput,
		IsHidden:       req.IsHidden,
	})
	if err != nil {
		h.writeProblemError(w, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusCreated, created)
}

// ListTestcases retrieves a problem's testcases. Only admins see hidden ones.
func (h *ProblemHandler) ListTestcases(w http.ResponseWriter, r *http.Request) {
	problemID, ok := handlers.PathUUID(w, r, "problemId")
	if !ok {
		return
	}

	testcases, err := h.problemService.ListTestcases(r.Context(), problemID, h.callerIsAdmin(r))
	if err != nil {
		h.writeProblemError(w, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string]interface{}{"testcases": testcases})
}

// UpdateTestcase handles testcase update requests
func (h *ProblemHandler) UpdateTestcase(w http.ResponseWriter, r *http.Request) {
	testcaseID, ok := handlers.PathUUID(w, r, "testcaseId")
	if !ok {
		return
	}

	var req TestcaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		handlers.ResponseError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	updated, err := h.problemService.UpdateTestcase(r.Context(), testcaseID, &problem.TestcaseInput{
		Input:          req.Input,
		ExpectedOutput: req.ExpectedOutput,
		IsHidden:       req.IsHidden,
	})
	if err != nil {
		h.writeProblemError(w, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, updated)
}

// DeleteTestcase removes a testcase
func (h *ProblemHandler) DeleteTestcase(w http.ResponseWriter, r *http.Request) {
	testcaseID, ok := handlers.PathUUID(w, r, "testcaseId")
	if !ok {
		return
	}

	if err := h.problemService.DeleteTestcase(r.Context(), testcaseID); err != nil {
		h.writeProblemError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProblemHandler) callerIsAdmin(r *http.Request) bool {
	payload, ok := handlers.AuthFrom(r.Context())
	return ok && payload.Role == domain.RoleAdmin
}

func (h *ProblemHandler) writeProblemError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ProblemNotFound):
		handlers.ResponseError(w, errs.ProblemNotFound.Error(), http.StatusNotFound)
	case errors.Is(err, errs.TestcaseNotFound):
		handlers.ResponseError(w, errs.TestcaseNotFound.Error(), http.StatusNotFound)
	default:
		h.logger.Error("Problem request failed", "error", err)
		handlers.ResponseError(w, "Internal server error", http.StatusInternalServerError)
	}
}
