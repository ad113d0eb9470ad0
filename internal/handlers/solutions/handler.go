package solutions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/algojudge.net/internal/core/ports/primary"
	"gitlab.com/algojudge.net/internal/core/services/judge"
	"gitlab.com/algojudge.net/internal/domain"
	"gitlab.com/algojudge.net/internal/handlers"
	"gitlab.com/algojudge.net/internal/static/errs"
)

// SolutionHandler handles judging API requests
type SolutionHandler struct {
	judgeService judge.IJudgeService
	logger       primary.Logger
	debugMode    bool
}

// NewSolutionHandler creates a new solution handler
func NewSolutionHandler(judgeService judge.IJudgeService, logger primary.Logger, debugMode bool) *SolutionHandler {
	return &SolutionHandler{
		judgeService: judgeService,
		logger:       logger,
		debugMode:    debugMode,
	}
}

// RegisterRoutes registers the API routes for SolutionHandler
func (h *SolutionHandler) RegisterRoutes(router *mux.Router, mw *handlers.MiddlewareProvider) {
	router.HandleFunc("/api/solutions/run", mw.Authenticate(h.RunCode)).Methods("POST")
	router.HandleFunc("/api/solutions", mw.Authenticate(h.SubmitSolution)).Methods("POST")
	router.HandleFunc("/api/solutions/me", mw.Authenticate(h.GetMySubmissions)).Methods("GET")
	router.HandleFunc("/api/solutions/problem/{problemId}", mw.RequireAdmin(h.GetProblemSubmissions)).Methods("GET")
	router.HandleFunc("/api/solutions/{solutionId}", mw.RequireAdmin(h.DeleteSubmission)).Methods("DELETE")
}

// SolutionRequest represents a judging request
type SolutionRequest struct {
	ProblemID string `json:"problemId"`
	Code      string `json:"code"`
	Language  string `json:"language"`
}

// SubmitResponse is a graded judgement together with its persisted record's ID
type SubmitResponse struct {
	SubmissionID string `json:"submissionId"`
	*domain.JudgementResult
}

func (h *SolutionHandler) decodeJudgeRequest(w http.ResponseWriter, r *http.Request) (*judge.JudgeRequest, bool) {
	var req SolutionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode solution request", "error", err)
		h.writeInvalidInput(w, "Invalid request body")
		return nil, false
	}

	problemID := uuid.Nil
	if req.ProblemID != "" {
		parsed, err := uuid.Parse(req.ProblemID)
		if err != nil {
			h.writeInvalidInput(w, "Invalid problem ID")
			return nil, false
		}
		problemID = parsed
	}

	return &judge.JudgeRequest{
		ProblemID: problemID,
		Code:      req.Code,
		Language:  domain.Language(req.Language),
	}, true
}

// RunCode judges code against a problem's visible testcases without
// persisting anything
func (h *SolutionHandler) RunCode(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeJudgeRequest(w, r)
	if !ok {
		return
	}

	result, err := h.judgeService.RunCode(r.Context(), req)
	if err != nil {
		h.writeJudgeError(w, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, result)
}

// SubmitSolution judges code against a problem's full testcase set and
// records the outcome for the authenticated user
func (h *SolutionHandler) SubmitSolution(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeJudgeRequest(w, r)
	if !ok {
		return
	}

	payload, ok := handlers.AuthFrom(r.Context())
	if !ok {
		handlers.ResponseError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		handlers.ResponseError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	submission, result, err := h.judgeService.SubmitSolution(r.Context(), userID, req)
	if err != nil {
		// Judging finished, only persistence failed. The computed
		// judgement still goes back to the caller.
		if errors.Is(err, errs.SavingSubmission) && result != nil {
			handlers.ResponseWithJson(w, http.StatusInternalServerError, map[string]interface{}{
				"error":  errs.SavingSubmission.Error(),
				"result": result,
			})
			return
		}
		h.writeJudgeError(w, err)
		return
	}

	handlers.ResponseWithJson(w, http.StatusCreated, &SubmitResponse{
		SubmissionID:    submission.ID.String(),
		JudgementResult: result,
	})
}

// GetMySubmissions retrieves the authenticated user's submissions
func (h *SolutionHandler) GetMySubmissions(w http.ResponseWriter, r *http.Request) {
	payload, ok := handlers.AuthFrom(r.Context())
	if !ok {
		handlers.ResponseError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	userID, err := uuid.Parse(payload.UserID)
	if err != nil {
		handlers.ResponseError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	submissions, err := h.judgeService.ListUserSubmissions(r.Context(), userID)
	if err != nil {
		h.logger.Error("Failed to list user submissions", "userId", userID, "error", err)
		handlers.ResponseError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string]interface{}{"submissions": submissions})
}

// GetProblemSubmissions retrieves all submissions for a problem
func (h *SolutionHandler) GetProblemSubmissions(w http.ResponseWriter, r *http.Request) {
	problemID, ok := handlers.PathUUID(w, r, "problemId")
	if !ok {
		return
	}

	submissions, err := h.judgeService.ListProblemSubmissions(r.Context(), problemID)
	if err != nil {
		h.logger.Error("Failed to list problem submissions", "problemId", problemID, "error", err)
		handlers.ResponseError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string]interface{}{"submissions": submissions})
}

// DeleteSubmission removes a submission
func (h *SolutionHandler) DeleteSubmission(w http.ResponseWriter, r *http.Request) {
	solutionID, ok := handlers.PathUUID(w, r, "solutionId")
	if !ok {
		return
	}

	if err := h.judgeService.DeleteSubmission(r.Context(), solutionID); err != nil {
		if errors.Is(err, errs.SolutionNotFound) {
			handlers.ResponseError(w, errs.SolutionNotFound.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to delete submission", "solutionId", solutionID, "error", err)
		handlers.ResponseError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SolutionHandler) writeInvalidInput(w http.ResponseWriter, message string) {
	handlers.ResponseWithJson(w, http.StatusBadRequest, map[string]interface{}{
		"verdict": domain.VerdictInvalidInput,
		"error":   message,
	})
}

// writeJudgeError maps judging errors onto the verdict-bearing error shape
// clients consume
func (h *SolutionHandler) writeJudgeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.EmptyCode), errors.Is(err, errs.MissingProblemID):
		h.writeInvalidInput(w, err.Error())
	case errors.Is(err, errs.NoTestcases):
		handlers.ResponseError(w, errs.NoTestcases.Error(), http.StatusNotFound)
	default:
		h.logger.Error("Judging failed", "error", err)
		message := "Internal server error"
		if h.debugMode {
			message = err.Error()
		}
		handlers.ResponseWithJson(w, http.StatusInternalServerError, map[string]interface{}{
			"verdict": domain.VerdictSystemError,
			"error":   message,
		})
	}
}
