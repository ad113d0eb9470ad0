package judge

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gitlab.com/algojudge.net/internal/domain"
)

// Classify maps a raw execution outcome into a judged error, or nil when the
// execution succeeded. The mapping is total: every unsuccessful outcome yields
// exactly one JudgedError, unknown kinds fall back to Runtime Error.
func Classify(outcome *domain.ExecutionOutcome) *domain.JudgedError {
	if outcome.Success {
		return nil
	}

	verdict := domain.VerdictRuntimeError
	message := outcome.Message
	if message == "" {
		message = "Unknown error occurred"
	}
	details := firstNonEmpty(outcome.Details, outcome.Stderr, outcome.Message, "Unknown error occurred")

	switch outcome.ErrorKind {
	case domain.ErrorKindCompilation:
		verdict = domain.VerdictCompilationError
		message = "Code compilation failed"
		if outcome.FormattedError != "" {
			details = outcome.FormattedError
		} else if len(outcome.CompilationErrors) > 0 {
			details = joinCompilationErrors(outcome.CompilationErrors)
		}

	case domain.ErrorKindTimeout, domain.ErrorKindExecutionTimeout:
		verdict = domain.VerdictTimeLimitExceeded
		message = "Time Limit Exceeded"
		elapsed := "unknown"
		if outcome.ExecutionTimeMs > 0 {
			elapsed = strconv.FormatInt(outcome.ExecutionTimeMs, 10)
		}
		details = fmt.Sprintf("Your code took too long to execute (timeout after %sms)", elapsed)

	case domain.ErrorKindMemoryLimit:
		verdict = domain.VerdictMemoryLimitExceeded
		message = "Memory Limit Exceeded"
		used := "unknown"
		if outcome.MemoryUsedBytes > 0 {
			used = strconv.FormatInt(int64(math.Round(float64(outcome.MemoryUsedBytes)/1024)), 10)
		}
		details = fmt.Sprintf("Your code used too much memory (%sKB)", used)

	case domain.ErrorKindRuntime:
		verdict = domain.VerdictRuntimeError
		message = "Runtime Error"
		if outcome.FormattedError != "" {
			details = outcome.FormattedError
		} else if len(outcome.RuntimeErrors) > 0 {
			details = joinRuntimeErrors(outcome.RuntimeErrors)
		}

	case domain.ErrorKindOutputLimit:
		verdict = domain.VerdictOutputLimitExceeded
		message = "Output Limit Exceeded"
		details = "Your code produced too much output. The output size exceeded the maximum limit."

	case domain.ErrorKindSegfault:
		verdict = domain.VerdictRuntimeError
		message = "Segmentation Fault"
		details = "Segmentation fault - Your code tried to access memory it doesn't own. Check array bounds, pointer usage, and stack overflow."

	case domain.ErrorKindFloatingPoint:
		verdict = domain.VerdictRuntimeError
		message = "Floating Point Exception"
		details = "Division by zero or invalid floating point operation detected."

	default:
		// Covers NETWORK_ERROR, BACKEND_ERROR, UNKNOWN_ERROR and any kind a
		// future backend might add.
		verdict = domain.VerdictRuntimeError
		if outcome.Message != "" {
			message = outcome.Message
		} else {
			message = "Code execution failed"
		}
		details = firstNonEmpty(outcome.FormattedError, outcome.Stderr, outcome.Details, outcome.Message, "Unknown error occurred")
	}

	return &domain.JudgedError{
		Verdict:         verdict,
		Message:         message,
		Details:         details,
		ExecutionTimeMs: outcome.ExecutionTimeMs,
		MemoryUsedBytes: outcome.MemoryUsedBytes,
	}
}

func joinCompilationErrors(diags []domain.CompilationDiagnostic) string {
	lines := make([]string, len(diags))
	for i, diag := range diags {
		lines[i] = fmt.Sprintf("Line %d: %s", diag.Line, diag.Message)
	}
	return strings.Join(lines, "\n")
}

func joinRuntimeErrors(diags []domain.RuntimeDiagnostic) string {
	lines := make([]string, len(diags))
	for i, diag := range diags {
		lines[i] = diag.Message
	}
	return strings.Join(lines, "\n")
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
