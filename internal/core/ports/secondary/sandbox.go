package secondary

import (
	"context"

	"gitlab.com/algojudge.net/internal/domain"
)

// SandboxExecutor dispatches one execution to the external sandbox. It never
// returns a transport error: every failure mode is folded into the returned
// outcome so the classifier sees a single normalized shape.
type SandboxExecutor interface {
	Execute(ctx context.Context, code string, language domain.Language, stdin string) *domain.ExecutionOutcome
}
