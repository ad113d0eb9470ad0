// package sandbox contains the HTTP client for the external execution backend
package sandbox

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"gitlab.com/algojudge.net/internal/config"
	"gitlab.com/algojudge.net/internal/core/ports/primary"
	"gitlab.com/algojudge.net/internal/core/ports/secondary"
	"gitlab.com/algojudge.net/internal/domain"
)

var _ secondary.SandboxExecutor = (*Client)(nil)

type executeRequest struct {
	Code     string          `json:"code"`
	Language domain.Language `json:"language"`
	Input    string          `json:"input"`
}

// Client dispatches executions to the sandbox over HTTP. It never surfaces a
// transport error to its caller: timeouts, unreachable backends and malformed
// responses are all folded into the returned ExecutionOutcome so the
// classifier downstream sees one shape.
type Client struct {
	cfg        *config.SandboxConfig
	httpClient *http.Client
	logger     primary.Logger
}

// NewClient creates a sandbox client bound to the configured endpoint
func NewClient(cfg *config.SandboxConfig, logger primary.Logger) *Client {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.DispatchTimeout,
		},
		logger: logger,
	}
}

// Execute runs one dispatch. The wait bound is the client timeout; it is
// strictly larger than any in-sandbox execution limit, so hitting it means
// the backend itself was unresponsive.
func (c *Client) Execute(ctx context.Context, code string, language domain.Language, stdin string) *domain.ExecutionOutcome {
	body, err := json.Marshal(executeRequest{
		Code:     code,
		Language: language,
		Input:    stdin,
	})
	if err != nil {
		return unknownOutcome(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
	if err != nil {
		return unknownOutcome(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Sandbox dispatch failed", "error", err)
		return c.classifyTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read sandbox response", "error", err)
		return unknownOutcome(err)
	}

	var outcome domain.ExecutionOutcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		c.logger.Error("Malformed sandbox response", "status", resp.StatusCode, "error", err)
		return &domain.ExecutionOutcome{
			Success:   false,
			ErrorKind: domain.ErrorKindUnknown,
			Message:   "Unexpected response from execution backend",
			Details:   err.Error(),
		}
	}

	// A structured error body is passed through unchanged; it already
	// carries a category and message. Only an error status with no usable
	// body becomes a backend error here.
	if resp.StatusCode >= http.StatusBadRequest && outcome.ErrorKind == "" && outcome.Message == "" {
		return &domain.ExecutionOutcome{
			Success:   false,
			ErrorKind: domain.ErrorKindBackend,
			Message:   "Execution backend returned an error",
		}
	}

	return &outcome
}

// classifyTransportError maps a failed round trip into an outcome. Priority
// order: wait bound elapsed, backend unreachable, everything else.
func (c *Client) classifyTransportError(err error) *domain.ExecutionOutcome {
	var urlErr *url.Error

	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &urlErr) && urlErr.Timeout():
		return &domain.ExecutionOutcome{
			Success:   false,
			ErrorKind: domain.ErrorKindTimeout,
			Message:   "Request timed out",
			Details:   "The execution backend took too long to respond",
		}
	case errors.As(err, &urlErr):
		return &domain.ExecutionOutcome{
			Success:   false,
			ErrorKind: domain.ErrorKindNetwork,
			Message:   "Cannot connect to execution backend",
		}
	default:
		return unknownOutcome(err)
	}
}

func unknownOutcome(err error) *domain.ExecutionOutcome {
	return &domain.ExecutionOutcome{
		Success:   false,
		ErrorKind: domain.ErrorKindUnknown,
		Message:   "Unexpected error occurred",
		Details:   err.Error(),
	}
}
