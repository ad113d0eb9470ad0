package testcasecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"gitlab.com/algojudge.net/internal/core/ports/primary"
	"gitlab.com/algojudge.net/internal/core/ports/secondary"
	"gitlab.com/algojudge.net/internal/domain"
)

const (
	testcaseKeyPrefix  = "testcases:"
	testcaseExpiration = 5 * time.Minute
)

var _ secondary.TestcaseRepository = (*TestcaseCache)(nil)

// TestcaseCache is a read-through Redis cache in front of a testcase
// repository. Judging reads the same testcase set for every run of a
// problem, so the full set (hidden included) is cached per problem and
// filtered in memory. Writes go to the inner repository and drop the
// cached entry.
type TestcaseCache struct {
	inner       secondary.TestcaseRepository
	redisClient *redis.Client
	logger      primary.Logger
}

// New creates a testcase cache wrapping the given repository
func New(inner secondary.TestcaseRepository, redisClient *redis.Client, logger primary.Logger) *TestcaseCache {
	return &TestcaseCache{
		inner:       inner,
		redisClient: redisClient,
		logger:      logger,
	}
}

// ListByProblem retrieves a problem's testcases, serving from Redis when the
// set is cached. A cache failure falls back to the inner repository.
func (c *TestcaseCache) ListByProblem(ctx context.Context, problemID uuid.UUID, includeHidden bool) ([]*domain.TestCase, error) {
	key := fmt.Sprintf("%s%s", testcaseKeyPrefix, problemID)

	cached, err := c.redisClient.Get(ctx, key).Bytes()
	if err == nil {
		var testcases []*domain.TestCase
		if err := json.Unmarshal(cached, &testcases); err == nil {
			return filterHidden(testcases, includeHidden), nil
		}
		c.logger.Warn("Discarding unreadable testcase cache entry", "problemId", problemID)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.Warn("Failed to read testcase cache", "problemId", problemID, "error", err)
	}

	testcases, err := c.inner.ListByProblem(ctx, problemID, true)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(testcases); err == nil {
		if err := c.redisClient.Set(ctx, key, data, testcaseExpiration).Err(); err != nil {
			c.logger.Warn("Failed to write testcase cache", "problemId", problemID, "error", err)
		}
	}

	return filterHidden(testcases, includeHidden), nil
}

// Save writes through to the inner repository and invalidates the problem's
// cached set
func (c *TestcaseCache) Save(ctx context.Context, testcase *domain.TestCase) error {
	if err := c.inner.Save(ctx, testcase); err != nil {
		return err
	}
	c.invalidate(ctx, testcase.ProblemID)
	return nil
}

// SaveBatch writes through to the inner repository and invalidates every
// touched problem
func (c *TestcaseCache) SaveBatch(ctx context.Context, testcases []*domain.TestCase) error {
	if err := c.inner.SaveBatch(ctx, testcases); err != nil {
		return err
	}
	seen := make(map[uuid.UUID]struct{}, 1)
	for _, tc := range testcases {
		if _, ok := seen[tc.ProblemID]; ok {
			continue
		}
		seen[tc.ProblemID] = struct{}{}
		c.invalidate(ctx, tc.ProblemID)
	}
	return nil
}

// Get retrieves a testcase by ID from the inner repository
func (c *TestcaseCache) Get(ctx context.Context, testcaseID uuid.UUID) (*domain.TestCase, error) {
	return c.inner.Get(ctx, testcaseID)
}

// Delete removes a testcase and invalidates its problem's cached set
func (c *TestcaseCache) Delete(ctx context.Context, testcaseID uuid.UUID) error {
	testcase, err := c.inner.Get(ctx, testcaseID)
	if err != nil {
		return err
	}

	if err := c.inner.Delete(ctx, testcaseID); err != nil {
		return err
	}

	if testcase != nil {
		c.invalidate(ctx, testcase.ProblemID)
	}
	return nil
}

// DeleteByProblem removes all testcases of a problem and drops its cache entry
func (c *TestcaseCache) DeleteByProblem(ctx context.Context, problemID uuid.UUID) error {
	if err := c.inner.DeleteByProblem(ctx, problemID); err != nil {
		return err
	}
	c.invalidate(ctx, problemID)
	return nil
}

func (c *TestcaseCache) invalidate(ctx context.Context, problemID uuid.UUID) {
	key := fmt.Sprintf("%s%s", testcaseKeyPrefix, problemID)
	if err := c.redisClient.Del(ctx, key).Err(); err != nil {
		c.logger.Warn("Failed to invalidate testcase cache", "problemId", problemID, "error", err)
	}
}

func filterHidden(testcases []*domain.TestCase, includeHidden bool) []*domain.TestCase {
	if includeHidden {
		return testcases
	}
	visible := make([]*domain.TestCase, 0, len(testcases))
	for _, tc := range testcases {
		if !tc.IsHidden {
			visible = append(visible, tc)
		}
	}
	return visible
}
