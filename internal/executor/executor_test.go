package executor

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mcpup/internal/capability"
	mcperrors "mcpup/internal/errors"
	"mcpup/internal/logging"
	"mcpup/internal/plan"
)

func testPlan(names ...string) *plan.Plan {
	cands := make([]capability.Candidate, len(names))
	for i, n := range names {
		cands[i] = capability.Candidate{Name: n, Path: "/usr/bin/" + n}
	}
	return &plan.Plan{
		Primary:   cands[0],
		Fallbacks: cands[1:],
	}
}

func TestExecutePrimarySucceeds(t *testing.T) {
	e := New(logging.ForTest(t))

	var attempted []string
	outcomes, err := e.Execute(context.Background(), testPlan("uvx", "npm"),
		func(_ context.Context, c capability.Candidate) error {
			attempted = append(attempted, c.Name)
			return nil
		})

	require.NoError(t, err)
	assert.Equal(t, []string{"uvx"}, attempted, "fallbacks must not run after success")
	require.Len(t, outcomes, 1)
	assert.NoError(t, outcomes[0].Err)
}

func TestExecuteFallbackSucceeds(t *testing.T) {
	e := New(logging.ForTest(t))

	outcomes, err := e.Execute(context.Background(), testPlan("uvx", "pnpm", "npm"),
		func(_ context.Context, c capability.Candidate) error {
			if c.Name == "npm" {
				return nil
			}
			return errors.New("registry unreachable")
		})

	// The primary's failure is recorded, not propagated.
	require.NoError(t, err)
	require.Len(t, outcomes, 3)
	assert.ErrorIs(t, outcomes[0].Err, mcperrors.ErrStrategyFailed)
	assert.ErrorIs(t, outcomes[1].Err, mcperrors.ErrStrategyFailed)
	assert.NoError(t, outcomes[2].Err)
	assert.Equal(t, "npm", outcomes[2].Candidate)
}

func TestExecuteExhaustion(t *testing.T) {
	e := New(logging.ForTest(t))

	outcomes, err := e.Execute(context.Background(), testPlan("uvx"),
		func(_ context.Context, c capability.Candidate) error {
			return errors.New("always fails")
		})

	require.Error(t, err)
	assert.ErrorIs(t, err, mcperrors.ErrAllStrategiesFailed)
	assert.Contains(t, err.Error(), "always fails", "aggregate error names the last failure")
	assert.Len(t, outcomes, 1)
}

func TestExecuteTimeoutTreatedAsStrategyFailure(t *testing.T) {
	e := New(logging.ForTest(t), WithAttemptTimeout(10*time.Millisecond))

	start := time.Now()
	outcomes, err := e.Execute(context.Background(), testPlan("uvx", "npm"),
		func(ctx context.Context, c capability.Candidate) error {
			if c.Name == "uvx" {
				<-ctx.Done() // block until the attempt deadline fires
				return ctx.Err()
			}
			return nil
		})

	require.NoError(t, err, "timeout on the primary must fall back, not abort")
	assert.Less(t, time.Since(start), 5*time.Second, "must not hang past the timeout")
	require.Len(t, outcomes, 2)
	assert.ErrorIs(t, outcomes[0].Err, mcperrors.ErrStrategyFailed)
	assert.Equal(t, "npm", outcomes[1].Candidate)
}

func TestExecuteCanceledContextStops(t *testing.T) {
	e := New(logging.ForTest(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcomes, err := e.Execute(ctx, testPlan("uvx", "npm"),
		func(_ context.Context, _ capability.Candidate) error {
			t.Fatal("attempt must not run on a canceled context")
			return nil
		})

	require.Error(t, err)
	assert.Empty(t, outcomes)
}
