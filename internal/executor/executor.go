package executor

import (
	"context"
	"log/slog"
	"time"

	"github.com/cockroachdb/errors"

	"mcpup/internal/capability"
	mcperrors "mcpup/internal/errors"
	"mcpup/internal/plan"
)

// DefaultAttemptTimeout bounds each install-type attempt.
const DefaultAttemptTimeout = 300 * time.Second

// Attempt carries out one strategy with one candidate. The executor is
// agnostic to what the attempt does: the same loop drives installs and
// launches. A nil return means success and short-circuits the plan.
type Attempt func(ctx context.Context, c capability.Candidate) error

// Outcome records the result of a single attempt for per-item reporting.
type Outcome struct {
	// Candidate is the name of the candidate attempted.
	Candidate string

	// Err is nil for the winning attempt and the failure otherwise.
	Err error

	// Duration is how long the attempt ran.
	Duration time.Duration
}

// Executor runs a plan's strategies in order until one succeeds.
type Executor struct {
	logger         *slog.Logger
	attemptTimeout time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithAttemptTimeout overrides the per-attempt timeout.
func WithAttemptTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.attemptTimeout = d
		}
	}
}

// New creates an Executor writing progress to the given logger.
func New(logger *slog.Logger, opts ...Option) *Executor {
	e := &Executor{
		logger:         logger,
		attemptTimeout: DefaultAttemptTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute tries the plan's primary candidate, then each fallback in
// order, until an attempt succeeds. Every attempt is bounded by the
// executor's timeout; a timeout counts as a strategy failure and
// triggers fallback like any other error.
//
// The returned outcomes cover every attempt made, so callers can report
// partial progress per candidate. The error is nil as soon as any
// attempt succeeds; when all strategies are exhausted it wraps
// ErrAllStrategiesFailed and names the last failure.
func (e *Executor) Execute(ctx context.Context, p *plan.Plan, attempt Attempt) ([]Outcome, error) {
	candidates := append([]capability.Candidate{p.Primary}, p.Fallbacks...)

	outcomes := make([]Outcome, 0, len(candidates))
	var lastErr error

	for _, c := range candidates {
		if ctx.Err() != nil {
			// The caller gave up; don't burn through fallbacks.
			return outcomes, errors.Wrap(ctx.Err(), "execution canceled")
		}

		outcome := e.attemptOne(ctx, c, attempt)
		outcomes = append(outcomes, outcome)

		if outcome.Err == nil {
			e.logger.Info("strategy succeeded", "candidate", c.Name)
			return outcomes, nil
		}

		lastErr = outcome.Err
		e.logger.Warn("strategy failed, trying next",
			"candidate", c.Name,
			"error", outcome.Err,
			"remaining", len(candidates)-len(outcomes))
	}

	return outcomes, errors.Wrapf(mcperrors.ErrAllStrategiesFailed,
		"%d strategies exhausted, last failure: %v", len(candidates), lastErr)
}

func (e *Executor) attemptOne(ctx context.Context, c capability.Candidate, attempt Attempt) Outcome {
	ctx, cancel := context.WithTimeout(ctx, e.attemptTimeout)
	defer cancel()

	start := time.Now()
	err := attempt(ctx, c)
	elapsed := time.Since(start)

	if err != nil {
		err = errors.Wrapf(mcperrors.ErrStrategyFailed, "%s: %v", c.Name, err)
	}

	return Outcome{
		Candidate: c.Name,
		Err:       err,
		Duration:  elapsed,
	}
}
