package commands

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"mcpup/internal/capability"
	"mcpup/internal/errors"
	"mcpup/internal/executor"
	"mcpup/internal/launcher"
	"mcpup/internal/plan"
)

var (
	launchDetach   bool
	launchStrategy string
	launchEnv      []string
	launchDir      string
)

func init() {
	launchCmd.Flags().BoolVarP(&launchDetach, "detach", "d", false,
		"start the server and return immediately")
	launchCmd.Flags().StringVar(&launchStrategy, "strategy", "",
		"force a launch strategy: uvx-ephemeral, uv-project, node-direct, bridge-run")
	launchCmd.Flags().StringArrayVarP(&launchEnv, "env", "e", nil,
		"extra KEY=VALUE for the server process (repeatable)")
	launchCmd.Flags().StringVar(&launchDir, "dir", "",
		"working directory for the server process")
	rootCmd.AddCommand(launchCmd)
}

var launchCmd = &cobra.Command{
	Use:   "launch [-- server args...]",
	Short: "Launch the MCP server",
	Long: `Launch the server through the best available strategy, falling back
automatically when a strategy cannot start the process. Arguments after
-- are passed to the server verbatim.

In the foreground (default) mcpup relays the server's stdio and shuts
it down gracefully on interrupt: first a termination signal, then a
kill after the grace window. With --detach the server keeps running
after mcpup exits.`,
	RunE: runLaunch,
}

func runLaunch(cmd *cobra.Command, args []string) error {
	log := logger(cmd)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool := capability.NewDetector(log).Detect(ctx)
	p, err := launchPlan(pool)
	if err != nil {
		return err
	}

	// Node is resolved once up front; only node-direct attempts need it.
	var node *launcher.NodeInfo
	if hasRuntimeCandidate(pool) {
		nodeDetector := launcher.NewNodeDetector(log,
			launcher.WithMinVersion(cfg.Launch.MinNodeVersion))
		if info, err := nodeDetector.Detect(ctx); err == nil {
			node = info
		} else {
			log.Debug("node unavailable, node-direct launches will fail over", "error", err)
		}
	}

	launchCfg := launcher.Config{
		Command:        cfg.Server.Command,
		RuntimePackage: cfg.Server.RuntimePackage,
		BridgePackage:  cfg.Server.BridgePackage,
		Args:           append(cfg.Launch.Args, args...),
		Env:            append(envFromConfig(), launchEnv...),
		Dir:            launchDir,
	}

	grace := time.Duration(cfg.Launch.GraceSeconds) * time.Second
	l := launcher.New(log, launcher.WithStopGrace(grace))

	attempt := func(ctx context.Context, c capability.Candidate) error {
		attemptCfg := launchCfg
		attemptCfg.Ephemeral = capability.StrategyForCandidate(c) == capability.StrategyUvxEphemeral
		argv, err := launcher.CommandFor(c, attemptCfg, node)
		if err != nil {
			return err
		}
		// Start against the command context, not the attempt context:
		// the server should outlive the attempt timeout once started.
		return l.Start(cmd.Context(), argv, attemptCfg)
	}

	_, err = executor.New(log).Execute(ctx, p, attempt)
	if err != nil {
		return errors.NewSystemError(err, "run 'mcpup doctor' to diagnose the environment")
	}

	if launchDetach {
		pid, err := l.Detach()
		if err != nil {
			return errors.NewSystemError(err, "")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s running detached (pid %d)\n", cfg.Server.Name, pid)
		return nil
	}

	if err := l.Wait(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			// Interrupt requested and honored; a clean shutdown.
			return nil
		}
		return errors.NewSystemError(err, "")
	}
	return nil
}

// launchPlan orders candidates for launching, honoring --strategy by
// restricting the pool to candidates that launch that way.
func launchPlan(pool []capability.Candidate) (*plan.Plan, error) {
	if launchStrategy != "" {
		restricted := make([]capability.Candidate, 0, len(pool))
		for _, c := range pool {
			if capability.StrategyForCandidate(c) == capability.Strategy(launchStrategy) {
				restricted = append(restricted, c)
			}
		}
		if len(restricted) == 0 {
			return nil, errors.NewUserError(
				errors.Newf("no detected candidate launches via %q", launchStrategy),
				"run 'mcpup detect' to see available strategies")
		}
		pool = restricted
	}

	p, err := plan.New(pool, plan.ModeAuto, "")
	if err != nil {
		if errors.Is(err, errors.ErrNoCandidates) {
			return nil, errors.NewSystemError(err, "install uv (https://docs.astral.sh/uv/) or Node.js with npm")
		}
		return nil, err
	}
	return p, nil
}

func hasRuntimeCandidate(pool []capability.Candidate) bool {
	for _, c := range pool {
		if c.Family == capability.FamilyRuntime {
			return true
		}
	}
	return false
}

func envFromConfig() []string {
	env := make([]string, 0, len(cfg.Launch.Env))
	for k, v := range cfg.Launch.Env {
		env = append(env, k+"="+v)
	}
	return env
}
