package main

import (
	"context"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lvlath-planner/sasplan/axiom"
	"github.com/lvlath-planner/sasplan/openlist"
	"github.com/lvlath-planner/sasplan/packedstate"
	"github.com/lvlath-planner/sasplan/planio"
	"github.com/lvlath-planner/sasplan/search"
	"github.com/lvlath-planner/sasplan/searchspace"
	"github.com/lvlath-planner/sasplan/successorgen"
	"github.com/lvlath-planner/sasplan/task"
	"github.com/lvlath-planner/sasplan/task/sasio"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

// inputError marks a failure reading or validating the task file (exit
// 33, spec.md §7's "input error").
type inputError struct{ err error }

func (e *inputError) Error() string { return e.err.Error() }
func (e *inputError) Unwrap() error { return e.err }

// statusError carries a non-Solved terminal search.Status through to the
// exit funnel, where it maps to its documented exit code.
type statusError struct{ status search.Status }

func (e *statusError) Error() string { return fmt.Sprintf("search finished: %s", e.status) }

func runPlanner(cmd *cobra.Command, args []string) error {
	t, err := readTask(args)
	if err != nil {
		return &inputError{err: err}
	}

	unitCost := !t.UseMetric
	if !gateApplies(unitCost) {
		logger.Info("gate did not match task cost type, nothing to do")

		return nil
	}

	proxy := taskproxy.NewRoot(t)
	if unitCost {
		proxy = taskproxy.WithCostFunction(proxy, taskproxy.UnitCost)
	}

	mode, heuristicCall, err := parseSearchSpec(searchSpec)
	if err != nil {
		return err
	}

	registry := packedstate.NewRegistry(t, axiom.New(t))
	binding, err := buildEvaluator(proxy, registry.LookupValues, heuristicCall, useCache)
	if err != nil {
		return err
	}

	cfg := search.Config{
		Proxy:         proxy,
		Registry:      registry,
		Space:         searchspace.NewSpace(),
		Generator:     successorgen.New(proxy.Operators()),
		OpenList:      openlist.NewStandard(),
		Evaluators:    []search.EvaluatorBinding{binding},
		Mode:          mode,
		Bound:         effectiveBound(),
		ProgressEvery: 1000,
		Logger:        logger,
	}

	ctx, cancel := search.WithTimeLimit(context.Background(), timeLimit)
	defer cancel()

	engine := search.New(cfg)
	var result search.Result
	if lazy {
		result, err = engine.RunLazy(ctx)
	} else {
		result, err = engine.Run(ctx)
	}
	if err != nil {
		return &search.CriticalError{Err: err}
	}

	if result.Status != search.Solved {
		logger.Warn("search did not find a plan",
			zap.String("status", result.Status.String()),
			zap.Int("expansions", result.Expansions),
		)

		return &statusError{status: result.Status}
	}

	if err := planio.WriteFile(planFile, previousPortfolio, proxy.Operators(), result.Plan, result.Cost, unitCost); err != nil {
		return &search.CriticalError{Err: err}
	}

	logger.Info("plan found",
		zap.Int64("cost", result.Cost),
		zap.Int("plan_length", len(result.Plan)),
		zap.Int("expansions", result.Expansions),
	)

	return nil
}

func readTask(args []string) (*task.Task, error) {
	if len(args) == 0 {
		return sasio.Read(os.Stdin)
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return sasio.Read(f)
}

// effectiveBound maps the --bound flag's -1 sentinel (unbounded) onto
// search.NoBound.
func effectiveBound() int64 {
	if bound < 0 {
		return search.NoBound
	}

	return bound
}

// gateApplies evaluates the --if-unit-cost/--if-non-unit-cost/--always
// gates against the task's cost type (SPEC_FULL.md §10's gate evaluator,
// supplemented from original_source/src/search/command_line.cc). No gate
// flag given behaves like --always.
func gateApplies(unitCost bool) bool {
	if gateUnitCost {
		return unitCost
	}
	if gateNonUnitCost {
		return !unitCost
	}

	return true
}

// exitFunnel is the single place that converts a RunE error into the
// documented exit code, logging the canonical fatal message and a
// peak-memory line for every non-success outcome (spec.md §7).
func exitFunnel(err error) search.ExitCode {
	if err == nil {
		return search.ExitSuccess
	}

	var code search.ExitCode
	switch e := err.(type) {
	case *inputError:
		code = search.ExitInputError
	case *search.UnsupportedError:
		code = search.ExitUnsupported
	case *search.CriticalError:
		code = search.ExitCriticalError
	case *statusError:
		code = e.status.ExitCode()
	default:
		code = search.ExitCriticalError
	}

	logFatal(err, code)

	return code
}

func logFatal(err error, code search.ExitCode) {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	logger.Error("planner exiting",
		zap.Error(err),
		zap.Int("exit_code", int(code)),
		zap.Uint64("peak_heap_bytes", mem.HeapSys),
	)
}
