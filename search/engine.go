package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/lvlath-planner/sasplan/heuristic"
	"github.com/lvlath-planner/sasplan/openlist"
	"github.com/lvlath-planner/sasplan/packedstate"
	"github.com/lvlath-planner/sasplan/pruning"
	"github.com/lvlath-planner/sasplan/searchspace"
	"github.com/lvlath-planner/sasplan/successorgen"
	"github.com/lvlath-planner/sasplan/task"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

// Mode selects how a successor's Entry.Key is built from its heuristic
// results (spec.md §4.9 "eager best-first/A* family").
type Mode int

const (
	// Greedy orders purely by the primary evaluator's value (key[0] = h0).
	Greedy Mode = iota
	// AStar orders by f = g + h0, the standard admissible-heuristic key.
	AStar
)

// NoBound disables the `--bound` successor-cost cutoff (spec.md §4.9 step
// 4b, §6 CLI surface).
const NoBound = searchspace.InfiniteG

// Config wires every collaborator the eager search loop needs. Nil Pruner
// disables pruning; nil Logger disables progress reporting.
type Config struct {
	Proxy     taskproxy.Proxy
	Registry  *packedstate.Registry
	Space     *searchspace.Space
	Generator *successorgen.Generator
	Pruner    pruning.Pruner
	OpenList  openlist.OpenList

	// Evaluators is tried in order; Evaluators[0] drives the primary key
	// component (or the f-value under AStar); the rest are lexicographic
	// tie-breakers, matching the "tiebreaking" open list variant of
	// spec.md §4.8 when paired with openlist.NewTiebreaking.
	Evaluators []EvaluatorBinding

	Mode  Mode
	Bound int64 // NoBound for unbounded

	// ProgressEvery reports one zap.Info line every N expansions; 0
	// disables progress reporting even with a non-nil Logger.
	ProgressEvery int
	Logger        *zap.Logger
}

// Result is what Run returns on any terminal Status.
type Result struct {
	Status Status

	// Plan lists operator indices (into Config.Proxy.Operators()) in
	// forward order; nil unless Status == Solved.
	Plan []int
	Cost int64

	Expansions  int
	Generations int
	Evaluations int
}

// Engine runs one eager best-first/A* search per spec.md §4.9.
type Engine struct {
	cfg Config
	ops []task.Operator

	expansions  int
	generations int
	evaluations int
}

// New builds an Engine from cfg. cfg.Registry's initial state is not
// touched until Run is called.
func New(cfg Config) *Engine {
	return &Engine{cfg: cfg, ops: cfg.Proxy.Operators()}
}

// Run executes the search loop until a terminal Status is reached, ctx is
// cancelled (Timeout), or a signal-derived cancellation fires (best-effort
// per spec.md §5 — checked only at loop-iteration boundaries, never
// inside one).
func (e *Engine) Run(ctx context.Context) (Result, error) {
	cfg := e.cfg
	initial := cfg.Registry.GetInitialState()

	root := cfg.Space.Node(initial)
	root.Status = searchspace.Open
	root.G = 0
	root.RealG = 0
	root.HasParent = false
	root.CreatingOpIndex = -1

	results, deadEnd := e.evaluateAll(initial)
	if deadEnd {
		return e.finish(Unsolvable), nil
	}
	cfg.OpenList.Insert(openlist.Entry{
		Key:        e.buildKey(0, results),
		State:      initial,
		CreatingOp: -1,
		Preferred:  false,
	})

	sigs := installSignalWatch()
	defer sigs.stop()

	for {
		select {
		case <-ctx.Done():
			return e.finish(Timeout), nil
		case sig := <-sigs.ch:
			return e.finish(statusForSignal(sig)), nil
		default:
		}

		if cfg.OpenList.Empty() {
			if cfg.OpenList.IsDeadEndReliable() {
				return e.finish(Unsolvable), nil
			}

			return e.finish(UnsolvedIncomplete), nil
		}

		entry, ok := cfg.OpenList.Pop()
		if !ok {
			return e.finish(Unsolvable), nil
		}

		node := cfg.Space.Node(entry.State)
		if node.Status == searchspace.Closed {
			continue
		}
		node.Status = searchspace.Closed

		values := cfg.Registry.LookupValues(entry.State)
		if cfg.Proxy.IsGoalState(values) {
			opIndices, cost := cfg.Space.Reconstruct(entry.State)

			return Result{
				Status:      Solved,
				Plan:        opIndices,
				Cost:        cost,
				Expansions:  e.expansions,
				Generations: e.generations,
				Evaluations: e.evaluations,
			}, nil
		}

		e.expand(entry.State, node, values)
		e.reportProgress()
	}
}

func (e *Engine) expand(s packedstate.StateID, node *searchspace.Node, values []int) {
	e.expansions++

	applicable := e.cfg.Generator.Generate(values)
	if e.cfg.Pruner != nil {
		applicable = e.cfg.Pruner.Prune(values, applicable)
	}

	for _, opIdx := range applicable {
		op := e.ops[opIdx]
		succID := e.cfg.Registry.GetSuccessorState(s, op)
		e.generations++

		cost := int64(e.cfg.Proxy.OperatorCost(op))
		newG := node.G + cost
		if e.cfg.Bound != NoBound && newG >= e.cfg.Bound {
			continue
		}

		succ := e.cfg.Space.Node(succID)
		if succ.Status != searchspace.New && newG >= succ.G {
			continue
		}

		succ.Parent = s
		succ.HasParent = true
		succ.CreatingOpIndex = opIdx
		succ.G = newG
		succ.RealG = newG

		results, deadEnd := e.evaluateAll(succID)
		if deadEnd {
			succ.Status = searchspace.DeadEnd
			continue
		}
		succ.Status = searchspace.Open

		preferred := e.isPreferred(opIdx, results)
		e.cfg.OpenList.Insert(openlist.Entry{
			Key:        e.buildKey(newG, results),
			State:      succID,
			CreatingOp: opIdx,
			Preferred:  preferred,
		})
		if preferred {
			if boostable, ok := e.cfg.OpenList.(openlist.Boostable); ok {
				boostable.BoostPreferred()
			}
		}
	}
}

// evaluateAll runs every configured evaluator over id, short-circuiting
// (and reporting a dead end) as soon as one reliably proves it. Per
// heuristic not computed after a dead end is found, its zero value is
// never read back — callers branch on deadEnd first.
func (e *Engine) evaluateAll(id packedstate.StateID) (results []heuristic.Result, deadEnd bool) {
	results = make([]heuristic.Result, len(e.cfg.Evaluators))
	for i, b := range e.cfg.Evaluators {
		e.evaluations++
		r := b.Eval.Evaluate(id)
		results[i] = r
		if r.DeadEnd {
			deadEnd = true

			break
		}
	}

	return results, deadEnd
}

// buildKey assembles the open-list ordering key: primary component first
// (g+h0 under AStar, h0 under Greedy), remaining evaluators as
// lexicographic tie-breakers, per spec.md §4.8's tiebreaking variant.
func (e *Engine) buildKey(g int64, results []heuristic.Result) []int64 {
	key := make([]int64, len(results))
	for i, r := range results {
		key[i] = int64(r.Value)
	}
	if e.cfg.Mode == AStar && len(key) > 0 {
		key[0] += g
	}

	return key
}

// isPreferred reports whether opIdx was marked preferred by any evaluator
// whose binding opted into preferred-operator routing.
func (e *Engine) isPreferred(opIdx int, results []heuristic.Result) bool {
	for i, b := range e.cfg.Evaluators {
		if !b.Preferred {
			continue
		}
		for _, p := range results[i].PreferredOps {
			if p == opIdx {
				return true
			}
		}
	}

	return false
}

func (e *Engine) finish(status Status) Result {
	return Result{
		Status:      status,
		Expansions:  e.expansions,
		Generations: e.generations,
		Evaluations: e.evaluations,
	}
}

func (e *Engine) reportProgress() {
	if e.cfg.Logger == nil || e.cfg.ProgressEvery == 0 {
		return
	}
	if e.expansions%e.cfg.ProgressEvery != 0 {
		return
	}

	e.cfg.Logger.Info("search progress",
		zap.Int("expansions", e.expansions),
		zap.Int("generations", e.generations),
		zap.Int("evaluations", e.evaluations),
		zap.Int("open_list_size", e.cfg.OpenList.Len()),
	)
}

// WithTimeLimit wraps ctx with a wall-clock deadline of d: once d elapses,
// ctx.Done() fires and Run returns Timeout/ExitOutOfTime. The budget is
// elapsed real time; CPU time is not measured. d <= 0 leaves ctx
// unbounded.
func WithTimeLimit(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, d)
}
