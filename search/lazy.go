package search

import (
	"context"

	"github.com/lvlath-planner/sasplan/heuristic"
	"github.com/lvlath-planner/sasplan/openlist"
	"github.com/lvlath-planner/sasplan/packedstate"
	"github.com/lvlath-planner/sasplan/searchspace"
)

// RunLazy executes a lazy best-first search over the same Config an eager
// Engine uses. spec.md §4.9: "Anytime / Lazy variants reorder these steps
// (evaluate only when popped) but honour the same contracts" — so instead
// of an open-list entry carrying an already-evaluated successor, it
// carries a pending (parent state, creating operator) edge; the successor
// is only packed, g-checked, and heuristically evaluated once it is
// actually popped. A duplicate edge superseded by a cheaper path before it
// is ever popped is discarded for free, without ever paying for a
// heuristic evaluation — the saving eager search cannot make, at the cost
// of popping (and discarding) more entries overall.
//
// The root entry is the one exception: it carries no creating operator
// (CreatingOp == -1), since the initial state has no parent edge to defer
// evaluation of — it is evaluated up front exactly as Run does.
func (e *Engine) RunLazy(ctx context.Context) (Result, error) {
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

		succID, node, stale := e.resolveLazyEntry(entry)
		if stale {
			continue
		}
		node.Status = searchspace.Closed

		values := cfg.Registry.LookupValues(succID)
		if cfg.Proxy.IsGoalState(values) {
			opIndices, cost := cfg.Space.Reconstruct(succID)

			return Result{
				Status:      Solved,
				Plan:        opIndices,
				Cost:        cost,
				Expansions:  e.expansions,
				Generations: e.generations,
				Evaluations: e.evaluations,
			}, nil
		}

		// The root entry reuses the results computed before the loop.
		if entry.CreatingOp != -1 {
			results, deadEnd = e.evaluateAll(succID)
			if deadEnd {
				node.Status = searchspace.DeadEnd
				continue
			}
		}

		e.expandLazy(succID, node, values, results)
		e.reportProgress()
	}
}

// resolveLazyEntry turns a popped entry into a concrete successor state
// and its node, applying the same NEW-or-cheaper admission test Run's
// expand does — except here the test runs before any heuristic is
// computed, which is the entire point of deferring it. stale reports an
// edge that lost to a cheaper path (or a state already closed at an
// equal-or-worse g) and must be discarded without further work.
func (e *Engine) resolveLazyEntry(entry openlist.Entry) (succID packedstate.StateID, node *searchspace.Node, stale bool) {
	if entry.CreatingOp == -1 {
		succID = entry.State
		node = e.cfg.Space.Node(succID)

		return succID, node, node.Status == searchspace.Closed
	}

	parentID := entry.State
	parent := e.cfg.Space.Node(parentID)
	op := e.ops[entry.CreatingOp]
	succID = e.cfg.Registry.GetSuccessorState(parentID, op)
	e.generations++

	cost := int64(e.cfg.Proxy.OperatorCost(op))
	newG := parent.G + cost
	if e.cfg.Bound != NoBound && newG >= e.cfg.Bound {
		return succID, nil, true
	}

	node = e.cfg.Space.Node(succID)
	if node.Status != searchspace.New && newG >= node.G {
		return succID, nil, true
	}

	node.Parent = parentID
	node.HasParent = true
	node.CreatingOpIndex = entry.CreatingOp
	node.G = newG
	node.RealG = newG

	return succID, node, false
}

func (e *Engine) expandLazy(s packedstate.StateID, node *searchspace.Node, values []int, results []heuristic.Result) {
	e.expansions++

	applicable := e.cfg.Generator.Generate(values)
	if e.cfg.Pruner != nil {
		applicable = e.cfg.Pruner.Prune(values, applicable)
	}

	for _, opIdx := range applicable {
		preferred := e.isPreferred(opIdx, results)
		e.cfg.OpenList.Insert(openlist.Entry{
			Key:        e.buildKey(node.G, results),
			State:      s,
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
