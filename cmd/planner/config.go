package main

import (
	"fmt"
	"strings"

	"github.com/lvlath-planner/sasplan/heuristic"
	"github.com/lvlath-planner/sasplan/heuristic/blind"
	"github.com/lvlath-planner/sasplan/heuristic/cache"
	"github.com/lvlath-planner/sasplan/heuristic/cea"
	"github.com/lvlath-planner/sasplan/heuristic/cg"
	"github.com/lvlath-planner/sasplan/heuristic/lmcut"
	"github.com/lvlath-planner/sasplan/heuristic/relaxation"
	"github.com/lvlath-planner/sasplan/landmark"
	"github.com/lvlath-planner/sasplan/landmark/costpartition"
	"github.com/lvlath-planner/sasplan/landmark/lpmodel"
	"github.com/lvlath-planner/sasplan/packedstate"
	"github.com/lvlath-planner/sasplan/search"
	"github.com/lvlath-planner/sasplan/taskproxy"
)

// parseSearchSpec splits a --search string of the shape "verb(heuristic())"
// into the search.Mode the verb selects and the inner heuristic call, a
// small subset of the real Fast Downward option-string grammar covering
// exactly the evaluators this core implements.
func parseSearchSpec(spec string) (mode search.Mode, heuristicCall string, err error) {
	verb, inner, err := splitCall(spec)
	if err != nil {
		return 0, "", err
	}

	switch verb {
	case "astar":
		mode = search.AStar
	case "eager_greedy":
		mode = search.Greedy
	default:
		return 0, "", &search.UnsupportedError{Reason: fmt.Sprintf("unknown search verb %q", verb)}
	}

	return mode, inner, nil
}

// splitCall parses "name(inner)" into name and inner, trimming whitespace.
func splitCall(s string) (name, inner string, err error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open == -1 || !strings.HasSuffix(s, ")") {
		return "", "", &search.UnsupportedError{Reason: fmt.Sprintf("malformed option string %q", s)}
	}

	return strings.TrimSpace(s[:open]), strings.TrimSpace(s[open+1 : len(s)-1]), nil
}

// buildEvaluator resolves a heuristic call (e.g. "blind()", "lmcut()")
// into a search.EvaluatorBinding over proxy, wrapping it to the
// StateID-keyed shape search.Config needs via lookup (registry.LookupValues).
// lmcut rejects tasks with axioms or conditional effects, surfacing as
// *search.UnsupportedError per spec.md §7. When useCache is set, the
// heuristic is memoised per StateID via heuristic/cache instead of being
// recomputed on every revisit.
func buildEvaluator(proxy taskproxy.Proxy, lookup func(packedstate.StateID) []int, call string, useCache bool) (search.EvaluatorBinding, error) {
	name, _, err := splitCall(call)
	if err != nil {
		return search.EvaluatorBinding{}, err
	}

	bind := func(h heuristic.Evaluator, preferred bool) search.EvaluatorBinding {
		var ev search.StateEvaluator
		if useCache {
			ev = cache.New(h, lookup)
		} else {
			ev = search.Direct(h, lookup)
		}

		return search.EvaluatorBinding{Eval: ev, Preferred: preferred}
	}

	switch name {
	case "blind":
		return bind(blind.New(proxy), false), nil
	case "hadd":
		return bind(relaxation.NewAdditive(proxy), true), nil
	case "hff":
		return bind(relaxation.NewFF(proxy), true), nil
	case "cg":
		return bind(cg.New(proxy), false), nil
	case "cea":
		return bind(cea.New(proxy), true), nil
	case "lmcut":
		h, err := lmcut.New(proxy)
		if err != nil {
			return search.EvaluatorBinding{}, &search.UnsupportedError{Reason: err.Error()}
		}

		return bind(h, false), nil
	case "landmark_uniform":
		g := landmark.Discover(proxy)

		return bind(costpartition.NewUniform(proxy, g), false), nil
	case "landmark_optimal":
		g := landmark.Discover(proxy)

		return bind(costpartition.NewOptimal(proxy, g, lpmodel.BruteForce{}), false), nil
	default:
		return search.EvaluatorBinding{}, &search.UnsupportedError{Reason: fmt.Sprintf("unknown heuristic %q", name)}
	}
}
