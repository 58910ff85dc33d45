// Package sasplan implements a classical-planning search core in the
// Fast Downward lineage: it reads a grounded SAS⁺ task (§6's line-oriented
// format, task/sasio), runs heuristic best-first search over the packed
// state space (search, packedstate, searchspace, openlist), and writes a
// plan of ground operators (planio).
//
// Ingestion (PDDL parsing, grounding, mutex discovery) is deliberately out
// of scope — this module starts from an already-grounded task, matching
// spec.md §1's division of labour.
//
// Subpackages:
//
//	task/         grounded task data model + SAS⁺ reader (sasio)
//	taskproxy/    cost-adapted / goal-modified read-only task views
//	packedstate/  hash-consed state registry assigning stable StateIDs
//	successorgen/ applicable-operator generation via a discrimination trie
//	axiom/        stratified axiom evaluator
//	pruning/      stubborn-set operator pruning
//	heuristic/    blind, h^add/h^FF, h^cg, h^cea, h^LM-cut, and a cache
//	landmark/     single-fact landmark discovery, orderings, cost partitioning
//	openlist/     single-evaluator, weighted, type-based, alternation,
//	              Pareto open lists
//	searchspace/  per-node parent/g/creating-operator bookkeeping and
//	              plan reconstruction
//	search/       the engine: expand, evaluate, prune, insert, report
//	planio/       plan-file writer
//	cmd/planner/  CLI driver
package sasplan
