package search

import "fmt"

// UnsupportedError reports that the requested configuration is valid on
// its own terms but not supported together with the task at hand — e.g. a
// heuristic that forbids axioms or conditional effects applied to a task
// that has them, or a component that requires unit cost applied to a
// non-unit-cost task (spec.md §7, exit code 34).
type UnsupportedError struct {
	Reason string
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("search: unsupported configuration: %s", e.Reason)
}

// CriticalError reports an internal invariant violation — an assertion
// that should never fail if every other component honoured its contract
// (spec.md §7, exit code 32). The engine wraps the offending condition in
// Err for diagnostics; callers at the exit funnel log Err and exit 32
// without attempting to recover.
type CriticalError struct {
	Err error
}

func (e *CriticalError) Error() string {
	return fmt.Sprintf("search: critical error: %v", e.Err)
}

func (e *CriticalError) Unwrap() error { return e.Err }
