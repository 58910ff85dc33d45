// Package sasio reads the line-oriented SAS+ task format described in
// SPEC_FULL.md §6 into a *task.Task. It is the engine's point of ingestion
// for an already-grounded task; it does not parse PDDL and does not ground
// (that subtree is out of scope, spec.md §1).
package sasio

import "errors"

// ErrUnsupportedVersion indicates the "begin_version" block did not declare
// the supported protocol version (3).
var ErrUnsupportedVersion = errors.New("sasio: unsupported SAS+ version")

// ErrMalformedInput is the umbrella sentinel for any structural violation of
// the format (missing begin/end markers, wrong field counts, bad integers).
// Callers that need the offending line should inspect the wrapped message.
var ErrMalformedInput = errors.New("sasio: malformed SAS+ input")

// ErrDuplicateMutexFact indicates a mutex group listed the same fact twice.
var ErrDuplicateMutexFact = errors.New("sasio: duplicate fact within mutex group")
