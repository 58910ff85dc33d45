package search

import (
	"os"
	"os/signal"
	"syscall"
)

// signalWatch is a best-effort, loop-iteration-boundary cancellation
// source (spec.md §5: "Cancellation is delivered via process-level
// signals ... the engine must treat these as best-effort interrupts").
// It is deliberately not installed as an in-signal-handler callback: Go's
// runtime already delivers signals to a channel asynchronously, so the
// engine only ever observes them between loop iterations, never inside
// one, matching the "no suspension points within a search iteration"
// requirement without needing async-signal-safe code of its own.
type signalWatch struct {
	ch chan os.Signal
}

func installSignalWatch() *signalWatch {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM, syscall.SIGXCPU)

	return &signalWatch{ch: ch}
}

func (w *signalWatch) stop() {
	signal.Stop(w.ch)
}

// statusForSignal maps a caught signal to the terminal Status it
// contributes to the exit-code table of spec.md §6: SIGXCPU is literally
// the CPU-time budget firing (exit 23, Timeout); SIGINT/SIGTERM are an
// external request to stop before the engine reached a conclusion, which
// has no dedicated exit code of its own, so it surfaces as Failed (exit
// 32) after statistics are flushed by the caller.
func statusForSignal(sig os.Signal) Status {
	if sig == syscall.SIGXCPU {
		return Timeout
	}

	return Failed
}
