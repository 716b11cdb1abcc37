// Package diag holds the one piece of this repository that is allowed to
// allocate and log: a counter of adversarial or malformed-producer signals
// observed across a batch of events driven through a shared Enumerator
// pool. Nothing else in this module imports this package (neither decoder
// nor the root package's Pool helper), so it stays off the per-event hot
// path.
package diag

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/eventheader-go/eventheader/errs"
)

// Counters tallies decode failures by errs.Kind across many events, and
// optionally logs each one via slog. The zero value is ready to use.
type Counters struct {
	log *slog.Logger

	implementationLimit atomic.Uint64
	stackOverflow       atomic.Uint64
	invalidData         atomic.Uint64
	other               atomic.Uint64
}

var backgroundCtx = context.Background()

// NewCounters returns a Counters that logs to log, or discards log lines
// entirely if log is nil.
func NewCounters(log *slog.Logger) *Counters {
	return &Counters{log: log}
}

// Observe records one decode failure's Kind, logging it at a level keyed to
// how concerning the Kind is: ImplementationLimit and StackOverflow are
// common signs of a malicious or buggy producer and log at Warn; plain
// InvalidData from truncated/corrupt input logs at Debug.
func (c *Counters) Observe(tracepoint string, err error) {
	kind := errs.KindOf(err)

	switch kind {
	case errs.ImplementationLimit:
		c.implementationLimit.Add(1)
		c.logAt(slog.LevelWarn, tracepoint, kind, err)
	case errs.StackOverflow:
		c.stackOverflow.Add(1)
		c.logAt(slog.LevelWarn, tracepoint, kind, err)
	case errs.InvalidData:
		c.invalidData.Add(1)
		c.logAt(slog.LevelDebug, tracepoint, kind, err)
	default:
		c.other.Add(1)
		c.logAt(slog.LevelDebug, tracepoint, kind, err)
	}
}

func (c *Counters) logAt(level slog.Level, tracepoint string, kind errs.Kind, err error) {
	if c.log == nil {
		return
	}
	c.log.Log(backgroundCtx, level, "eventheader decode failure",
		"tracepoint", tracepoint,
		"kind", kind.String(),
		"error", err,
	)
}

// Snapshot is a point-in-time copy of the counts in Counters.
type Snapshot struct {
	ImplementationLimit uint64
	StackOverflow       uint64
	InvalidData         uint64
	Other               uint64
}

// Snapshot returns the current counts.
func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		ImplementationLimit: c.implementationLimit.Load(),
		StackOverflow:       c.stackOverflow.Load(),
		InvalidData:         c.invalidData.Load(),
		Other:               c.other.Load(),
	}
}
