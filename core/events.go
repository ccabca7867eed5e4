package core

import (
	"context"

	"github.com/signalsfoundry/drone-dispatch/internal/logging"
)

// Rule names used in evaluation events and metrics labels.
const (
	RuleTimeWindow   = "time_window"
	RuleTypeMatch    = "type_match"
	RulePayloadMatch = "payload_match"
	RuleSpeed        = "speed"
	RuleRange        = "range"
	RuleSequence     = "sequence"
)

// Event is one rule evaluation: which rule, against what, and the verdict.
// The event stream replaces ad-hoc print tracing; it is advisory output and
// never feeds back into control flow.
type Event struct {
	Rule    string
	DroneID int64
	TaskID  int64
	Pass    bool
	Reason  string
}

// Sink receives evaluation events. Implementations must be cheap; the
// sequence engine emits one event per rule per task.
type Sink interface {
	Record(ctx context.Context, ev Event)
}

// NopSink drops all events.
type NopSink struct{}

func (NopSink) Record(context.Context, Event) {}

// LoggerSink writes each event as a debug log record.
type LoggerSink struct {
	Log logging.Logger
}

func (s LoggerSink) Record(ctx context.Context, ev Event) {
	log := s.Log
	if fromCtx := logging.LoggerFromContext(ctx); fromCtx != nil {
		log = fromCtx
	}
	if log == nil {
		return
	}
	log.Debug(ctx, "rule evaluated",
		logging.String("rule", ev.Rule),
		logging.Int64("drone_id", ev.DroneID),
		logging.Int64("task_id", ev.TaskID),
		logging.Bool("pass", ev.Pass),
		logging.String("reason", ev.Reason),
	)
}

// MultiSink fans events out to several sinks.
type MultiSink []Sink

func (m MultiSink) Record(ctx context.Context, ev Event) {
	for _, s := range m {
		if s != nil {
			s.Record(ctx, ev)
		}
	}
}
