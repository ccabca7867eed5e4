package core

import (
	"context"
	"fmt"
	"math"

	"github.com/signalsfoundry/drone-dispatch/internal/logging"
	"github.com/signalsfoundry/drone-dispatch/model"
)

// TaskStatus classifies the outcome of one task inside a sequence
// evaluation.
type TaskStatus int

const (
	StatusFeasible TaskStatus = iota
	// StatusUnknownTask means the assignment referenced a task id not in the
	// task set.
	StatusUnknownTask
	// StatusBlocked means an earlier task in the same sequence already
	// failed; this task was not independently evaluated.
	StatusBlocked
	StatusWindowMissed
	StatusTypeMismatch
	StatusPayloadShape
	StatusPayloadInventory
	StatusTooSlow
	StatusRangeExceeded
)

// Feasible reports whether the status is the success marker.
func (s TaskStatus) Feasible() bool { return s == StatusFeasible }

func (s TaskStatus) String() string {
	switch s {
	case StatusFeasible:
		return "feasible"
	case StatusUnknownTask:
		return "unknown task"
	case StatusBlocked:
		return "blocked by earlier failure"
	case StatusWindowMissed:
		return "time window missed"
	case StatusTypeMismatch:
		return "type mismatch"
	case StatusPayloadShape:
		return "payload capability mismatch"
	case StatusPayloadInventory:
		return "weapon inventory insufficient"
	case StatusTooSlow:
		return "cruise speed insufficient"
	case StatusRangeExceeded:
		return "effective range exceeded"
	default:
		return "unknown status"
	}
}

// TaskResult pairs a status with its human-readable reason. Reason is empty
// for feasible tasks; it is advisory narration, never control flow.
type TaskResult struct {
	Status TaskStatus
	Reason string
}

// SequenceResult maps every input task id to its result. Iteration order
// over the map is irrelevant; evaluation always happened in input list
// order.
type SequenceResult map[int64]TaskResult

// AllFeasible reports whether every task in the result is feasible.
func (r SequenceResult) AllFeasible() bool {
	for _, tr := range r {
		if !tr.Status.Feasible() {
			return false
		}
	}
	return true
}

const cascadeReason = "blocked by earlier failure"

// SequenceEngine simulates a drone through an ordered task list, carrying
// (location, clock, cumulative range, remaining payload) across tasks and
// applying the capability rules at each step. The first infeasible task
// stops evaluation; every later task is marked blocked rather than being
// evaluated on its own.
type SequenceEngine struct {
	Routes RouteSimulator
	Ledger LedgerReader
	Sink   Sink
	Log    logging.Logger
}

// NewSequenceEngine builds an engine over the given collaborators. A nil
// routes falls back to the great-circle default; sink and log default to
// no-ops.
func NewSequenceEngine(routes RouteSimulator, ledger LedgerReader) *SequenceEngine {
	if routes == nil {
		routes = NewGreatCircleSimulator(nil)
	}
	return &SequenceEngine{
		Routes: routes,
		Ledger: ledger,
		Sink:   NopSink{},
		Log:    logging.Noop(),
	}
}

func (e *SequenceEngine) emit(ctx context.Context, rule string, droneID, taskID int64, pass bool, reason string) {
	if e.Sink != nil {
		e.Sink.Record(ctx, Event{Rule: rule, DroneID: droneID, TaskID: taskID, Pass: pass, Reason: reason})
	}
}

// CheckSequence evaluates the feasibility of the drone flying the given task
// ids in order. The returned result maps every input id to feasible, a
// specific failure reason, or the blocked-by-earlier-failure cascade marker.
//
// Collaborator failures (route simulator errors) abort the evaluation with a
// wrapped error: there is no safe permissive default for them.
func (e *SequenceEngine) CheckSequence(ctx context.Context, d *model.Drone, taskIDs []int64, tasks map[int64]*model.Task) (SequenceResult, error) {
	result := make(SequenceResult, len(taskIDs))
	if len(taskIDs) == 0 {
		return result, nil
	}
	if d.Airport == nil {
		return nil, ErrNoHomeAirport
	}

	// Initial state: at the home airport, clock at the optimal takeoff time
	// for the first task, nothing flown, full payload.
	location := d.Airport.Location
	clock := 0.0
	used := 0.0
	payload := d.ClonePayload()

	if first, ok := tasks[taskIDs[0]]; ok {
		takeoff, err := e.Routes.OptimalTakeoff(d, first)
		if err != nil {
			return nil, fmt.Errorf("%w: optimal takeoff: %w", ErrCollaborator, err)
		}
		clock = math.Max(0, takeoff)
	}

	for i, id := range taskIDs {
		task, ok := tasks[id]
		if !ok {
			result[id] = TaskResult{Status: StatusUnknownTask, Reason: fmt.Sprintf("task %d does not exist", id)}
			e.emit(ctx, RuleSequence, d.ID, id, false, result[id].Reason)
			cascade(result, taskIDs, i+1)
			break
		}

		status, reason, next, err := e.evaluateTask(ctx, d, task, location, clock, used, payload)
		if err != nil {
			return nil, err
		}
		result[id] = TaskResult{Status: status, Reason: reason}

		if !status.Feasible() {
			e.Log.Debug(ctx, "sequence infeasible",
				logging.Int64("drone_id", d.ID),
				logging.Int64("task_id", id),
				logging.String("reason", reason),
			)
			cascade(result, taskIDs, i+1)
			break
		}

		location, clock, used = next.location, next.clock, next.used
		consumePayload(payload, task)
	}

	return result, nil
}

type legState struct {
	location model.GeoPoint
	clock    float64
	used     float64
}

// evaluateTask applies the per-task rules in order: time window, type,
// payload (against the remaining snapshot), speed, then range against the
// effective remaining range. On success it also returns the post-task state.
func (e *SequenceEngine) evaluateTask(ctx context.Context, d *model.Drone, task *model.Task, location model.GeoPoint, clock, used float64, payload map[model.PayloadKind]model.PayloadSpec) (TaskStatus, string, legState, error) {
	var next legState

	arrival, err := e.Routes.EarliestArrival(d, task, location, clock)
	if err != nil {
		return 0, "", next, fmt.Errorf("%w: earliest arrival for task %d: %w", ErrCollaborator, task.ID, err)
	}
	deadline := task.Deadline()
	windowOK := arrival <= deadline && math.Max(arrival, task.Start)+task.Duration <= deadline
	e.emit(ctx, RuleTimeWindow, d.ID, task.ID, windowOK, "")
	if arrival > deadline {
		return StatusWindowMissed, fmt.Sprintf("%s: cannot arrive before the window closes", task.DisplayName()), next, nil
	}
	if !windowOK {
		return StatusWindowMissed, fmt.Sprintf("%s: cannot complete before the window closes", task.DisplayName()), next, nil
	}

	typeOK := TypeMatch(d, task)
	e.emit(ctx, RuleTypeMatch, d.ID, task.ID, typeOK, "")
	if !typeOK {
		return StatusTypeMismatch, fmt.Sprintf("%s: drone type %s not accepted", task.DisplayName(), d.Type), next, nil
	}

	verdict, kind := MatchPayload(payload, task, e.Ledger)
	e.emit(ctx, RulePayloadMatch, d.ID, task.ID, verdict == PayloadOK, verdict.String())
	switch verdict {
	case PayloadShapeMismatch:
		return StatusPayloadShape, fmt.Sprintf("%s: payload %s capability insufficient", task.DisplayName(), kind), next, nil
	case PayloadInventoryShort:
		return StatusPayloadInventory, fmt.Sprintf("%s: weapon inventory for %s insufficient", task.DisplayName(), kind), next, nil
	}

	speedOK := SpeedOK(d, task)
	e.emit(ctx, RuleSpeed, d.ID, task.ID, speedOK, "")
	if !speedOK {
		return StatusTooSlow, fmt.Sprintf("%s: cruise speed below required minimum", task.DisplayName()), next, nil
	}

	loc, newClock, newUsed, err := e.Routes.SimulateLeg(d, task, location, clock, used)
	if err != nil {
		return 0, "", next, fmt.Errorf("%w: simulate leg for task %d: %w", ErrCollaborator, task.ID, err)
	}
	rangeOK := RangeOK(newUsed, EffectiveRange(d, e.Ledger))
	e.emit(ctx, RuleRange, d.ID, task.ID, rangeOK, "")
	if !rangeOK {
		return StatusRangeExceeded, fmt.Sprintf("%s: cumulative range exceeds effective range", task.DisplayName()), next, nil
	}

	next = legState{location: loc, clock: newClock, used: newUsed}
	return StatusFeasible, "", next, nil
}

// Replay simulates the drone through the sequence without feasibility
// checks, returning the final location, clock, and cumulative range. The
// aggregate metrics are computed from this.
func (e *SequenceEngine) Replay(ctx context.Context, d *model.Drone, taskIDs []int64, tasks map[int64]*model.Task) (model.GeoPoint, float64, float64, error) {
	if d.Airport == nil {
		return model.GeoPoint{}, 0, 0, ErrNoHomeAirport
	}
	location := d.Airport.Location
	clock := 0.0
	used := 0.0
	if len(taskIDs) == 0 {
		return location, clock, used, nil
	}

	first, ok := tasks[taskIDs[0]]
	if !ok {
		return location, clock, used, fmt.Errorf("%w: %d", ErrUnknownTask, taskIDs[0])
	}
	takeoff, err := e.Routes.OptimalTakeoff(d, first)
	if err != nil {
		return location, clock, used, fmt.Errorf("%w: optimal takeoff: %w", ErrCollaborator, err)
	}
	clock = math.Max(0, takeoff)

	for _, id := range taskIDs {
		task, ok := tasks[id]
		if !ok {
			return location, clock, used, fmt.Errorf("%w: %d", ErrUnknownTask, id)
		}
		location, clock, used, err = e.Routes.SimulateLeg(d, task, location, clock, used)
		if err != nil {
			return location, clock, used, fmt.Errorf("%w: simulate leg for task %d: %w", ErrCollaborator, id, err)
		}
	}
	return location, clock, used, nil
}

func cascade(result SequenceResult, taskIDs []int64, from int) {
	for _, id := range taskIDs[from:] {
		result[id] = TaskResult{Status: StatusBlocked, Reason: cascadeReason}
	}
}

// consumePayload decrements consumable payload quantities on the engine's
// working snapshot. Reusable kinds are untouched.
func consumePayload(payload map[model.PayloadKind]model.PayloadSpec, task *model.Task) {
	for kind, req := range task.RequiredPayloads {
		if !kind.Consumable() {
			continue
		}
		spec, ok := payload[kind]
		if !ok {
			continue
		}
		spec.Level -= req.Level
		if spec.Level < 0 {
			spec.Level = 0
		}
		payload[kind] = spec
	}
}
