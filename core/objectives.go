package core

import (
	"context"

	"github.com/signalsfoundry/drone-dispatch/internal/logging"
	"github.com/signalsfoundry/drone-dispatch/model"
)

// Solution metric keys written by the aggregate objectives.
const (
	MetricTotalDistance  = "total_distance"
	MetricCompletionTime = "completion_time"
)

// TotalDistance replays every assigned drone's route and writes the summed
// cumulative range into the solution metrics. Drones whose replay errors
// contribute zero; an empty solution yields zero. Returns the computed
// value.
func TotalDistance(ctx context.Context, e *SequenceEngine, sol *model.Solution, drones map[string]*model.Drone, tasks map[int64]*model.Task) float64 {
	total := 0.0
	for key, taskIDs := range sol.Assignments {
		if len(taskIDs) == 0 {
			continue
		}
		d, ok := drones[key]
		if !ok {
			continue
		}
		_, _, used, err := e.Replay(ctx, d, taskIDs, tasks)
		if err != nil {
			e.Log.Warn(ctx, "route replay failed; contribution skipped",
				logging.String("drone_key", key),
				logging.String("error", err.Error()),
			)
			continue
		}
		total += used
	}
	if sol.Metrics == nil {
		sol.Metrics = make(map[string]float64)
	}
	sol.Metrics[MetricTotalDistance] = total
	return total
}

// Makespan replays every assigned drone's route and writes the maximum
// final clock into the solution metrics. Errored replays are skipped; an
// empty solution yields zero. Returns the computed value.
func Makespan(ctx context.Context, e *SequenceEngine, sol *model.Solution, drones map[string]*model.Drone, tasks map[int64]*model.Task) float64 {
	maxClock := 0.0
	for key, taskIDs := range sol.Assignments {
		if len(taskIDs) == 0 {
			continue
		}
		d, ok := drones[key]
		if !ok {
			continue
		}
		_, clock, _, err := e.Replay(ctx, d, taskIDs, tasks)
		if err != nil {
			e.Log.Warn(ctx, "route replay failed; contribution skipped",
				logging.String("drone_key", key),
				logging.String("error", err.Error()),
			)
			continue
		}
		if clock > maxClock {
			maxClock = clock
		}
	}
	if sol.Metrics == nil {
		sol.Metrics = make(map[string]float64)
	}
	sol.Metrics[MetricCompletionTime] = maxClock
	return maxClock
}
