package core

import (
	"context"
	"math"
	"testing"

	"github.com/signalsfoundry/drone-dispatch/model"
)

func TestAggregateObjectives(t *testing.T) {
	engine := newTestEngine(NewLedger())

	a1 := testAirport(1, 0)
	a2 := testAirport(2, 0)
	d1 := testDrone(11, a1, 100, 1e6)
	d2 := testDrone(12, a2, 100, 1e6)
	drones := map[string]*model.Drone{d1.Key(): d1, d2.Key(): d2}

	tasks := taskSet(
		testTask(1, 1000, 0, 0, 50),
		testTask(2, 3000, 0, 0, 50),
		testTask(3, 500, 0, 0, 50),
	)

	sol := model.NewSolution()
	sol.Assign(d1, []int64{1, 2})
	sol.Assign(d2, []int64{3})

	gotDist := TotalDistance(context.Background(), engine, sol, drones, tasks)
	if math.Abs(gotDist-3500) > 1e-9 {
		t.Errorf("TotalDistance = %v, want 3500", gotDist)
	}
	if sol.Metrics[MetricTotalDistance] != gotDist {
		t.Errorf("metric %q not written", MetricTotalDistance)
	}

	// Drone 1: arrive task 1 at 10, finish 60; arrive task 2 at 80, finish
	// 130. Drone 2 finishes task 3 at 55.
	gotSpan := Makespan(context.Background(), engine, sol, drones, tasks)
	if math.Abs(gotSpan-130) > 1e-9 {
		t.Errorf("Makespan = %v, want 130", gotSpan)
	}
	if sol.Metrics[MetricCompletionTime] != gotSpan {
		t.Errorf("metric %q not written", MetricCompletionTime)
	}
}

func TestAggregateObjectives_EmptySolution(t *testing.T) {
	engine := newTestEngine(NewLedger())
	sol := model.NewSolution()

	if got := TotalDistance(context.Background(), engine, sol, nil, nil); got != 0 {
		t.Errorf("TotalDistance on empty solution = %v, want 0", got)
	}
	if got := Makespan(context.Background(), engine, sol, nil, nil); got != 0 {
		t.Errorf("Makespan on empty solution = %v, want 0", got)
	}
	if _, ok := sol.Metrics[MetricTotalDistance]; !ok {
		t.Errorf("empty solution must still carry a zero %q metric", MetricTotalDistance)
	}
	if _, ok := sol.Metrics[MetricCompletionTime]; !ok {
		t.Errorf("empty solution must still carry a zero %q metric", MetricCompletionTime)
	}
}

func TestAggregateObjectives_ErroredReplaySkipped(t *testing.T) {
	engine := newTestEngine(NewLedger())

	home := testAirport(1, 0)
	good := testDrone(11, home, 100, 1e6)
	stuck := testDrone(12, home, 0, 1e6) // zero speed fails the simulator
	drones := map[string]*model.Drone{good.Key(): good, stuck.Key(): stuck}

	tasks := taskSet(testTask(1, 1000, 0, 0, 50))

	sol := model.NewSolution()
	sol.Assign(good, []int64{1})
	sol.Assign(stuck, []int64{1})

	if got := TotalDistance(context.Background(), engine, sol, drones, tasks); math.Abs(got-1000) > 1e-9 {
		t.Errorf("TotalDistance = %v, want only the healthy drone's 1000", got)
	}
}

func TestAggregateObjectives_UnassignedDroneIgnored(t *testing.T) {
	engine := newTestEngine(NewLedger())
	home := testAirport(1, 0)
	d := testDrone(11, home, 100, 1e6)

	sol := model.NewSolution()
	sol.Assign(d, nil)

	// The drone key is present with no tasks; nothing to replay.
	if got := TotalDistance(context.Background(), engine, sol, map[string]*model.Drone{d.Key(): d}, nil); got != 0 {
		t.Errorf("TotalDistance = %v, want 0 for an empty assignment", got)
	}
}
