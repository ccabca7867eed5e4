package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/signalsfoundry/drone-dispatch/core"
	"github.com/signalsfoundry/drone-dispatch/internal/logging"
	"github.com/signalsfoundry/drone-dispatch/internal/observability"
	"github.com/signalsfoundry/drone-dispatch/model"
)

const evalScenario = `{
  "airports": [{"id": 1, "name": "base", "location": {"lon": 34.78, "lat": 32.08}}],
  "drones": [
    {"id": 11, "type": "RECON", "airport_id": 1, "cruise_speed": 40,
     "max_range": 500000, "payload": {"2": {"range": 50000, "level": 3}}}
  ],
  "tasks": [
    {"id": 100, "name": "overwatch", "start": 0, "end": 0, "duration": 600,
     "location": {"lon": 34.9, "lat": 32.0}, "required_types": ["RECON"]}
  ]
}`

const evalAssignments = `{"assignments": {"1_11": [100]}}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestEvaluate_FeasibleAssignment(t *testing.T) {
	dir := t.TempDir()
	scenarioPath := writeFile(t, dir, "scenario.json", evalScenario)
	assignmentsPath := writeFile(t, dir, "assignments.json", evalAssignments)

	ledger := core.NewLedger()
	scenario, err := loadScenario(ledger, scenarioPath)
	if err != nil {
		t.Fatalf("loadScenario: %v", err)
	}
	assignments, err := loadAssignments(assignmentsPath)
	if err != nil {
		t.Fatalf("loadAssignments: %v", err)
	}

	collector, err := observability.NewRulesCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewRulesCollector: %v", err)
	}

	engine := core.NewSequenceEngine(nil, ledger)
	drones := map[string]*model.Drone{}
	for _, d := range scenario.Drones {
		drones[d.Key()] = d
	}

	report, ok := evaluate(context.Background(), engine, collector, logging.Noop(), drones, scenario.Tasks, assignments)
	if !ok {
		t.Fatalf("expected a feasible evaluation, report = %+v", report)
	}
	if len(report.Drones) != 1 {
		t.Fatalf("report drones = %d, want 1", len(report.Drones))
	}
	dr := report.Drones[0]
	if dr.DroneKey != "1_11" || !dr.Feasible || len(dr.Tasks) != 1 {
		t.Errorf("drone report = %+v", dr)
	}
	if !dr.Tasks[0].Feasible || dr.Tasks[0].TaskID != 100 {
		t.Errorf("task report = %+v", dr.Tasks[0])
	}
}

func TestEvaluate_UnknownDroneKey(t *testing.T) {
	collector, err := observability.NewRulesCollector(prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("NewRulesCollector: %v", err)
	}
	engine := core.NewSequenceEngine(nil, core.NewLedger())
	assignments := &assignmentsFile{Assignments: map[string][]int64{"9_99": {1}}}

	report, ok := evaluate(context.Background(), engine, collector, logging.Noop(), nil, nil, assignments)
	if ok {
		t.Fatalf("unknown drone key must make the evaluation infeasible")
	}
	if report.Drones[0].Error == "" {
		t.Errorf("unknown drone must carry an error, report = %+v", report.Drones[0])
	}
}

func TestLoadAssignments_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "bad.json", "{")
	if _, err := loadAssignments(path); err == nil {
		t.Fatalf("truncated assignments must fail to load")
	}
}
