package main

import (
	"context"
	"encoding/json"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sort"

	"github.com/signalsfoundry/drone-dispatch/core"
	"github.com/signalsfoundry/drone-dispatch/internal/logging"
	"github.com/signalsfoundry/drone-dispatch/internal/observability"
	"github.com/signalsfoundry/drone-dispatch/model"
)

// assignmentsFile is the solver's candidate assignment, keyed by drone key
// ("<airportID>_<droneID>").
type assignmentsFile struct {
	Assignments map[string][]int64 `json:"assignments"`
}

// taskReport is one task's verdict in the printed report.
type taskReport struct {
	TaskID   int64  `json:"task_id"`
	Feasible bool   `json:"feasible"`
	Status   string `json:"status"`
	Reason   string `json:"reason,omitempty"`
}

type droneReport struct {
	DroneKey string       `json:"drone_key"`
	Feasible bool         `json:"feasible"`
	Tasks    []taskReport `json:"tasks"`
	Error    string       `json:"error,omitempty"`
}

type evalReport struct {
	Drones  []droneReport      `json:"drones"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
}

func main() {
	scenarioPath := flag.String("scenario", "configs/scenario.json", "Path to the JSON scenario (airports, drones, tasks, ledger)")
	assignmentsPath := flag.String("assignments", "", "Path to a JSON assignments file to evaluate")
	metricsAddr := flag.String("metrics-addr", "", "HTTP address for Prometheus /metrics; empty disables the listener")
	objectives := flag.Bool("objectives", true, "compute aggregate objectives for the assignment")
	flag.Parse()

	log := logging.NewFromEnv()
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	collector, err := observability.NewRulesCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}
	metricsSrv := serveMetrics(*metricsAddr, collector, log)

	ledger := core.NewLedger()
	scenario, err := loadScenario(ledger, *scenarioPath)
	if err != nil {
		log.Error(ctx, "failed to load scenario", logging.String("path", *scenarioPath), logging.String("error", err.Error()))
		os.Exit(1)
	}
	collector.SetScenarioCounts(len(scenario.Airports), len(scenario.Drones), len(scenario.Tasks))
	log.Info(ctx, "scenario loaded",
		logging.Int("airports", len(scenario.Airports)),
		logging.Int("drones", len(scenario.Drones)),
		logging.Int("tasks", len(scenario.Tasks)),
	)

	if *assignmentsPath == "" {
		log.Error(ctx, "no assignments file given; nothing to evaluate")
		os.Exit(1)
	}
	assignments, err := loadAssignments(*assignmentsPath)
	if err != nil {
		log.Error(ctx, "failed to load assignments", logging.String("path", *assignmentsPath), logging.String("error", err.Error()))
		os.Exit(1)
	}

	engine := core.NewSequenceEngine(nil, ledger)
	engine.Log = log
	engine.Sink = core.MultiSink{collector.Sink(), core.LoggerSink{Log: log}}

	dronesByKey := make(map[string]*model.Drone, len(scenario.Drones))
	for _, d := range scenario.Drones {
		dronesByKey[d.Key()] = d
	}

	report, allFeasible := evaluate(ctx, engine, collector, log, dronesByKey, scenario.Tasks, assignments)

	if *objectives && allFeasible {
		sol := model.NewSolution()
		for key, taskIDs := range assignments.Assignments {
			if d, ok := dronesByKey[key]; ok {
				sol.Assign(d, taskIDs)
			}
		}
		core.TotalDistance(ctx, engine, sol, dronesByKey, scenario.Tasks)
		core.Makespan(ctx, engine, sol, dronesByKey, scenario.Tasks)
		report.Metrics = sol.Metrics
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		log.Error(ctx, "failed to write report", logging.String("error", err.Error()))
		os.Exit(1)
	}

	if metricsSrv != nil {
		log.Info(ctx, "evaluation finished; holding for metrics scrape, interrupt to exit")
		stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		<-stopCtx.Done()
		stop()
		_ = metricsSrv.Shutdown(context.Background())
	}

	if !allFeasible {
		os.Exit(2)
	}
}

func evaluate(
	ctx context.Context,
	engine *core.SequenceEngine,
	collector *observability.RulesCollector,
	log logging.Logger,
	drones map[string]*model.Drone,
	tasks map[int64]*model.Task,
	assignments *assignmentsFile,
) (*evalReport, bool) {
	keys := make([]string, 0, len(assignments.Assignments))
	for key := range assignments.Assignments {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	report := &evalReport{}
	allFeasible := true

	for _, key := range keys {
		taskIDs := assignments.Assignments[key]
		dr := droneReport{DroneKey: key}

		d, ok := drones[key]
		if !ok {
			dr.Error = "unknown drone key"
			allFeasible = false
			report.Drones = append(report.Drones, dr)
			continue
		}

		evalCtx, evalLog := logging.WithEvaluationLogger(ctx, log)
		evalCtx = logging.ContextWithLogger(evalCtx, evalLog)
		evalCtx, span := observability.StartSequenceSpan(evalCtx, key, len(taskIDs))
		result, err := engine.CheckSequence(evalCtx, d, taskIDs, tasks)
		collector.ObserveSequenceCheck(len(taskIDs))
		if err != nil {
			span.RecordError(err)
			span.End()
			dr.Error = err.Error()
			allFeasible = false
			report.Drones = append(report.Drones, dr)
			evalLog.Error(evalCtx, "sequence check aborted",
				logging.String("drone_key", key),
				logging.String("error", err.Error()),
			)
			continue
		}
		span.End()

		dr.Feasible = result.AllFeasible()
		if !dr.Feasible {
			allFeasible = false
		}
		for _, id := range taskIDs {
			tr := result[id]
			dr.Tasks = append(dr.Tasks, taskReport{
				TaskID:   id,
				Feasible: tr.Status.Feasible(),
				Status:   tr.Status.String(),
				Reason:   tr.Reason,
			})
		}
		report.Drones = append(report.Drones, dr)
	}

	return report, allFeasible
}

func loadScenario(ledger core.LedgerWriter, path string) (*core.DispatchScenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return core.LoadScenario(ledger, f)
}

func loadAssignments(path string) (*assignmentsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out assignmentsFile
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func serveMetrics(addr string, collector *observability.RulesCollector, log logging.Logger) *http.Server {
	if addr == "" || collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()
	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}
