package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/signalsfoundry/drone-dispatch/core"
)

// RulesCollector bundles Prometheus metrics for the rule evaluation surface
// and adapts them to the core's evaluation event stream.
type RulesCollector struct {
	gatherer prometheus.Gatherer

	RuleEvaluations *prometheus.CounterVec
	SequenceChecks  prometheus.Counter
	SequenceLength  prometheus.Histogram

	ScenarioAirports prometheus.Gauge
	ScenarioDrones   prometheus.Gauge
	ScenarioTasks    prometheus.Gauge
}

// NewRulesCollector registers the rule metrics against the provided
// registerer, defaulting to the global Prometheus registry when nil.
func NewRulesCollector(reg prometheus.Registerer) (*RulesCollector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dispatch_rule_evaluations_total",
		Help: "Total number of rule evaluations, labeled by rule and verdict.",
	}, []string{"rule", "verdict"})
	evaluations, err := registerCounterVec(reg, evaluations, "dispatch_rule_evaluations_total")
	if err != nil {
		return nil, err
	}

	checks := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dispatch_sequence_checks_total",
		Help: "Total number of task-sequence feasibility checks.",
	})
	checks, err = registerCounter(reg, checks, "dispatch_sequence_checks_total")
	if err != nil {
		return nil, err
	}

	length := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "dispatch_sequence_length_tasks",
		Help:    "Number of tasks per sequence feasibility check.",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
	})
	length, err = registerHistogram(reg, length, "dispatch_sequence_length_tasks")
	if err != nil {
		return nil, err
	}

	airports, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dispatch_scenario_airports",
		Help: "Current number of airports in the loaded scenario.",
	}), "dispatch_scenario_airports")
	if err != nil {
		return nil, err
	}
	drones, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dispatch_scenario_drones",
		Help: "Current number of drones in the loaded scenario.",
	}), "dispatch_scenario_drones")
	if err != nil {
		return nil, err
	}
	tasks, err := registerGauge(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dispatch_scenario_tasks",
		Help: "Current number of tasks in the loaded scenario.",
	}), "dispatch_scenario_tasks")
	if err != nil {
		return nil, err
	}

	return &RulesCollector{
		gatherer:         gatherer,
		RuleEvaluations:  evaluations,
		SequenceChecks:   checks,
		SequenceLength:   length,
		ScenarioAirports: airports,
		ScenarioDrones:   drones,
		ScenarioTasks:    tasks,
	}, nil
}

// Sink returns a core.Sink that counts every rule evaluation by verdict.
func (c *RulesCollector) Sink() core.Sink {
	return metricsSink{collector: c}
}

// ObserveSequenceCheck records one sequence feasibility check over the given
// number of tasks.
func (c *RulesCollector) ObserveSequenceCheck(taskCount int) {
	if c == nil {
		return
	}
	if c.SequenceChecks != nil {
		c.SequenceChecks.Inc()
	}
	if c.SequenceLength != nil {
		c.SequenceLength.Observe(float64(taskCount))
	}
}

// SetScenarioCounts drives the scenario gauges after a load or reload.
func (c *RulesCollector) SetScenarioCounts(airports, drones, tasks int) {
	if c == nil {
		return
	}
	if c.ScenarioAirports != nil {
		c.ScenarioAirports.Set(float64(airports))
	}
	if c.ScenarioDrones != nil {
		c.ScenarioDrones.Set(float64(drones))
	}
	if c.ScenarioTasks != nil {
		c.ScenarioTasks.Set(float64(tasks))
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *RulesCollector) Handler() http.Handler {
	gatherer := c.gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

type metricsSink struct {
	collector *RulesCollector
}

func (s metricsSink) Record(_ context.Context, ev core.Event) {
	if s.collector == nil || s.collector.RuleEvaluations == nil {
		return
	}
	verdict := "fail"
	if ev.Pass {
		verdict = "pass"
	}
	s.collector.RuleEvaluations.WithLabelValues(ev.Rule, verdict).Inc()
}

func registerCounterVec(reg prometheus.Registerer, vec *prometheus.CounterVec, name string) (*prometheus.CounterVec, error) {
	if err := reg.Register(vec); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return vec, nil
}

func registerCounter(reg prometheus.Registerer, counter prometheus.Counter, name string) (prometheus.Counter, error) {
	if err := reg.Register(counter); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Counter); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return counter, nil
}

func registerHistogram(reg prometheus.Registerer, histogram prometheus.Histogram, name string) (prometheus.Histogram, error) {
	if err := reg.Register(histogram); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Histogram); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return histogram, nil
}

func registerGauge(reg prometheus.Registerer, gauge prometheus.Gauge, name string) (prometheus.Gauge, error) {
	if err := reg.Register(gauge); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(prometheus.Gauge); ok {
				return existing, nil
			}
			return nil, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		return nil, err
	}
	return gauge, nil
}
