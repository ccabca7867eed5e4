package core

import (
	"errors"
	"math"

	"github.com/signalsfoundry/drone-dispatch/model"
)

var errNonPositiveSpeed = errors.New("non-positive cruise speed")

// RouteSimulator is the route/time collaborator the sequence engine composes
// with. It answers three questions about one drone flying one leg: when to
// take off for the first task, when the drone would arrive at a task from a
// given state, and what the state is after executing that task.
type RouteSimulator interface {
	// OptimalTakeoff returns the takeoff time for the first task of a
	// sequence: as late as possible while still arriving at the task's
	// requested start, floored at time zero.
	OptimalTakeoff(d *model.Drone, first *model.Task) (float64, error)
	// EarliestArrival returns the arrival time at the task when departing
	// `from` at `clock`.
	EarliestArrival(d *model.Drone, t *model.Task, from model.GeoPoint, clock float64) (float64, error)
	// SimulateLeg executes the task from the given state and returns the new
	// location, clock, and cumulative range used.
	SimulateLeg(d *model.Drone, t *model.Task, from model.GeoPoint, clock, used float64) (model.GeoPoint, float64, float64, error)
}

// GreatCircleSimulator is the default RouteSimulator: straight great-circle
// transit at cruise speed, on-station time equal to the task's duration.
type GreatCircleSimulator struct {
	Distance DistanceFunc
}

// NewGreatCircleSimulator builds a simulator over the given distance
// primitive, defaulting to HaversineDistance.
func NewGreatCircleSimulator(distance DistanceFunc) *GreatCircleSimulator {
	if distance == nil {
		distance = HaversineDistance
	}
	return &GreatCircleSimulator{Distance: distance}
}

func (g *GreatCircleSimulator) travelTime(d *model.Drone, from, to model.GeoPoint) (float64, error) {
	if d.CruiseSpeed <= 0 {
		return 0, errNonPositiveSpeed
	}
	return g.Distance(from, to) / d.CruiseSpeed, nil
}

func (g *GreatCircleSimulator) OptimalTakeoff(d *model.Drone, first *model.Task) (float64, error) {
	if d.Airport == nil {
		return 0, ErrNoHomeAirport
	}
	travel, err := g.travelTime(d, d.Airport.Location, first.Location)
	if err != nil {
		return 0, err
	}
	return math.Max(0, first.Start-travel), nil
}

func (g *GreatCircleSimulator) EarliestArrival(d *model.Drone, t *model.Task, from model.GeoPoint, clock float64) (float64, error) {
	travel, err := g.travelTime(d, from, t.Location)
	if err != nil {
		return 0, err
	}
	return clock + travel, nil
}

func (g *GreatCircleSimulator) SimulateLeg(d *model.Drone, t *model.Task, from model.GeoPoint, clock, used float64) (model.GeoPoint, float64, float64, error) {
	travel, err := g.travelTime(d, from, t.Location)
	if err != nil {
		return from, clock, used, err
	}
	arrival := clock + travel
	actualStart := math.Max(arrival, t.Start)
	return t.Location, actualStart + t.Duration, used + g.Distance(from, t.Location), nil
}
