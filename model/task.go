package model

import (
	"math"
	"strconv"
)

// DefaultPriority is assumed when a task carries no explicit priority.
const DefaultPriority = 5

// Task is a unit of work a drone can be assigned to. Tasks are immutable
// once created; rules only read them.
type Task struct {
	ID   int64
	Name string

	// Priority ranks urgency: 1 is highest, 10 lowest. Zero means unset and
	// is treated as DefaultPriority; out-of-range values are clamped into
	// [1,10] before weighting.
	Priority int

	// Start and End bound the execution window in simulation time-units.
	// End of zero means the window never closes.
	Start float64
	End   float64

	// Duration is on-station execution time. MaxDuration, when positive,
	// bounds transit time and so implies a minimum cruise speed.
	Duration    float64
	MaxDuration float64

	// Distance is the point-to-point transit distance in metres used by the
	// speed rule.
	Distance float64

	Location GeoPoint

	RequiredTypes    []DroneType
	RequiredPayloads map[PayloadKind]PayloadRequirement

	// Bandwidth is the datalink requirement, in Mbit/s.
	Bandwidth float64
}

// Deadline returns the window close, treating an unset End as never.
func (t *Task) Deadline() float64 {
	if t == nil || t.End == 0 {
		return math.Inf(1)
	}
	return t.End
}

// EffectivePriority returns the clamped priority, substituting the default
// for unset values.
func (t *Task) EffectivePriority() int {
	if t == nil || t.Priority == 0 {
		return DefaultPriority
	}
	p := t.Priority
	if p < 1 {
		p = 1
	}
	if p > 10 {
		p = 10
	}
	return p
}

// DisplayName returns the task's name, or a synthetic label when unnamed.
func (t *Task) DisplayName() string {
	if t == nil {
		return "task ?"
	}
	if t.Name != "" {
		return t.Name
	}
	return "task " + strconv.FormatInt(t.ID, 10)
}
