package model

// DroneInfo is the per-drone snapshot a Solution keeps so workload rules can
// reason about assignments without resolving full Drone objects.
type DroneInfo struct {
	DroneID   int64
	AirportID int64
	Type      DroneType
}

// Solution is the solver's working assignment: drone key -> ordered task IDs.
// The rules here never construct assignments; they read them and write
// solution-level metrics.
type Solution struct {
	Assignments map[string][]int64
	DroneInfo   map[string]DroneInfo
	Metrics     map[string]float64
}

// NewSolution returns an empty solution with all maps initialised.
func NewSolution() *Solution {
	return &Solution{
		Assignments: make(map[string][]int64),
		DroneInfo:   make(map[string]DroneInfo),
		Metrics:     make(map[string]float64),
	}
}

// Assign records a drone's ordered task list and its info snapshot.
func (s *Solution) Assign(d *Drone, taskIDs []int64) {
	key := d.Key()
	s.Assignments[key] = taskIDs
	info := DroneInfo{DroneID: d.ID, Type: d.Type}
	if d.Airport != nil {
		info.AirportID = d.Airport.ID
	}
	s.DroneInfo[key] = info
}

// HasTasks reports whether the keyed drone currently has a non-empty task
// list.
func (s *Solution) HasTasks(key string) bool {
	return s != nil && len(s.Assignments[key]) > 0
}
