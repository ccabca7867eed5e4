package core

import (
	"github.com/signalsfoundry/drone-dispatch/model"
)

// Capacity rules: interval accounting for runways and headcount quotas for
// fleets and controllers. All of these are read-only over the ledger and the
// solution snapshot; re-checking without an intervening mutation yields the
// same verdict.

// AirportOpen reports whether an airport accepts operations. Resolution
// order: the airport's own Open flag when set, then the ledger's recorded
// status, then open-by-default.
func AirportOpen(a *model.Airport, ledger LedgerReader) bool {
	if a == nil {
		return false
	}
	if a.Open != nil {
		return *a.Open
	}
	if ledger != nil {
		if open, ok := ledger.AirportStatus(a.ID); ok {
			return open
		}
	}
	return true
}

// RunwayAvailable reports whether the airport can absorb one more runway
// event over the half-open window [eventTime, eventTime+eventDuration). It
// counts existing occupancy windows that overlap and compares against the
// airport's runway count. A linear scan is deliberate: per-airport occupancy
// logs stay small over a solver run, and the overlap semantics are the
// contract, not the data structure.
func RunwayAvailable(a *model.Airport, eventTime, eventDuration float64, ledger LedgerReader) bool {
	if a == nil {
		return false
	}
	windowStart := eventTime
	windowEnd := eventTime + eventDuration

	overlapping := 0
	if ledger != nil {
		for _, w := range ledger.Occupancy(a.ID) {
			// Half-open overlap: touching endpoints do not conflict.
			if !(windowEnd <= w.Start || windowStart >= w.End) {
				overlapping++
			}
		}
	}
	return overlapping < a.Runways()
}

// TakeoffRunwayAvailable checks runway capacity at the drone's home airport
// for a takeoff beginning at eventTime, using the ledger's configured
// takeoff hold time.
func TakeoffRunwayAvailable(d *model.Drone, eventTime float64, ledger LedgerReader) bool {
	if d == nil || d.Airport == nil {
		return false
	}
	duration := DefaultRunwayEventDuration
	if ledger != nil {
		duration = ledger.TakeoffDuration()
	}
	return RunwayAvailable(d.Airport, eventTime, duration, ledger)
}

// LandingRunwayAvailable is the landing counterpart of
// TakeoffRunwayAvailable.
func LandingRunwayAvailable(d *model.Drone, eventTime float64, ledger LedgerReader) bool {
	if d == nil || d.Airport == nil {
		return false
	}
	duration := DefaultRunwayEventDuration
	if ledger != nil {
		duration = ledger.LandingDuration()
	}
	return RunwayAvailable(d.Airport, eventTime, duration, ledger)
}

// FleetQuotaAvailable reports whether at least one drone of the given type
// remains available, taking the lower of the remaining counter and the
// configured limit. The solver decrements the counter on commit; this rule
// only reads.
func FleetQuotaAvailable(t model.DroneType, ledger LedgerReader) bool {
	if ledger == nil {
		return false
	}
	available := ledger.TypeCount(t)
	if limit := ledger.TypeLimit(t); limit < available {
		available = limit
	}
	return available > 0
}

// ControllerWorkloadOK checks whether assigning tasks to the target drone
// would exceed the airport's controller limits. It recomputes usage from the
// solution snapshot on every call rather than keeping incremental counters:
// solutions mutate between calls and correctness wins over speed here.
//
// A target drone that already has tasks is already counted in the usage and
// passes; only a drone gaining its first assignment can push the airport
// over a limit.
func ControllerWorkloadOK(a *model.Airport, droneType model.DroneType, targetKey string, sol *model.Solution) bool {
	if a == nil || sol == nil {
		return false
	}

	usedTotal := 0
	usedByType := make(map[model.DroneType]int)
	for key, tasks := range sol.Assignments {
		if len(tasks) == 0 {
			continue
		}
		info, ok := sol.DroneInfo[key]
		if !ok || info.AirportID != a.ID {
			continue
		}
		usedTotal++
		usedByType[info.Type]++
	}

	if sol.HasTasks(targetKey) {
		return true
	}

	if a.TotalLimit != nil && usedTotal >= *a.TotalLimit {
		return false
	}
	typeLimit := 0
	if a.TypeLimits != nil {
		typeLimit = a.TypeLimits[droneType]
	}
	return usedByType[droneType] < typeLimit
}
