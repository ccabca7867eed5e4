package core

import (
	"math"
	"sort"

	"github.com/signalsfoundry/drone-dispatch/model"
)

// Capability rules: stateless predicates matching a drone's static
// capabilities against a task's requirements. None of these mutate the drone
// or the ledger.

// PayloadVerdict is the outcome of the two-phase payload check. A shape
// mismatch (the drone cannot do the job at all) is distinguishable from an
// inventory shortfall (the drone could, but the shared weapon stock is
// depleted).
type PayloadVerdict int

const (
	PayloadOK PayloadVerdict = iota
	PayloadShapeMismatch
	PayloadInventoryShort
)

func (v PayloadVerdict) String() string {
	switch v {
	case PayloadOK:
		return "ok"
	case PayloadShapeMismatch:
		return "shape mismatch"
	case PayloadInventoryShort:
		return "inventory short"
	default:
		return "unknown"
	}
}

// TypeMatch reports whether the drone's type is one the task accepts.
func TypeMatch(d *model.Drone, t *model.Task) bool {
	for _, rt := range t.RequiredTypes {
		if d.Type == rt {
			return true
		}
	}
	return false
}

// PayloadMatch runs MatchPayload against the drone's full payload
// capability.
func PayloadMatch(d *model.Drone, t *model.Task, ledger LedgerReader) (PayloadVerdict, model.PayloadKind) {
	return MatchPayload(d.Payload, t, ledger)
}

// MatchPayload checks a payload capability map (the drone's own, or the
// sequence engine's remaining snapshot) against a task's requirements.
//
// Phase one checks the capability shape: every required kind must be carried
// with at least the required range and level, failing on the first shortfall.
// Phase two, reached only when the shape matches, checks accumulated
// consumable demand against the shared weapon inventory. The phases must not
// reorder: a shape mismatch is always reported without inspecting inventory.
//
// The returned kind identifies the offending requirement on failure, and is
// zero on success. Kinds are visited in ascending order so the report is
// deterministic.
func MatchPayload(capability map[model.PayloadKind]model.PayloadSpec, t *model.Task, ledger LedgerReader) (PayloadVerdict, model.PayloadKind) {
	kinds := make([]model.PayloadKind, 0, len(t.RequiredPayloads))
	for k := range t.RequiredPayloads {
		kinds = append(kinds, k)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	needed := make(map[model.PayloadKind]float64)
	for _, kind := range kinds {
		req := t.RequiredPayloads[kind]
		spec, ok := capability[kind]
		if !ok {
			return PayloadShapeMismatch, kind
		}
		if spec.Range < req.Range || spec.Level < req.Level {
			return PayloadShapeMismatch, kind
		}
		if kind.Consumable() {
			needed[kind] += req.Level
		}
	}

	for _, kind := range kinds {
		want, ok := needed[kind]
		if !ok {
			continue
		}
		stock := 0
		if ledger != nil {
			stock = ledger.WeaponStock(kind)
		}
		if float64(stock) < want {
			return PayloadInventoryShort, kind
		}
	}
	return PayloadOK, 0
}

// RangeOK reports whether a total transit distance fits the given range.
// Callers pass the effective range (see EffectiveRange) wherever maintenance
// degradation applies.
func RangeOK(totalDistance, maxRange float64) bool {
	return totalDistance <= maxRange
}

// EffectiveRange is the lesser of the drone's rated maximum range and its
// remaining mileage before mandatory maintenance. An unrecorded maintenance
// entry means unlimited mileage.
func EffectiveRange(d *model.Drone, ledger LedgerReader) float64 {
	maxRange := d.MaxRange
	if ledger == nil {
		return maxRange
	}
	if remaining, ok := ledger.MaintenanceRemaining(d.ID); ok {
		return math.Min(maxRange, remaining)
	}
	return maxRange
}

// SpeedOK reports whether the drone can cover the task's transit distance
// within its maximum transit duration. A non-positive MaxDuration means the
// task places no speed constraint.
func SpeedOK(d *model.Drone, t *model.Task) bool {
	if t.MaxDuration <= 0 {
		return true
	}
	return d.CruiseSpeed >= t.Distance/t.MaxDuration
}

// TimeWindowOK checks a single task's window in isolation: with the given
// transit distance, can the drone reach the task before its deadline and
// finish on-station work before the window closes? Takeoff is at
// max(0, start - travel), so a window already underway is flown immediately.
func TimeWindowOK(d *model.Drone, t *model.Task, distance float64) bool {
	if d.CruiseSpeed <= 0 {
		return false
	}
	travel := distance / d.CruiseSpeed
	takeoff := math.Max(0, t.Start-travel)
	arrival := takeoff + travel
	if arrival > t.Deadline() {
		return false
	}
	actualStart := math.Max(arrival, t.Start)
	return actualStart+t.Duration <= t.Deadline()
}
