package model

import "fmt"

// Drone is a single airframe. Static capability lives here; consumable state
// (remaining mileage before maintenance, shared weapon stock) lives in the
// resource ledger so it can be shared across candidate evaluations.
//
// A Drone references its home Airport but does not own it. Only the sequence
// engine's simulation mutates payload state, and then only on a copy taken
// with ClonePayload.
type Drone struct {
	ID      int64
	Type    DroneType
	Airport *Airport

	// CruiseSpeed in metres per time-unit.
	CruiseSpeed float64
	// MaxRange is the rated maximum range in metres, before any maintenance
	// degradation.
	MaxRange float64

	// Payload maps each carried payload kind to its spec.
	Payload map[PayloadKind]PayloadSpec
}

// Key returns the solution-assignment key for this drone, `<airport>_<id>`.
func (d *Drone) Key() string {
	airportID := int64(0)
	if d.Airport != nil {
		airportID = d.Airport.ID
	}
	return fmt.Sprintf("%d_%d", airportID, d.ID)
}

// ClonePayload returns an independent copy of the payload map for the
// sequence engine to consume against.
func (d *Drone) ClonePayload() map[PayloadKind]PayloadSpec {
	out := make(map[PayloadKind]PayloadSpec, len(d.Payload))
	for k, v := range d.Payload {
		out[k] = v
	}
	return out
}
