package model

import "strconv"

// PayloadKind identifies a class of mission payload. The numeric values are
// stable because scenario files and the shared weapon inventory key on them.
type PayloadKind int

const (
	PayloadUnknown PayloadKind = iota
	// PayloadStrike is munitions. It is the only consumable kind: flying a
	// strike task decrements both the drone's remaining load and the shared
	// weapon inventory.
	PayloadStrike
	// PayloadSensor covers reusable reconnaissance/sensing packages.
	PayloadSensor
	// PayloadRelay is a communications relay package.
	PayloadRelay
	// PayloadJammer is an electronic warfare package.
	PayloadJammer
)

// Consumable reports whether using this payload kind depletes shared
// inventory.
func (k PayloadKind) Consumable() bool {
	return k == PayloadStrike
}

func (k PayloadKind) String() string {
	switch k {
	case PayloadStrike:
		return "strike"
	case PayloadSensor:
		return "sensor"
	case PayloadRelay:
		return "relay"
	case PayloadJammer:
		return "jammer"
	default:
		return "payload-" + strconv.Itoa(int(k))
	}
}

// PayloadSpec is what a drone carries for one payload kind: an effective
// range in metres and a level (quality grade for reusable kinds, remaining
// quantity for consumable kinds).
type PayloadSpec struct {
	Range float64
	Level float64
}

// PayloadRequirement is what a task demands of one payload kind. Both fields
// are minimums; for consumable kinds Level is the quantity expended.
type PayloadRequirement struct {
	Range float64
	Level float64
}
