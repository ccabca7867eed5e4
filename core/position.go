package core

import (
	"math"

	"github.com/signalsfoundry/drone-dispatch/model"
)

// Geographic rules: visibility, threat safety, and desirability scoring for
// candidate deployment positions. Visibility and threat safety are hard
// constraints and fail closed on any collaborator trouble; scoring is a soft
// preference.

// DefaultSafetyBufferM is the threat standoff applied when the caller passes
// a non-positive buffer.
const DefaultSafetyBufferM = 5000.0

// Clustering penalty parameters: positions within the ramp distance of an
// occupied position are penalised linearly, and positions inside the hard
// band take an additional flat penalty.
const (
	penaltyRampM     = 20000.0
	penaltyRampScale = 50000.0
	penaltyHardM     = 5000.0
	penaltyHardScale = 100000.0
)

// Visible reports whether the target can be seen from the candidate
// position. Both endpoints are projected into the oracle's grid; a target
// without authoritative elevation is resolved by the oracle. Any projection
// or oracle failure reads as not visible.
func Visible(pos model.GeoPoint, target model.Target, oracle TerrainOracle) bool {
	if oracle == nil {
		return false
	}

	posElev := pos.Elev
	pg, err := oracle.Project(pos.Lon, pos.Lat, &posElev)
	if err != nil {
		return false
	}

	var targetElev *float64
	if target.HasElevation {
		e := target.Location.Elev
		targetElev = &e
	}
	tg, err := oracle.Project(target.Location.Lon, target.Location.Lat, targetElev)
	if err != nil {
		return false
	}

	visible, err := oracle.LineOfSight(pg, tg)
	if err != nil {
		return false
	}
	return visible
}

// PositionScore scores a candidate position: closer to the target is better,
// crowding already-occupied positions is worse. Higher is better.
//
// Point targets score 100000/(1+d); area targets add a coverage base of
// coverage*10000 over a 50000/(1+d) distance term. The clustering penalty
// against the nearest occupied position is zero beyond 20 km, ramps linearly
// to 50000 at zero distance, and adds a flat 100000 inside 5 km.
func PositionScore(pos model.GeoPoint, target model.Target, ledger LedgerReader, distance DistanceFunc) float64 {
	if distance == nil {
		distance = HaversineDistance
	}

	d := distance(pos, target.Location)
	var base float64
	if target.Kind == model.TargetArea {
		base = target.Coverage*10000 + 50000/(1+d)
	} else {
		base = 100000 / (1 + d)
	}

	penalty := 0.0
	if ledger != nil {
		occupied := ledger.OccupiedPositions()
		if len(occupied) > 0 {
			nearest := math.Inf(1)
			for _, p := range occupied {
				if dd := distance(pos, p); dd < nearest {
					nearest = dd
				}
			}
			if nearest < penaltyRampM {
				penalty = (penaltyRampM - nearest) / penaltyRampM * penaltyRampScale
				if nearest < penaltyHardM {
					penalty += penaltyHardScale
				}
			}
		}
	}

	return base - penalty
}

// ThreatSafe is the hard standoff constraint. A non-positive buffer uses
// DefaultSafetyBufferM. A missing or failing oracle reads as unsafe.
func ThreatSafe(pos model.GeoPoint, threats []model.Threat, bufferM float64, oracle ThreatOracle) bool {
	if oracle == nil {
		return false
	}
	if bufferM <= 0 {
		bufferM = DefaultSafetyBufferM
	}
	safe, err := oracle.IsSafe(pos, threats, bufferM)
	if err != nil {
		return false
	}
	return safe
}
