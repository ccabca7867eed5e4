package core

import "github.com/signalsfoundry/drone-dispatch/model"

// TerrainOracle is the external terrain/visibility collaborator. Raster
// loading and the 3-D line-of-sight walk live with the solver's geo stack;
// the rules here only project candidate positions into the oracle's grid and
// ask the yes/no question.
type TerrainOracle interface {
	// Project converts geodetic coordinates to the terrain's local grid.
	// A nil elev asks the oracle to resolve elevation from the raster.
	Project(lon, lat float64, elev *float64) (model.GridPoint, error)
	// LineOfSight reports whether the straight segment between two grid
	// points is unobstructed.
	LineOfSight(a, b model.GridPoint) (bool, error)
}

// ThreatOracle answers whether a position keeps a safe distance from all
// known threats.
type ThreatOracle interface {
	IsSafe(pos model.GeoPoint, threats []model.Threat, bufferM float64) (bool, error)
}

// RadialThreatOracle is the default ThreatOracle: a position is safe when it
// stays outside every threat's radius plus the buffer.
type RadialThreatOracle struct {
	Distance DistanceFunc
}

func (o RadialThreatOracle) IsSafe(pos model.GeoPoint, threats []model.Threat, bufferM float64) (bool, error) {
	dist := o.Distance
	if dist == nil {
		dist = HaversineDistance
	}
	for _, th := range threats {
		if dist(pos, th.Location) < th.RadiusM+bufferM {
			return false, nil
		}
	}
	return true, nil
}
