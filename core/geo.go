package core

import (
	"math"

	"github.com/signalsfoundry/drone-dispatch/model"
)

// EarthRadiusM is the mean Earth radius used by the default great-circle
// distance, in metres.
const EarthRadiusM = 6371000.0

// DistanceFunc computes the geodesic distance between two points in metres.
// The authoritative primitive is owned by the solver's geo stack; the engine
// only ever calls through this type. HaversineDistance is the in-process
// default.
type DistanceFunc func(a, b model.GeoPoint) float64

// HaversineDistance is a spherical great-circle distance. Elevation is
// ignored; for the distances this engine cares about (tens of kilometres)
// the spherical error is well below the rules' decision thresholds.
func HaversineDistance(a, b model.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	return 2 * EarthRadiusM * math.Asin(math.Min(1, math.Sqrt(h)))
}
