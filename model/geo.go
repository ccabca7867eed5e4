package model

// GeoPoint is a geodetic position. Lon/Lat are degrees, Elev is metres
// above the reference surface.
type GeoPoint struct {
	Lon  float64
	Lat  float64
	Elev float64
}

// GridPoint is a position projected into a terrain raster's local grid.
// Elev carries the resolved elevation in metres.
type GridPoint struct {
	Row  int
	Col  int
	Elev float64
}

// TargetKind distinguishes point targets from area targets for position
// scoring.
type TargetKind int

const (
	TargetPoint TargetKind = iota
	TargetArea
)

// Target is a deployment objective a candidate position is scored against.
type Target struct {
	Location GeoPoint
	// HasElevation reports whether Location.Elev is authoritative. When
	// false, the terrain oracle resolves the target's elevation from the
	// raster.
	HasElevation bool

	Kind TargetKind
	// Coverage in [0,1]; only meaningful for area targets.
	Coverage float64
}

// Threat is a known hazard with a lethal radius in metres.
type Threat struct {
	Location GeoPoint
	Kind     string
	RadiusM  float64
}
