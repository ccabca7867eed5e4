package model

import "strconv"

// DroneType tags an airframe class, e.g. "RECON" or "STRIKE". Tasks restrict
// which types may serve them and airports limit how many of each type they
// can control.
type DroneType string

// Airport is a base a drone operates from.
type Airport struct {
	ID   int64
	Name string

	// Open, when set, overrides any ledger-recorded status. When nil the
	// ledger is consulted and the airport defaults to open.
	Open *bool

	// TotalLimit caps how many drones the airport's controllers can manage
	// at once. nil means unlimited.
	TotalLimit *int

	// TypeLimits caps controlled drones per type. A type absent from the map
	// has a limit of zero.
	TypeLimits map[DroneType]int

	// RunwayCount is the number of runways; zero means the default of one.
	RunwayCount int

	Location GeoPoint
}

// Runways returns the configured runway count, defaulting to one.
func (a *Airport) Runways() int {
	if a == nil || a.RunwayCount <= 0 {
		return 1
	}
	return a.RunwayCount
}

// DisplayName returns the airport's name, or a synthetic label when unnamed.
func (a *Airport) DisplayName() string {
	if a == nil {
		return "airport ?"
	}
	if a.Name != "" {
		return a.Name
	}
	return "airport " + strconv.FormatInt(a.ID, 10)
}
