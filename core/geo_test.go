package core

import (
	"math"
	"testing"

	"github.com/signalsfoundry/drone-dispatch/model"
)

func TestHaversineDistance_EquatorDegree(t *testing.T) {
	a := model.GeoPoint{Lon: 0, Lat: 0}
	b := model.GeoPoint{Lon: 1, Lat: 0}
	got := HaversineDistance(a, b)
	// One degree of arc on the 6371 km sphere.
	want := EarthRadiusM * math.Pi / 180
	if math.Abs(got-want) > 1 {
		t.Errorf("HaversineDistance = %v, want %v", got, want)
	}
}

func TestHaversineDistance_Symmetric(t *testing.T) {
	a := model.GeoPoint{Lon: 34.78, Lat: 32.08}
	b := model.GeoPoint{Lon: 35.21, Lat: 31.77}
	if d1, d2 := HaversineDistance(a, b), HaversineDistance(b, a); math.Abs(d1-d2) > 1e-6 {
		t.Errorf("distance not symmetric: %v vs %v", d1, d2)
	}
}

func TestHaversineDistance_ZeroForSamePoint(t *testing.T) {
	p := model.GeoPoint{Lon: -73.97, Lat: 40.78, Elev: 300}
	if d := HaversineDistance(p, p); d != 0 {
		t.Errorf("distance to self = %v, want 0", d)
	}
}

func TestHaversineDistance_Quadrant(t *testing.T) {
	a := model.GeoPoint{Lon: 0, Lat: 0}
	b := model.GeoPoint{Lon: 0, Lat: 90}
	got := HaversineDistance(a, b)
	want := EarthRadiusM * math.Pi / 2
	if math.Abs(got-want) > 1 {
		t.Errorf("pole distance = %v, want %v", got, want)
	}
}
