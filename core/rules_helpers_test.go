package core

import (
	"math"

	"github.com/signalsfoundry/drone-dispatch/model"
)

// planarDistance treats Lon/Lat as planar metres so tests can set exact
// distances without inverting the haversine.
func planarDistance(a, b model.GeoPoint) float64 {
	return math.Hypot(a.Lon-b.Lon, a.Lat-b.Lat)
}

func testAirport(id int64, lonM float64) *model.Airport {
	return &model.Airport{
		ID:       id,
		Name:     "",
		Location: model.GeoPoint{Lon: lonM},
	}
}

func testDrone(id int64, home *model.Airport, speed, maxRange float64) *model.Drone {
	return &model.Drone{
		ID:          id,
		Type:        "RECON",
		Airport:     home,
		CruiseSpeed: speed,
		MaxRange:    maxRange,
		Payload: map[model.PayloadKind]model.PayloadSpec{
			model.PayloadSensor: {Range: 50000, Level: 3},
		},
	}
}

func testTask(id int64, lonM, start, end, duration float64) *model.Task {
	return &model.Task{
		ID:            id,
		Start:         start,
		End:           end,
		Duration:      duration,
		Location:      model.GeoPoint{Lon: lonM},
		RequiredTypes: []model.DroneType{"RECON"},
	}
}

func taskSet(tasks ...*model.Task) map[int64]*model.Task {
	out := make(map[int64]*model.Task, len(tasks))
	for _, t := range tasks {
		out[t.ID] = t
	}
	return out
}
