package core

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/signalsfoundry/drone-dispatch/model"
)

// DispatchScenario is the loaded world state an evaluation run starts from.
type DispatchScenario struct {
	Airports map[int64]*model.Airport
	Drones   map[int64]*model.Drone
	Tasks    map[int64]*model.Task
}

// internal JSON shapes - kept unexported so the wire format can evolve
// without leaking into the API.
type scenarioJSON struct {
	Airports []airportJSON `json:"airports"`
	Drones   []droneJSON   `json:"drones"`
	Tasks    []taskJSON    `json:"tasks"`
	Ledger   *ledgerJSON   `json:"ledger"`
}

type geoPointJSON struct {
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
	Elev float64 `json:"elev"`
}

type airportJSON struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Open        *bool          `json:"open"`        // optional; nil defers to ledger, then open
	TotalLimit  *int           `json:"total_limit"` // optional; nil means unlimited
	TypeLimits  map[string]int `json:"type_limits"`
	RunwayCount int            `json:"runway_count"` // 0 means the default of 1
	Location    geoPointJSON   `json:"location"`
}

type payloadSpecJSON struct {
	Range float64 `json:"range"`
	Level float64 `json:"level"`
}

type droneJSON struct {
	ID          int64                      `json:"id"`
	Type        string                     `json:"type"`
	AirportID   int64                      `json:"airport_id"`
	CruiseSpeed float64                    `json:"cruise_speed"`
	MaxRange    float64                    `json:"max_range"`
	Payload     map[string]payloadSpecJSON `json:"payload"` // keyed by numeric payload kind
}

type taskJSON struct {
	ID               int64                      `json:"id"`
	Name             string                     `json:"name"`
	Priority         int                        `json:"priority"` // 0 means unset (default 5)
	Start            float64                    `json:"start"`
	End              float64                    `json:"end"` // 0 means the window never closes
	Duration         float64                    `json:"duration"`
	MaxDuration      float64                    `json:"max_duration"`
	Distance         float64                    `json:"distance"`
	Location         geoPointJSON               `json:"location"`
	RequiredTypes    []string                   `json:"required_types"`
	RequiredPayloads map[string]payloadSpecJSON `json:"required_payloads"`
	Bandwidth        float64                    `json:"bandwidth"`
}

type ledgerJSON struct {
	AirportStatus        map[string]bool    `json:"airport_status"`
	TypeCounts           map[string]int     `json:"type_counts"`
	TypeLimits           map[string]int     `json:"type_limits"`
	WeaponInventory      map[string]int     `json:"weapon_inventory"`
	MaintenanceRemaining map[string]float64 `json:"maintenance_remaining"`
	TakeoffDuration      float64            `json:"takeoff_duration"`
	LandingDuration      float64            `json:"landing_duration"`
}

// LoadScenario reads a JSON scenario from r, seeds the ledger, and returns
// the resolved domain objects. It fails only on JSON/structural errors and
// dangling references; value-level defaults (open airports, runway counts,
// priorities) are applied by the rules at evaluation time, not here.
func LoadScenario(ledger LedgerWriter, r io.Reader) (*DispatchScenario, error) {
	var payload scenarioJSON
	dec := json.NewDecoder(r)
	if err := dec.Decode(&payload); err != nil {
		return nil, fmt.Errorf("LoadScenario: decode failed: %w", err)
	}

	scenario := &DispatchScenario{
		Airports: make(map[int64]*model.Airport, len(payload.Airports)),
		Drones:   make(map[int64]*model.Drone, len(payload.Drones)),
		Tasks:    make(map[int64]*model.Task, len(payload.Tasks)),
	}

	for _, ja := range payload.Airports {
		if ja.ID == 0 {
			return nil, fmt.Errorf("LoadScenario: airport with missing id")
		}
		a := &model.Airport{
			ID:          ja.ID,
			Name:        ja.Name,
			Open:        ja.Open,
			TotalLimit:  ja.TotalLimit,
			RunwayCount: ja.RunwayCount,
			Location:    geoPoint(ja.Location),
		}
		if len(ja.TypeLimits) > 0 {
			a.TypeLimits = make(map[model.DroneType]int, len(ja.TypeLimits))
			for t, n := range ja.TypeLimits {
				a.TypeLimits[model.DroneType(t)] = n
			}
		}
		scenario.Airports[a.ID] = a
	}

	for _, jd := range payload.Drones {
		if jd.ID == 0 {
			return nil, fmt.Errorf("LoadScenario: drone with missing id")
		}
		home, ok := scenario.Airports[jd.AirportID]
		if !ok {
			return nil, fmt.Errorf("LoadScenario: drone %d references unknown airport %d", jd.ID, jd.AirportID)
		}
		d := &model.Drone{
			ID:          jd.ID,
			Type:        model.DroneType(jd.Type),
			Airport:     home,
			CruiseSpeed: jd.CruiseSpeed,
			MaxRange:    jd.MaxRange,
		}
		payloadMap, err := payloadKinds(jd.Payload)
		if err != nil {
			return nil, fmt.Errorf("LoadScenario: drone %d: %w", jd.ID, err)
		}
		d.Payload = payloadMap
		scenario.Drones[d.ID] = d
	}

	for _, jt := range payload.Tasks {
		if jt.ID == 0 {
			return nil, fmt.Errorf("LoadScenario: task with missing id")
		}
		t := &model.Task{
			ID:          jt.ID,
			Name:        jt.Name,
			Priority:    jt.Priority,
			Start:       jt.Start,
			End:         jt.End,
			Duration:    jt.Duration,
			MaxDuration: jt.MaxDuration,
			Distance:    jt.Distance,
			Location:    geoPoint(jt.Location),
			Bandwidth:   jt.Bandwidth,
		}
		for _, rt := range jt.RequiredTypes {
			t.RequiredTypes = append(t.RequiredTypes, model.DroneType(rt))
		}
		if len(jt.RequiredPayloads) > 0 {
			t.RequiredPayloads = make(map[model.PayloadKind]model.PayloadRequirement, len(jt.RequiredPayloads))
			for raw, spec := range jt.RequiredPayloads {
				kind, err := parsePayloadKind(raw)
				if err != nil {
					return nil, fmt.Errorf("LoadScenario: task %d: %w", jt.ID, err)
				}
				t.RequiredPayloads[kind] = model.PayloadRequirement{Range: spec.Range, Level: spec.Level}
			}
		}
		scenario.Tasks[t.ID] = t
	}

	if ledger != nil && payload.Ledger != nil {
		if err := seedLedger(ledger, payload.Ledger); err != nil {
			return nil, err
		}
	}

	return scenario, nil
}

func seedLedger(ledger LedgerWriter, js *ledgerJSON) error {
	for raw, open := range js.AirportStatus {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("LoadScenario: bad airport id %q in ledger: %w", raw, err)
		}
		ledger.SetAirportStatus(id, open)
	}
	for raw, count := range js.TypeCounts {
		ledger.SetTypeQuota(model.DroneType(raw), count, js.TypeLimits[raw])
	}
	// Limits without a matching count still need recording.
	for raw, limit := range js.TypeLimits {
		if _, ok := js.TypeCounts[raw]; !ok {
			ledger.SetTypeQuota(model.DroneType(raw), 0, limit)
		}
	}
	for raw, count := range js.WeaponInventory {
		kind, err := parsePayloadKind(raw)
		if err != nil {
			return fmt.Errorf("LoadScenario: ledger: %w", err)
		}
		ledger.SetWeaponStock(kind, count)
	}
	for raw, remaining := range js.MaintenanceRemaining {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fmt.Errorf("LoadScenario: bad drone id %q in ledger: %w", raw, err)
		}
		ledger.SetMaintenanceRemaining(id, remaining)
	}
	if js.TakeoffDuration > 0 {
		ledger.SetRunwayEventDuration(EventTakeoff, js.TakeoffDuration)
	}
	if js.LandingDuration > 0 {
		ledger.SetRunwayEventDuration(EventLanding, js.LandingDuration)
	}
	return nil
}

func payloadKinds(in map[string]payloadSpecJSON) (map[model.PayloadKind]model.PayloadSpec, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[model.PayloadKind]model.PayloadSpec, len(in))
	for raw, spec := range in {
		kind, err := parsePayloadKind(raw)
		if err != nil {
			return nil, err
		}
		out[kind] = model.PayloadSpec{Range: spec.Range, Level: spec.Level}
	}
	return out, nil
}

func parsePayloadKind(raw string) (model.PayloadKind, error) {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return model.PayloadUnknown, fmt.Errorf("bad payload kind %q", raw)
	}
	return model.PayloadKind(n), nil
}

func geoPoint(p geoPointJSON) model.GeoPoint {
	return model.GeoPoint{Lon: p.Lon, Lat: p.Lat, Elev: p.Elev}
}
