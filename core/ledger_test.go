package core

import (
	"testing"

	"github.com/signalsfoundry/drone-dispatch/model"
)

func TestLedger_AirportStatus(t *testing.T) {
	ledger := NewLedger()

	if _, ok := ledger.AirportStatus(7); ok {
		t.Fatalf("unrecorded airport must report ok=false")
	}
	ledger.SetAirportStatus(7, false)
	if open, ok := ledger.AirportStatus(7); !ok || open {
		t.Errorf("AirportStatus(7) = (%v, %v), want (false, true)", open, ok)
	}
	ledger.SetAirportStatus(7, true)
	if open, ok := ledger.AirportStatus(7); !ok || !open {
		t.Errorf("AirportStatus(7) after reopen = (%v, %v), want (true, true)", open, ok)
	}
}

func TestLedger_OccupancyAppendOnly(t *testing.T) {
	ledger := NewLedger()
	if got := ledger.Occupancy(1); len(got) != 0 {
		t.Fatalf("fresh ledger occupancy = %v, want empty", got)
	}

	ledger.RecordOccupancy(1, 100, 5, 11, EventTakeoff)
	ledger.RecordOccupancy(1, 100, 5, 12, EventLanding)
	ledger.RecordOccupancy(2, 40, 5, 11, EventLanding)

	log := ledger.Occupancy(1)
	if len(log) != 2 {
		t.Fatalf("airport 1 occupancy length = %d, want 2", len(log))
	}
	first := log[0]
	if first.Start != 100 || first.End != 105 || first.DroneID != 11 || first.Event != EventTakeoff {
		t.Errorf("first window = %+v", first)
	}
	if len(ledger.Occupancy(2)) != 1 {
		t.Errorf("airport 2 occupancy must be its own log")
	}
}

func TestLedger_RunwayEventDurations(t *testing.T) {
	ledger := NewLedger()
	if ledger.TakeoffDuration() != DefaultRunwayEventDuration || ledger.LandingDuration() != DefaultRunwayEventDuration {
		t.Fatalf("fresh ledger must carry the default event durations")
	}

	ledger.SetRunwayEventDuration(EventTakeoff, 8)
	ledger.SetRunwayEventDuration(EventLanding, 12)
	if got := ledger.TakeoffDuration(); got != 8 {
		t.Errorf("TakeoffDuration = %v, want 8", got)
	}
	if got := ledger.LandingDuration(); got != 12 {
		t.Errorf("LandingDuration = %v, want 12", got)
	}

	// Non-positive durations fall back to the default.
	ledger.SetRunwayEventDuration(EventTakeoff, -1)
	if got := ledger.TakeoffDuration(); got != DefaultRunwayEventDuration {
		t.Errorf("TakeoffDuration after invalid set = %v, want default", got)
	}
}

func TestLedger_TypeQuota(t *testing.T) {
	ledger := NewLedger()
	if ledger.TypeCount("RECON") != 0 || ledger.TypeLimit("RECON") != 0 {
		t.Fatalf("unknown type must read as zero count and limit")
	}

	ledger.SetTypeQuota("RECON", 2, 5)
	ledger.ConsumeTypeCount("RECON")
	if got := ledger.TypeCount("RECON"); got != 1 {
		t.Errorf("TypeCount after one consume = %d, want 1", got)
	}
	ledger.ConsumeTypeCount("RECON")
	ledger.ConsumeTypeCount("RECON")
	if got := ledger.TypeCount("RECON"); got != 0 {
		t.Errorf("TypeCount must floor at zero, got %d", got)
	}
	if got := ledger.TypeLimit("RECON"); got != 5 {
		t.Errorf("TypeLimit = %d, want 5", got)
	}
}

func TestLedger_WeaponStock(t *testing.T) {
	ledger := NewLedger()
	ledger.SetWeaponStock(model.PayloadStrike, 4)
	ledger.ConsumeWeapons(model.PayloadStrike, 3)
	if got := ledger.WeaponStock(model.PayloadStrike); got != 1 {
		t.Errorf("WeaponStock = %d, want 1", got)
	}
	ledger.ConsumeWeapons(model.PayloadStrike, 10)
	if got := ledger.WeaponStock(model.PayloadStrike); got != 0 {
		t.Errorf("WeaponStock must floor at zero, got %d", got)
	}
}

func TestLedger_MaintenanceRemaining(t *testing.T) {
	ledger := NewLedger()
	if _, ok := ledger.MaintenanceRemaining(3); ok {
		t.Fatalf("unrecorded drone must report ok=false")
	}
	ledger.SetMaintenanceRemaining(3, 1500)
	if r, ok := ledger.MaintenanceRemaining(3); !ok || r != 1500 {
		t.Errorf("MaintenanceRemaining = (%v, %v), want (1500, true)", r, ok)
	}
	ledger.SetMaintenanceRemaining(3, -20)
	if r, _ := ledger.MaintenanceRemaining(3); r != 0 {
		t.Errorf("negative remaining must clamp to zero, got %v", r)
	}
}

func TestLedger_OccupiedPositions(t *testing.T) {
	ledger := NewLedger()
	ledger.AddOccupiedPosition(model.GeoPoint{Lon: 1})
	ledger.AddOccupiedPosition(model.GeoPoint{Lon: 2})
	got := ledger.OccupiedPositions()
	if len(got) != 2 || got[0].Lon != 1 || got[1].Lon != 2 {
		t.Errorf("OccupiedPositions = %v", got)
	}
}
