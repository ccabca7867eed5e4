package core

import (
	"math"

	"github.com/signalsfoundry/drone-dispatch/model"
)

// OccupancyEvent names what a runway reservation is for.
type OccupancyEvent string

const (
	EventTakeoff OccupancyEvent = "takeoff"
	EventLanding OccupancyEvent = "landing"
)

// DefaultRunwayEventDuration is how long a takeoff or landing holds a runway
// when the ledger is not configured otherwise, in time-units.
const DefaultRunwayEventDuration = 5.0

// OccupancyWindow is a half-open interval [Start, End) during which one
// runway at an airport is reserved.
type OccupancyWindow struct {
	Start   float64
	End     float64
	DroneID int64
	Event   OccupancyEvent
}

// LedgerReader is the query side of the resource ledger. Every rule that
// only needs to look at shared state takes this, so signatures show which
// side of the serialization contract they need: readers may run concurrently
// as long as no writer is in flight.
type LedgerReader interface {
	// AirportStatus returns the recorded open flag for an airport id; ok is
	// false when no status has been recorded.
	AirportStatus(airportID int64) (open, ok bool)
	// Occupancy returns the runway occupancy log for an airport. Callers
	// must not mutate the returned slice.
	Occupancy(airportID int64) []OccupancyWindow
	// TakeoffDuration and LandingDuration are the runway hold times for the
	// two event kinds.
	TakeoffDuration() float64
	LandingDuration() float64
	// TypeCount is the remaining fleet counter for a drone type; TypeLimit
	// is its configured cap. Both default to zero for unknown types.
	TypeCount(t model.DroneType) int
	TypeLimit(t model.DroneType) int
	// WeaponStock is the shared inventory count for a consumable payload
	// kind, zero when unknown.
	WeaponStock(kind model.PayloadKind) int
	// MaintenanceRemaining is the mileage a drone may still fly before
	// mandatory maintenance; ok is false when unrecorded (treated as
	// unlimited by EffectiveRange).
	MaintenanceRemaining(droneID int64) (remaining float64, ok bool)
	// OccupiedPositions lists deployment positions already claimed this run.
	OccupiedPositions() []model.GeoPoint
}

// LedgerWriter is the mutation side. Mutations are not internally
// synchronized; the caller serializes them per affected key.
type LedgerWriter interface {
	SetAirportStatus(airportID int64, open bool)
	RecordOccupancy(airportID int64, eventTime, eventDuration float64, droneID int64, event OccupancyEvent)
	SetRunwayEventDuration(event OccupancyEvent, duration float64)
	SetTypeQuota(t model.DroneType, count, limit int)
	ConsumeTypeCount(t model.DroneType)
	SetWeaponStock(kind model.PayloadKind, count int)
	ConsumeWeapons(kind model.PayloadKind, count int)
	SetMaintenanceRemaining(droneID int64, remaining float64)
	AddOccupiedPosition(p model.GeoPoint)
}

// Ledger is the process-lifetime shared resource state: created once per
// solver run, read and mutated throughout the search, never reset mid-run
// except through explicit calls. It satisfies both LedgerReader and
// LedgerWriter.
type Ledger struct {
	airportStatus        map[int64]bool
	occupancy            map[int64][]OccupancyWindow
	takeoffDuration      float64
	landingDuration      float64
	typeCounts           map[model.DroneType]int
	typeLimits           map[model.DroneType]int
	weaponStock          map[model.PayloadKind]int
	maintenanceRemaining map[int64]float64
	occupiedPositions    []model.GeoPoint
}

var (
	_ LedgerReader = (*Ledger)(nil)
	_ LedgerWriter = (*Ledger)(nil)
)

// NewLedger returns an empty ledger with default runway event durations.
func NewLedger() *Ledger {
	return &Ledger{
		airportStatus:        make(map[int64]bool),
		occupancy:            make(map[int64][]OccupancyWindow),
		takeoffDuration:      DefaultRunwayEventDuration,
		landingDuration:      DefaultRunwayEventDuration,
		typeCounts:           make(map[model.DroneType]int),
		typeLimits:           make(map[model.DroneType]int),
		weaponStock:          make(map[model.PayloadKind]int),
		maintenanceRemaining: make(map[int64]float64),
	}
}

func (l *Ledger) AirportStatus(airportID int64) (bool, bool) {
	open, ok := l.airportStatus[airportID]
	return open, ok
}

func (l *Ledger) SetAirportStatus(airportID int64, open bool) {
	l.airportStatus[airportID] = open
}

func (l *Ledger) Occupancy(airportID int64) []OccupancyWindow {
	return l.occupancy[airportID]
}

// RecordOccupancy appends to the airport's occupancy log. The log is
// append-only for the run: no dedup, no compaction.
func (l *Ledger) RecordOccupancy(airportID int64, eventTime, eventDuration float64, droneID int64, event OccupancyEvent) {
	l.occupancy[airportID] = append(l.occupancy[airportID], OccupancyWindow{
		Start:   eventTime,
		End:     eventTime + eventDuration,
		DroneID: droneID,
		Event:   event,
	})
}

func (l *Ledger) TakeoffDuration() float64 { return l.takeoffDuration }
func (l *Ledger) LandingDuration() float64 { return l.landingDuration }

func (l *Ledger) SetRunwayEventDuration(event OccupancyEvent, duration float64) {
	if duration <= 0 {
		duration = DefaultRunwayEventDuration
	}
	switch event {
	case EventTakeoff:
		l.takeoffDuration = duration
	case EventLanding:
		l.landingDuration = duration
	}
}

func (l *Ledger) TypeCount(t model.DroneType) int { return l.typeCounts[t] }
func (l *Ledger) TypeLimit(t model.DroneType) int { return l.typeLimits[t] }

func (l *Ledger) SetTypeQuota(t model.DroneType, count, limit int) {
	l.typeCounts[t] = count
	l.typeLimits[t] = limit
}

// ConsumeTypeCount decrements the remaining fleet counter for a type. The
// solver calls this on commit; the quota rule only reads.
func (l *Ledger) ConsumeTypeCount(t model.DroneType) {
	if l.typeCounts[t] > 0 {
		l.typeCounts[t]--
	}
}

func (l *Ledger) WeaponStock(kind model.PayloadKind) int { return l.weaponStock[kind] }

func (l *Ledger) SetWeaponStock(kind model.PayloadKind, count int) {
	l.weaponStock[kind] = count
}

// ConsumeWeapons removes committed expenditure from the shared inventory,
// flooring at zero.
func (l *Ledger) ConsumeWeapons(kind model.PayloadKind, count int) {
	remaining := l.weaponStock[kind] - count
	if remaining < 0 {
		remaining = 0
	}
	l.weaponStock[kind] = remaining
}

func (l *Ledger) MaintenanceRemaining(droneID int64) (float64, bool) {
	r, ok := l.maintenanceRemaining[droneID]
	return r, ok
}

func (l *Ledger) SetMaintenanceRemaining(droneID int64, remaining float64) {
	if remaining < 0 || math.IsNaN(remaining) {
		remaining = 0
	}
	l.maintenanceRemaining[droneID] = remaining
}

func (l *Ledger) OccupiedPositions() []model.GeoPoint { return l.occupiedPositions }

func (l *Ledger) AddOccupiedPosition(p model.GeoPoint) {
	l.occupiedPositions = append(l.occupiedPositions, p)
}
