package skyfence

import (
	"github.com/paulmach/orb"
)

// ZoneType identifies the reason an area is restricted. The set is closed:
// anything a data source reports outside of it becomes ZoneTypeUnknown at
// ingestion time (see NormalizeFeature).
type ZoneType string

const (
	ZoneTypeRedZone        ZoneType = "RED_ZONE"
	ZoneTypeAirport        ZoneType = "AIRPORT"
	ZoneTypeMilitary       ZoneType = "MILITARY"
	ZoneTypeEmergency      ZoneType = "EMERGENCY"
	ZoneTypeDID            ZoneType = "DID" // Densely Inhabited District
	ZoneTypeYellowZone     ZoneType = "YELLOW_ZONE"
	ZoneTypeRemoteID       ZoneType = "REMOTE_ID"
	ZoneTypeMannedAircraft ZoneType = "MANNED_AIRCRAFT"
	ZoneTypeUnknown        ZoneType = "UNKNOWN"
)

type Severity string

const (
	SeverityDanger  Severity = "DANGER"
	SeverityWarning Severity = "WARNING"
	SeveritySafe    Severity = "SAFE"
)

// ZoneFeature is one restricted area. Geometry is always stored as a
// MultiPolygon (a plain Polygon becomes a single-element MultiPolygon at
// ingestion). Coordinates are WGS84 decimal degrees, [lng, lat] order.
// A ZoneFeature is immutable once it has been handed to an index build.
type ZoneFeature struct {
	Name     string
	Type     ZoneType
	Geometry orb.MultiPolygon
}

func (zf *ZoneFeature) Bound() orb.Bound {
	return zf.Geometry.Bound()
}

// Waypoint is a flight-plan point owned by the caller; the engine only
// reads it.
type Waypoint struct {
	ID  string  `json:"id"`
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// PointCheckResult reports whether a single coordinate lies inside a
// restricted zone. When several zones contain the point, ZoneType/ZoneName
// describe the winning zone (lowest priority number).
type PointCheckResult struct {
	IsColliding bool     `json:"isColliding"`
	ZoneType    ZoneType `json:"zoneType,omitempty"`
	ZoneName    string   `json:"zoneName,omitempty"`
	Severity    Severity `json:"severity"`
	Color       string   `json:"color"`
	Message     string   `json:"message"`
}

// PathCheckResult reports every boundary crossing of a flight path, across
// all zones. Unlike point checks there is no single winning zone: callers
// re-planning a route need every crossing, not the most important one.
type PathCheckResult struct {
	IsColliding        bool        `json:"isColliding"`
	IntersectionPoints []orb.Point `json:"intersectionPoints"`
	Severity           Severity    `json:"severity"`
	Message            string      `json:"message"`
}

// OverlapPrecision tells a caller whether an area result's overlap figure
// was computed exactly or substituted with a conservative estimate after a
// failed intersection-geometry computation.
type OverlapPrecision string

const (
	OverlapExact        OverlapPrecision = "EXACT"
	OverlapApproximated OverlapPrecision = "APPROXIMATED"
)

// AreaCheckResult reports how much of a candidate survey area overlaps
// restricted zones. OverlapAreaSqM is summed across zones and is not
// de-duplicated when zones overlap each other.
type AreaCheckResult struct {
	IsColliding    bool             `json:"isColliding"`
	OverlapAreaSqM float64          `json:"overlapArea"`
	OverlapRatio   float64          `json:"overlapRatio"`
	Severity       Severity         `json:"severity"`
	Precision      OverlapPrecision `json:"precision"`
	Message        string           `json:"message"`
}

// BatchSummary aggregates point check results over a whole flight plan.
type BatchSummary struct {
	Total                int              `json:"total"`
	CollidingCount       int              `json:"collidingCount"`
	DangerCount          int              `json:"dangerCount"`
	WarningCount         int              `json:"warningCount"`
	SafeCount            int              `json:"safeCount"`
	CollisionsByZoneType map[ZoneType]int `json:"collisionsByZoneType"`
}
