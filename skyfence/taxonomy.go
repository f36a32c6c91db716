package skyfence

// UnknownZonePriority is the least-authoritative priority rank; any zone
// type missing from the priority table gets it.
const UnknownZonePriority = 99

// ColorSafe is the display color for non-colliding results. Colliding
// results always take their color from the winning zone's type.
const ColorSafe = "#4CAF50"

var zonePriorities = map[ZoneType]int{
	ZoneTypeRedZone:        1,
	ZoneTypeAirport:        2,
	ZoneTypeMilitary:       2,
	ZoneTypeEmergency:      3,
	ZoneTypeDID:            4,
	ZoneTypeYellowZone:     5,
	ZoneTypeRemoteID:       6,
	ZoneTypeMannedAircraft: 7,
}

var zoneSeverities = map[ZoneType]Severity{
	ZoneTypeRedZone:        SeverityDanger,
	ZoneTypeAirport:        SeverityDanger,
	ZoneTypeMilitary:       SeverityDanger,
	ZoneTypeEmergency:      SeverityDanger,
	ZoneTypeDID:            SeverityWarning,
	ZoneTypeYellowZone:     SeverityWarning,
	ZoneTypeRemoteID:       SeverityWarning,
	ZoneTypeMannedAircraft: SeverityWarning,
}

var zoneColors = map[ZoneType]string{
	ZoneTypeRedZone:        "#FF0000",
	ZoneTypeAirport:        "#FF4500",
	ZoneTypeMilitary:       "#B22222",
	ZoneTypeEmergency:      "#FF6B6B",
	ZoneTypeDID:            "#FFA500",
	ZoneTypeYellowZone:     "#FFD700",
	ZoneTypeRemoteID:       "#FFC107",
	ZoneTypeMannedAircraft: "#FF8C00",
}

// Priority returns the tie-break rank of the zone type; lower wins when a
// point lies inside several zones at once.
func (zt ZoneType) Priority() int {
	priority, ok := zonePriorities[zt]
	if !ok {
		return UnknownZonePriority
	}
	return priority
}

// Severity classifies the zone type. Unrecognized types are treated as
// DANGER: a zone whose restriction reason we cannot classify is not one to
// fly in.
func (zt ZoneType) Severity() Severity {
	severity, ok := zoneSeverities[zt]
	if !ok {
		return SeverityDanger
	}
	return severity
}

func (zt ZoneType) Color() string {
	color, ok := zoneColors[zt]
	if !ok {
		return zoneColors[ZoneTypeRedZone]
	}
	return color
}
