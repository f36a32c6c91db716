package collision

import (
	"encoding/json"
	"testing"

	snapshot "github.com/jamesrr39/go-snapshot-testing"
	"github.com/skyfence/skyfence-app/skyfence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func batchTestIndex() *ZoneIndex {
	return BuildIndex([]*skyfence.ZoneFeature{
		squareZone("airfield", skyfence.ZoneTypeAirport, 0, 0, 1, 1),
		squareZone("district", skyfence.ZoneTypeDID, 2, 2, 3, 3),
	})
}

func batchTestWaypoints() []skyfence.Waypoint {
	return []skyfence.Waypoint{
		{ID: "wp-1", Lng: 0.5, Lat: 0.5},
		{ID: "wp-2", Lng: 5, Lat: 5},
		{ID: "wp-3", Lng: 2.5, Lat: 2.5},
	}
}

func Test_CheckPoints_summary(t *testing.T) {
	batch := CheckPoints(batchTestIndex(), batchTestWaypoints())

	require.Len(t, batch.Results, 3)
	assert.True(t, batch.Results["wp-1"].IsColliding)
	assert.Equal(t, skyfence.ZoneTypeAirport, batch.Results["wp-1"].ZoneType)
	assert.False(t, batch.Results["wp-2"].IsColliding)
	assert.Equal(t, skyfence.ZoneTypeDID, batch.Results["wp-3"].ZoneType)

	assert.Equal(t, skyfence.BatchSummary{
		Total:          3,
		CollidingCount: 2,
		DangerCount:    1,
		WarningCount:   1,
		SafeCount:      1,
		CollisionsByZoneType: map[skyfence.ZoneType]int{
			skyfence.ZoneTypeAirport: 1,
			skyfence.ZoneTypeDID:     1,
		},
	}, batch.Summary)
}

func Test_CheckPoints_emptyInput(t *testing.T) {
	batch := CheckPoints(batchTestIndex(), nil)
	assert.Empty(t, batch.Results)
	assert.Equal(t, 0, batch.Summary.Total)
	assert.Equal(t, 0, batch.Summary.CollidingCount)
}

func Test_CheckPointsParallel_matchesSerial(t *testing.T) {
	idx := batchTestIndex()
	waypoints := batchTestWaypoints()

	serial := CheckPoints(idx, waypoints)
	parallel := CheckPointsParallel(idx, waypoints, 2)

	assert.Equal(t, serial, parallel)
}

func Test_CheckPoints_summarySnapshot(t *testing.T) {
	batch := CheckPoints(batchTestIndex(), batchTestWaypoints())

	encoded, err := json.MarshalIndent(batch.Summary, "", "  ")
	require.Nil(t, err)

	snapshot.AssertMatchesSnapshot(t, "CheckPoints_summary", snapshot.NewTextSnapshot(string(encoded)))
}
