package collision

import (
	"github.com/jamesrr39/semaphore"
	"github.com/skyfence/skyfence-app/skyfence"
)

// BatchCheckResult is the per-waypoint result map plus the aggregate
// summary over a whole flight plan.
type BatchCheckResult struct {
	Results map[string]skyfence.PointCheckResult `json:"results"`
	Summary skyfence.BatchSummary                `json:"summary"`
}

// CheckPoints runs the point check for every waypoint. Waypoints are
// independent; the summary is accumulated in input order so counts are
// deterministic for tests regardless of how results were produced.
func CheckPoints(idx *ZoneIndex, waypoints []skyfence.Waypoint) BatchCheckResult {
	results := make([]skyfence.PointCheckResult, len(waypoints))
	for i, waypoint := range waypoints {
		results[i] = CheckPoint(idx, waypoint.Lng, waypoint.Lat)
	}
	return summarize(waypoints, results)
}

// CheckPointsParallel is CheckPoints with bounded concurrency. No item's
// resolution touches another's state and the index is read-only, so the
// only synchronization needed is the per-slot result write.
func CheckPointsParallel(idx *ZoneIndex, waypoints []skyfence.Waypoint, maxConcurrent uint) BatchCheckResult {
	results := make([]skyfence.PointCheckResult, len(waypoints))

	sema := semaphore.NewSemaphore(maxConcurrent)
	for i, waypoint := range waypoints {
		sema.Add()
		go func(i int, waypoint skyfence.Waypoint) {
			defer sema.Done()
			results[i] = CheckPoint(idx, waypoint.Lng, waypoint.Lat)
		}(i, waypoint)
	}
	sema.Wait()

	return summarize(waypoints, results)
}

func summarize(waypoints []skyfence.Waypoint, results []skyfence.PointCheckResult) BatchCheckResult {
	batch := BatchCheckResult{
		Results: make(map[string]skyfence.PointCheckResult, len(waypoints)),
		Summary: skyfence.BatchSummary{
			Total:                len(waypoints),
			CollisionsByZoneType: map[skyfence.ZoneType]int{},
		},
	}

	for i, waypoint := range waypoints {
		result := results[i]
		batch.Results[waypoint.ID] = result

		switch result.Severity {
		case skyfence.SeverityDanger:
			batch.Summary.DangerCount++
		case skyfence.SeverityWarning:
			batch.Summary.WarningCount++
		case skyfence.SeveritySafe:
			batch.Summary.SafeCount++
		}

		if result.IsColliding {
			batch.Summary.CollidingCount++
			batch.Summary.CollisionsByZoneType[result.ZoneType]++
		}
	}

	return batch
}
