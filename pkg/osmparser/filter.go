package osmparser

import (
	"context"
)

const filterBatchSize = 10000

// IsHighway reports whether the way's highway tag is an allowed road class.
func IsHighway(way WayRecord) bool {
	class, ok := way.Tags[TagHighway]
	if !ok {
		return false
	}
	return AllowedRoadType[class]
}

// FilterHighways keeps the ways usable as roads, preserving input order.
func FilterHighways(ways []WayRecord) []WayRecord {
	filtered := make([]WayRecord, 0, len(ways))
	for _, way := range ways {
		if IsHighway(way) {
			filtered = append(filtered, way)
		}
	}
	return filtered
}

// ReadHighways streams every way of ws and returns the accepted ones in input order.
// Ways are filtered in batches so the raw corpus is never held in memory at once.
func ReadHighways(ctx context.Context, ws WaySource) ([]WayRecord, error) {
	accepted := make([]WayRecord, 0)
	batch := make([]WayRecord, 0, filterBatchSize)
	err := ws.ScanWays(ctx, func(way WayRecord) error {
		batch = append(batch, way)
		if len(batch) == filterBatchSize {
			accepted = append(accepted, FilterHighways(batch)...)
			batch = batch[:0]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	accepted = append(accepted, FilterHighways(batch)...)
	return accepted, nil
}
