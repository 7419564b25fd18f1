package cache

import "fmt"

// ScenarioKey is the cache key of a building's scenario grid.
func ScenarioKey(buildingID int64) string {
	return fmt.Sprintf("scenarios:%d", buildingID)
}
