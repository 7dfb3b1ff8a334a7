package entities

import (
	"time"
)

// CrowdLevel represents the occupancy classification of a location.
// Levels are strictly ordered: LOW < MODERATE < HIGH < VERY_HIGH.
type CrowdLevel string

const (
	CrowdLevelLow      CrowdLevel = "LOW"
	CrowdLevelModerate CrowdLevel = "MODERATE"
	CrowdLevelHigh     CrowdLevel = "HIGH"
	CrowdLevelVeryHigh CrowdLevel = "VERY_HIGH"
)

// crowdOrdinals maps each level to its position in the ordering. The ordinal
// is what comparisons and scoring formulas operate on, never the string.
var crowdOrdinals = map[CrowdLevel]int{
	CrowdLevelLow:      1,
	CrowdLevelModerate: 2,
	CrowdLevelHigh:     3,
	CrowdLevelVeryHigh: 4,
}

// Ordinal returns the level's position (1-4). Unknown levels return 0 so they
// always compare below LOW.
func (l CrowdLevel) Ordinal() int {
	return crowdOrdinals[l]
}

// LessThan reports whether l is strictly less crowded than other.
func (l CrowdLevel) LessThan(other CrowdLevel) bool {
	return l.Ordinal() < other.Ordinal()
}

// DataSource indicates where a snapshot's values came from. Synthesized
// values must be distinguishable from genuine measurements.
type DataSource string

const (
	DataSourceLive      DataSource = "LIVE"
	DataSourceSimulated DataSource = "SIMULATED"
)

// LongWaitThresholdMinutes is the wait time above which a location counts as
// having a long wait.
const LongWaitThresholdMinutes = 30

// Coordinates is a WGS84 lat/lng pair.
type Coordinates struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// CrowdSnapshot is the cached occupancy estimate for one location. There is
// at most one snapshot per location; updates overwrite in place. A snapshot
// is never deleted, it just goes stale once older than the freshness window.
type CrowdSnapshot struct {
	LocationID        string      `json:"location_id"`
	LocationName      string      `json:"location_name"`
	Coordinates       Coordinates `json:"coordinates"`
	CrowdLevel        CrowdLevel  `json:"crowd_level"`
	EstimatedWaitTime int         `json:"estimated_wait_time"`
	Capacity          int         `json:"capacity"`
	CurrentOccupancy  int         `json:"current_occupancy"`
	Timestamp         time.Time   `json:"timestamp"`
	DataSource        DataSource  `json:"data_source"`
	Confidence        float64     `json:"confidence"`
}

// ClassifyOccupancy derives the crowd level from an occupancy/capacity pair.
// Tier lower bounds are inclusive: >=90% VERY_HIGH, >=70% HIGH, >=40% MODERATE.
func ClassifyOccupancy(occupancy, capacity int) CrowdLevel {
	if capacity <= 0 {
		return CrowdLevelLow
	}
	percentage := float64(occupancy) / float64(capacity) * 100

	switch {
	case percentage >= 90:
		return CrowdLevelVeryHigh
	case percentage >= 70:
		return CrowdLevelHigh
	case percentage >= 40:
		return CrowdLevelModerate
	default:
		return CrowdLevelLow
	}
}

// OccupancyPercentage returns occupancy as a percentage of capacity.
func (s *CrowdSnapshot) OccupancyPercentage() float64 {
	if s.Capacity <= 0 {
		return 0
	}
	return float64(s.CurrentOccupancy) / float64(s.Capacity) * 100
}

// IsOvercrowded reports whether the location is HIGH or VERY_HIGH.
func (s *CrowdSnapshot) IsOvercrowded() bool {
	return s.CrowdLevel == CrowdLevelHigh || s.CrowdLevel == CrowdLevelVeryHigh
}

// HasLongWait reports whether the estimated wait exceeds the long-wait threshold.
func (s *CrowdSnapshot) HasLongWait() bool {
	return s.EstimatedWaitTime > LongWaitThresholdMinutes
}

// IsFresh reports whether the snapshot is still usable as of the given time.
func (s *CrowdSnapshot) IsFresh(asOf time.Time, ttl time.Duration) bool {
	return asOf.Sub(s.Timestamp) < ttl
}

// CrowdPrediction is a forward-looking estimate for a single hourly slot.
// Predictions are derived from the synthesis heuristic, not from the cached
// snapshot, and carry no random jitter.
type CrowdPrediction struct {
	LocationID          string     `json:"location_id"`
	PredictedCrowdLevel CrowdLevel `json:"predicted_crowd_level"`
	PredictedWaitTime   int        `json:"predicted_wait_time"`
	TimeSlot            time.Time  `json:"time_slot"`
	Confidence          float64    `json:"confidence"`
}
