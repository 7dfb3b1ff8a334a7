package entities

import "time"

// RoutePoint is one stop in a planned itinerary. Order within the route slice
// is the visit order.
type RoutePoint struct {
	LocationID               string      `json:"location_id"`
	Coordinates              Coordinates `json:"coordinates"`
	EstimatedArrivalTime     time.Time   `json:"estimated_arrival_time"`
	EstimatedDurationMinutes int         `json:"estimated_duration_minutes"`
	CrowdLevel               CrowdLevel  `json:"crowd_level,omitempty"`
}

// RouteOptimization is the outcome of rewriting a route around crowding.
// It is returned to the caller and never persisted.
type RouteOptimization struct {
	UserID                      string       `json:"user_id"`
	OriginalRoute               []RoutePoint `json:"original_route"`
	OptimizedRoute              []RoutePoint `json:"optimized_route"`
	CrowdAvoidanceScore         float64      `json:"crowd_avoidance_score"`
	EstimatedTimeSavedMinutes   int          `json:"estimated_time_saved_minutes"`
	AlternativesConsideredCount int          `json:"alternatives_considered_count"`
}

// CloneRoute returns a deep copy of a route so callers can mutate one copy
// without touching the other.
func CloneRoute(route []RoutePoint) []RoutePoint {
	cloned := make([]RoutePoint, len(route))
	copy(cloned, route)
	return cloned
}
