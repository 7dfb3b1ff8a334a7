package entities

import "time"

// AlternativeLocation is one ranked substitute for an overcrowded location.
type AlternativeLocation struct {
	LocationID                 string      `json:"location_id"`
	LocationName               string      `json:"location_name"`
	Coordinates                Coordinates `json:"coordinates"`
	DistanceMeters             float64     `json:"distance_meters"`
	CrowdLevel                 CrowdLevel  `json:"crowd_level"`
	Similarity                 float64     `json:"similarity"`
	Category                   string      `json:"category"`
	EstimatedTravelTimeMinutes int         `json:"estimated_travel_time_minutes"`
}

// AlternativeRecommendation is the result of an alternative search: up to
// five substitutes in rank order plus a human-readable reason.
type AlternativeRecommendation struct {
	OriginalLocationID string                `json:"original_location_id"`
	Alternatives       []AlternativeLocation `json:"alternatives"`
	Reason             string                `json:"reason"`
	GeneratedAt        time.Time             `json:"generated_at"`
}
