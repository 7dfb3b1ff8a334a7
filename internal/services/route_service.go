package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"crowdwatch/internal/domain/entities"
)

// predictionHorizonHours is how far ahead departure and retiming suggestions
// look.
const predictionHorizonHours = 24

// retimeWindow is how far an overcrowded stop may be shifted from its planned
// arrival when no replacement location works out.
const retimeWindow = 2 * time.Hour

// maxDepartureSuggestions caps per-location departure time suggestions.
const maxDepartureSuggestions = 5

// RouteService rewrites planned itineraries around crowding and answers
// timing questions (optimal visit time, departure suggestions, efficiency).
type RouteService struct {
	crowd        *CrowdService
	alternatives *AlternativeService
	searchRadius float64
}

func NewRouteService(crowd *CrowdService, alternatives *AlternativeService, searchRadiusMeters float64) *RouteService {
	return &RouteService{
		crowd:        crowd,
		alternatives: alternatives,
		searchRadius: searchRadiusMeters,
	}
}

// Optimize walks the route left to right. Overcrowded stops are replaced by
// their best alternative when that nets a positive time saving (shifting every
// later stop by the added travel time), otherwise retimed to a clearly better
// predicted slot within ±2h. Stops that are fine keep only a refreshed crowd
// level.
func (s *RouteService) Optimize(ctx context.Context, userID string, route []entities.RoutePoint) (*entities.RouteOptimization, error) {
	if len(route) == 0 {
		return nil, fmt.Errorf("route must contain at least one point")
	}

	original := entities.CloneRoute(route)
	optimized := entities.CloneRoute(route)

	var avoidance float64
	considered := 0
	totalSavedMinutes := 0

	for i := range optimized {
		point := &optimized[i]

		snapshot, err := s.crowd.Get(ctx, point.LocationID)
		if err != nil {
			// A failed lookup leaves the stop as planned.
			continue
		}
		point.CrowdLevel = snapshot.CrowdLevel

		if !snapshot.IsOvercrowded() {
			continue
		}
		considered++

		if saved, credit, shifted := s.replaceWithAlternative(ctx, optimized, i, snapshot); shifted {
			totalSavedMinutes += saved
			avoidance += credit
			continue
		}

		if s.retimeToBetterSlot(ctx, point) {
			avoidance += 0.3
		}
	}

	score := avoidance / math.Max(1, float64(considered))

	return &entities.RouteOptimization{
		UserID:                      userID,
		OriginalRoute:               original,
		OptimizedRoute:              optimized,
		CrowdAvoidanceScore:         score,
		EstimatedTimeSavedMinutes:   totalSavedMinutes,
		AlternativesConsideredCount: considered,
	}, nil
}

// replaceWithAlternative swaps the stop at index i for its top-ranked
// alternative when the wait saved outweighs the extra travel. On success,
// every later stop's arrival shifts forward by the travel time so the rest of
// the day stays consistent.
func (s *RouteService) replaceWithAlternative(ctx context.Context, route []entities.RoutePoint, i int, source *entities.CrowdSnapshot) (savedMinutes int, avoidanceCredit float64, ok bool) {
	recommendation, err := s.alternatives.FindAlternatives(ctx, route[i].LocationID, s.searchRadius)
	if err != nil || recommendation == nil || len(recommendation.Alternatives) == 0 {
		return 0, 0, false
	}
	best := recommendation.Alternatives[0]

	alternativeSnapshot, err := s.crowd.Get(ctx, best.LocationID)
	if err != nil {
		return 0, 0, false
	}

	timeSaved := source.EstimatedWaitTime - alternativeSnapshot.EstimatedWaitTime - best.EstimatedTravelTimeMinutes
	if timeSaved <= 0 {
		return 0, 0, false
	}

	travel := time.Duration(best.EstimatedTravelTimeMinutes) * time.Minute
	originalOrdinal := source.CrowdLevel.Ordinal()
	newOrdinal := best.CrowdLevel.Ordinal()

	point := &route[i]
	point.LocationID = best.LocationID
	point.Coordinates = best.Coordinates
	point.CrowdLevel = best.CrowdLevel
	point.EstimatedArrivalTime = point.EstimatedArrivalTime.Add(travel)

	// Cascade: the detour pushes everything after this stop forward too.
	for j := i + 1; j < len(route); j++ {
		route[j].EstimatedArrivalTime = route[j].EstimatedArrivalTime.Add(travel)
	}

	return timeSaved, math.Max(0, float64(originalOrdinal-newOrdinal)/3), true
}

// retimeToBetterSlot moves the stop's arrival to the one predicted slot
// within ±2h that is strictly less crowded than every other slot in the
// window (and than the stop right now). Location and duration stay unchanged.
func (s *RouteService) retimeToBetterSlot(ctx context.Context, point *entities.RoutePoint) bool {
	windowStart := point.EstimatedArrivalTime.Add(-retimeWindow)
	windowEnd := point.EstimatedArrivalTime.Add(retimeWindow)

	var best *entities.CrowdPrediction
	unique := false
	for _, prediction := range s.crowd.Predict(ctx, point.LocationID, predictionHorizonHours) {
		if prediction.TimeSlot.Before(windowStart) || prediction.TimeSlot.After(windowEnd) {
			continue
		}
		switch {
		case best == nil || prediction.PredictedCrowdLevel.LessThan(best.PredictedCrowdLevel):
			best = prediction
			unique = true
		case prediction.PredictedCrowdLevel.Ordinal() == best.PredictedCrowdLevel.Ordinal():
			unique = false
		}
	}

	if best == nil || !unique || !best.PredictedCrowdLevel.LessThan(point.CrowdLevel) {
		return false
	}

	point.EstimatedArrivalTime = best.TimeSlot
	return true
}

// FindOptimalVisitTime picks the prediction within ±2h of the preferred time
// with the lowest crowd ordinal, tie-broken by the earliest slot. It returns
// nil when no prediction falls inside the window.
func (s *RouteService) FindOptimalVisitTime(ctx context.Context, locationID string, preferredTime time.Time) *entities.CrowdPrediction {
	windowStart := preferredTime.Add(-retimeWindow)
	windowEnd := preferredTime.Add(retimeWindow)

	var best *entities.CrowdPrediction
	for _, prediction := range s.crowd.Predict(ctx, locationID, predictionHorizonHours) {
		if prediction.TimeSlot.Before(windowStart) || prediction.TimeSlot.After(windowEnd) {
			continue
		}
		if best == nil || prediction.PredictedCrowdLevel.LessThan(best.PredictedCrowdLevel) {
			best = prediction
		}
	}
	return best
}

// RouteEfficiency reports the duration-weighted average of (1 - ordinal/4)
// across the route's stops, with crowd levels refreshed from the store. It is
// independent of optimization and used for reporting only.
func (s *RouteService) RouteEfficiency(ctx context.Context, route []entities.RoutePoint) float64 {
	var weighted, totalDuration float64
	for _, point := range route {
		level := point.CrowdLevel
		if snapshot, err := s.crowd.Get(ctx, point.LocationID); err == nil {
			level = snapshot.CrowdLevel
		}

		duration := float64(point.EstimatedDurationMinutes)
		weighted += duration * (1 - float64(level.Ordinal())/4)
		totalDuration += duration
	}
	if totalDuration == 0 {
		return 0
	}
	return weighted / totalDuration
}

// RecommendedDepartureTimes returns, per location, the first five future
// hourly slots within 24h predicted LOW or MODERATE, in chronological order.
func (s *RouteService) RecommendedDepartureTimes(ctx context.Context, locationIDs []string) map[string][]*entities.CrowdPrediction {
	results := make(map[string][]*entities.CrowdPrediction, len(locationIDs))
	for _, id := range locationIDs {
		var slots []*entities.CrowdPrediction
		for _, prediction := range s.crowd.Predict(ctx, id, predictionHorizonHours) {
			level := prediction.PredictedCrowdLevel
			if level != entities.CrowdLevelLow && level != entities.CrowdLevelModerate {
				continue
			}
			slots = append(slots, prediction)
			if len(slots) == maxDepartureSuggestions {
				break
			}
		}
		results[id] = slots
	}
	return results
}
