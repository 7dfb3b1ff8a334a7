package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"sort"

	"crowdwatch/internal/domain/entities"
	"crowdwatch/internal/geo"
	"crowdwatch/internal/repository"
)

// maxAlternatives caps how many substitutes a recommendation carries.
const maxAlternatives = 5

// minSimilarity is the cutoff below which a candidate is not worth suggesting.
const minSimilarity = 0.3

// relatedCategories maps a category to categories close enough to count as a
// partial match. Lookups are symmetric: a relation listed on either side holds
// for both.
var relatedCategories = map[string][]string{
	"theme-park": {"zoo", "aquarium", "park"},
	"museum":     {"gallery", "heritage", "temple"},
	"temple":     {"heritage", "museum"},
	"market":     {"shopping", "street-food"},
	"viewpoint":  {"park", "hiking"},
	"park":       {"viewpoint", "garden", "theme-park"},
}

func categoriesRelated(a, b string) bool {
	for _, related := range relatedCategories[a] {
		if related == b {
			return true
		}
	}
	for _, related := range relatedCategories[b] {
		if related == a {
			return true
		}
	}
	return false
}

// AlternativeService ranks less-crowded substitutes for an overcrowded
// location using a similarity/crowd-relief blend over the static catalog.
type AlternativeService struct {
	crowd   *CrowdService
	catalog repository.CatalogRepository
}

func NewAlternativeService(crowd *CrowdService, catalog repository.CatalogRepository) *AlternativeService {
	return &AlternativeService{
		crowd:   crowd,
		catalog: catalog,
	}
}

// FindAlternatives returns up to five ranked substitutes for the location, or
// nil when the location is not overcrowded or not in the catalog. Candidates
// must sit within maxDistanceMeters and currently be strictly less crowded
// than the source.
func (s *AlternativeService) FindAlternatives(ctx context.Context, locationID string, maxDistanceMeters float64) (*entities.AlternativeRecommendation, error) {
	source, err := s.crowd.Get(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("source snapshot %s: %w", locationID, err)
	}
	if !source.IsOvercrowded() {
		return nil, nil
	}

	sourceProfile, err := s.catalog.GetProfile(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("source profile %s: %w", locationID, err)
	}
	if sourceProfile == nil {
		return nil, nil
	}

	profiles, err := s.catalog.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	type scoredAlternative struct {
		alternative entities.AlternativeLocation
		score       float64
	}
	var candidates []scoredAlternative

	for _, candidate := range profiles {
		if candidate.ID == locationID {
			continue
		}

		distance := geo.HaversineDistance(
			sourceProfile.Coordinates.Latitude, sourceProfile.Coordinates.Longitude,
			candidate.Coordinates.Latitude, candidate.Coordinates.Longitude,
		)
		if distance > maxDistanceMeters {
			continue
		}

		snapshot, err := s.crowd.Get(ctx, candidate.ID)
		if err != nil {
			// A single failed candidate must not abort the search.
			log.Printf("[ALTERNATIVES] Skipping candidate %s: %v", candidate.ID, err)
			continue
		}
		if !snapshot.CrowdLevel.LessThan(source.CrowdLevel) {
			continue
		}

		similarity := profileSimilarity(sourceProfile, candidate)
		if similarity < minSimilarity {
			continue
		}

		// Blend how alike the candidate is with how much crowd relief it
		// offers; emptier locations get the larger relief share.
		relief := 1 - float64(snapshot.CrowdLevel.Ordinal())/4
		candidates = append(candidates, scoredAlternative{
			alternative: entities.AlternativeLocation{
				LocationID:                 candidate.ID,
				LocationName:               candidate.Name,
				Coordinates:                candidate.Coordinates,
				DistanceMeters:             distance,
				CrowdLevel:                 snapshot.CrowdLevel,
				Similarity:                 similarity,
				Category:                   candidate.Category,
				EstimatedTravelTimeMinutes: geo.TravelTimeMinutes(distance),
			},
			score: similarity*0.6 + relief*0.4,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	if len(candidates) > maxAlternatives {
		candidates = candidates[:maxAlternatives]
	}

	alternatives := make([]entities.AlternativeLocation, len(candidates))
	for i, c := range candidates {
		alternatives[i] = c.alternative
	}

	return &entities.AlternativeRecommendation{
		OriginalLocationID: locationID,
		Alternatives:       alternatives,
		Reason:             recommendationReason(source),
		GeneratedAt:        s.crowd.now(),
	}, nil
}

// FindBulkAlternatives runs the search per id, collecting only non-nil
// results. Individual failures are skipped so the batch always completes.
func (s *AlternativeService) FindBulkAlternatives(ctx context.Context, locationIDs []string, maxDistanceMeters float64) map[string]*entities.AlternativeRecommendation {
	results := make(map[string]*entities.AlternativeRecommendation)
	for _, id := range locationIDs {
		recommendation, err := s.FindAlternatives(ctx, id, maxDistanceMeters)
		if err != nil {
			log.Printf("[ALTERNATIVES] Skipping %s in bulk search: %v", id, err)
			continue
		}
		if recommendation != nil {
			results[id] = recommendation
		}
	}
	return results
}

// profileSimilarity scores how interchangeable two catalog entries are,
// clipped to [0, 1]:
//
//	0.4  identical category (0.2 for related categories)
//	0.3  tag overlap ratio
//	0.2  price range proximity
//	0.1  typical duration proximity
func profileSimilarity(a, b *entities.LocationProfile) float64 {
	similarity := 0.0

	if a.Category == b.Category {
		similarity += 0.4
	} else if categoriesRelated(a.Category, b.Category) {
		similarity += 0.2
	}

	similarity += 0.3 * a.TagOverlapRatio(b)

	priceGap := math.Abs(float64(a.PriceRange - b.PriceRange))
	similarity += 0.2 * math.Max(0, 1-priceGap/4)

	durationGap := math.Abs(float64(a.TypicalDurationMinutes - b.TypicalDurationMinutes))
	similarity += 0.1 * math.Max(0, 1-durationGap/240)

	return math.Min(1, math.Max(0, similarity))
}

// recommendationReason picks the wording by how severe the crowding is.
func recommendationReason(source *entities.CrowdSnapshot) string {
	switch source.CrowdLevel {
	case entities.CrowdLevelVeryHigh:
		return fmt.Sprintf("%s is extremely crowded right now. These nearby spots offer a similar experience with much shorter waits.", source.LocationName)
	case entities.CrowdLevelHigh:
		return fmt.Sprintf("%s is busier than usual. Consider one of these nearby alternatives.", source.LocationName)
	default:
		return fmt.Sprintf("Less crowded options near %s.", source.LocationName)
	}
}
