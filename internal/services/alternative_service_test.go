package services

import (
	"context"
	"testing"

	"crowdwatch/internal/domain/entities"
)

func TestFindAlternatives_SuggestsLessCrowdedTwin(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	env.seedSnapshot(t, "big-park", 950, 60) // VERY_HIGH
	env.seedSnapshot(t, "small-park", 100, 2) // LOW, ~110m away
	env.seedSnapshot(t, "far-museum", 100, 2) // LOW, far outside the radius

	recommendation, err := env.alternatives.FindAlternatives(ctx, "big-park", 5000)
	if err != nil {
		t.Fatalf("FindAlternatives failed: %v", err)
	}
	if recommendation == nil {
		t.Fatal("Expected a recommendation for an overcrowded location")
	}
	if recommendation.OriginalLocationID != "big-park" {
		t.Errorf("Expected original location big-park, got %s", recommendation.OriginalLocationID)
	}
	if len(recommendation.Alternatives) != 1 {
		t.Fatalf("Expected exactly 1 alternative, got %d", len(recommendation.Alternatives))
	}

	best := recommendation.Alternatives[0]
	if best.LocationID != "small-park" {
		t.Errorf("Expected small-park as the alternative, got %s", best.LocationID)
	}
	if !best.CrowdLevel.LessThan(entities.CrowdLevelVeryHigh) {
		t.Errorf("Alternative must be strictly less crowded, got %s", best.CrowdLevel)
	}
	if best.Similarity < minSimilarity || best.Similarity > 1 {
		t.Errorf("Similarity %v out of range", best.Similarity)
	}
	if best.DistanceMeters <= 0 || best.DistanceMeters > 5000 {
		t.Errorf("Distance %v outside the search radius", best.DistanceMeters)
	}
	if best.EstimatedTravelTimeMinutes < 1 {
		t.Errorf("Expected a nonzero travel time, got %d", best.EstimatedTravelTimeMinutes)
	}
	if recommendation.Reason == "" {
		t.Error("Expected a human-readable reason")
	}
	if !recommendation.GeneratedAt.Equal(testClock) {
		t.Errorf("GeneratedAt = %v, expected %v", recommendation.GeneratedAt, testClock)
	}
}

func TestFindAlternatives_NotOvercrowded(t *testing.T) {
	env := newTestEnv()

	env.seedSnapshot(t, "small-park", 100, 2) // LOW

	recommendation, err := env.alternatives.FindAlternatives(context.Background(), "small-park", 5000)
	if err != nil {
		t.Fatalf("FindAlternatives failed: %v", err)
	}
	if recommendation != nil {
		t.Errorf("Expected no recommendation for a LOW location, got %+v", recommendation)
	}
}

func TestFindAlternatives_UncatalogedLocation(t *testing.T) {
	env := newTestEnv()

	env.seedSnapshot(t, "mystery-spot", 950, 60) // overcrowded but not in catalog

	recommendation, err := env.alternatives.FindAlternatives(context.Background(), "mystery-spot", 5000)
	if err != nil {
		t.Fatalf("FindAlternatives failed: %v", err)
	}
	if recommendation != nil {
		t.Errorf("Expected no recommendation without a catalog profile, got %+v", recommendation)
	}
}

func TestFindAlternatives_RadiusExcludesCandidates(t *testing.T) {
	env := newTestEnv()

	env.seedSnapshot(t, "big-park", 950, 60)
	env.seedSnapshot(t, "small-park", 100, 2)

	recommendation, err := env.alternatives.FindAlternatives(context.Background(), "big-park", 50)
	if err != nil {
		t.Fatalf("FindAlternatives failed: %v", err)
	}
	if recommendation == nil {
		t.Fatal("Expected a recommendation even when no candidate qualifies")
	}
	if len(recommendation.Alternatives) != 0 {
		t.Errorf("Expected no alternatives inside a 50m radius, got %d", len(recommendation.Alternatives))
	}
}

func TestFindAlternatives_SkipsEquallyCrowdedCandidates(t *testing.T) {
	env := newTestEnv()

	env.seedSnapshot(t, "big-park", 950, 60)   // VERY_HIGH
	env.seedSnapshot(t, "small-park", 920, 50) // also VERY_HIGH

	recommendation, err := env.alternatives.FindAlternatives(context.Background(), "big-park", 5000)
	if err != nil {
		t.Fatalf("FindAlternatives failed: %v", err)
	}
	if len(recommendation.Alternatives) != 0 {
		t.Errorf("Equally crowded candidates must be filtered out, got %d alternatives", len(recommendation.Alternatives))
	}
}

func TestFindBulkAlternatives(t *testing.T) {
	env := newTestEnv()

	env.seedSnapshot(t, "big-park", 950, 60)
	env.seedSnapshot(t, "small-park", 100, 2)

	results := env.alternatives.FindBulkAlternatives(context.Background(), []string{"big-park", "small-park"}, 5000)
	if len(results) != 1 {
		t.Fatalf("Expected 1 entry (only the overcrowded location), got %d", len(results))
	}
	if _, ok := results["big-park"]; !ok {
		t.Error("Expected big-park in bulk results")
	}
}

func TestProfileSimilarity(t *testing.T) {
	themePark := &entities.LocationProfile{
		Category:               "theme-park",
		Tags:                   []string{"rides", "family", "outdoor"},
		PriceRange:             4,
		TypicalDurationMinutes: 240,
	}
	twin := &entities.LocationProfile{
		Category:               "theme-park",
		Tags:                   []string{"rides", "family", "outdoor"},
		PriceRange:             4,
		TypicalDurationMinutes: 240,
	}
	park := &entities.LocationProfile{
		Category:               "park",
		Tags:                   []string{"outdoor", "garden"},
		PriceRange:             1,
		TypicalDurationMinutes: 90,
	}
	museum := &entities.LocationProfile{
		Category:               "museum",
		Tags:                   []string{"indoor", "history"},
		PriceRange:             2,
		TypicalDurationMinutes: 120,
	}

	if got := profileSimilarity(themePark, twin); got != 1.0 {
		t.Errorf("Identical profiles: similarity = %v, expected 1.0", got)
	}

	pairs := []struct {
		name string
		a, b *entities.LocationProfile
	}{
		{"theme park vs park", themePark, park},
		{"theme park vs museum", themePark, museum},
		{"park vs museum", park, museum},
	}
	for _, pair := range pairs {
		t.Run(pair.name, func(t *testing.T) {
			forward := profileSimilarity(pair.a, pair.b)
			backward := profileSimilarity(pair.b, pair.a)
			if forward < 0 || forward > 1 {
				t.Errorf("Similarity %v out of [0, 1]", forward)
			}
			if forward != backward {
				t.Errorf("Similarity should be symmetric, got %v and %v", forward, backward)
			}
		})
	}

	// Related categories earn a partial category score, so a theme park is
	// more similar to a park than to an unrelated museum.
	if profileSimilarity(themePark, park) <= profileSimilarity(themePark, museum) {
		t.Error("Related category should score above an unrelated one")
	}
}

func TestCategoriesRelated_Symmetric(t *testing.T) {
	if !categoriesRelated("theme-park", "park") {
		t.Error("theme-park and park should be related")
	}
	if !categoriesRelated("park", "theme-park") {
		t.Error("Relation should hold in both directions")
	}
	if categoriesRelated("theme-park", "museum") {
		t.Error("theme-park and museum should not be related")
	}
}
