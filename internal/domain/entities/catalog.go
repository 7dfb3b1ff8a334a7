package entities

// LocationProfile is a catalog entry describing a visitable location.
// Profiles are reference data: loaded once at startup and immutable after.
type LocationProfile struct {
	ID                     string      `json:"id"`
	Name                   string      `json:"name"`
	Category               string      `json:"category"`
	Coordinates            Coordinates `json:"coordinates"`
	Tags                   []string    `json:"tags"`
	PriceRange             int         `json:"price_range"` // 1 (cheap) to 4 (expensive)
	TypicalDurationMinutes int         `json:"typical_duration_minutes"`
}

// HasTag reports whether the profile carries the given tag.
func (p *LocationProfile) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// TagOverlapRatio returns |tags(p) ∩ tags(other)| / max(|tags(p)|, |tags(other)|),
// or 0 when either side has no tags.
func (p *LocationProfile) TagOverlapRatio(other *LocationProfile) float64 {
	if len(p.Tags) == 0 || len(other.Tags) == 0 {
		return 0
	}

	shared := 0
	for _, t := range p.Tags {
		if other.HasTag(t) {
			shared++
		}
	}

	max := len(p.Tags)
	if len(other.Tags) > max {
		max = len(other.Tags)
	}
	return float64(shared) / float64(max)
}
