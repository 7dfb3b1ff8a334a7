package catalog

import "crowdwatch/internal/domain/entities"

// SeedProfiles returns the built-in Hong Kong catalog used when no SQLite
// catalog is configured.
func SeedProfiles() []*entities.LocationProfile {
	return []*entities.LocationProfile{
		{
			ID:       "hk-disneyland",
			Name:     "Hong Kong Disneyland",
			Category: "theme-park",
			Coordinates: entities.Coordinates{
				Latitude: 22.3130, Longitude: 114.0413,
			},
			Tags:                   []string{"family", "rides", "outdoor", "entertainment"},
			PriceRange:             4,
			TypicalDurationMinutes: 480,
		},
		{
			ID:       "ocean-park",
			Name:     "Ocean Park",
			Category: "theme-park",
			Coordinates: entities.Coordinates{
				Latitude: 22.2467, Longitude: 114.1757,
			},
			Tags:                   []string{"family", "rides", "animals", "outdoor"},
			PriceRange:             3,
			TypicalDurationMinutes: 420,
		},
		{
			ID:       "victoria-peak",
			Name:     "Victoria Peak",
			Category: "viewpoint",
			Coordinates: entities.Coordinates{
				Latitude: 22.2759, Longitude: 114.1455,
			},
			Tags:                   []string{"scenic", "outdoor", "photography"},
			PriceRange:             2,
			TypicalDurationMinutes: 150,
		},
		{
			ID:       "tsim-sha-tsui-promenade",
			Name:     "Tsim Sha Tsui Promenade",
			Category: "viewpoint",
			Coordinates: entities.Coordinates{
				Latitude: 22.2934, Longitude: 114.1722,
			},
			Tags:                   []string{"scenic", "outdoor", "photography", "harbour"},
			PriceRange:             1,
			TypicalDurationMinutes: 90,
		},
		{
			ID:       "ngong-ping-360",
			Name:     "Ngong Ping 360",
			Category: "viewpoint",
			Coordinates: entities.Coordinates{
				Latitude: 22.2539, Longitude: 113.9025,
			},
			Tags:                   []string{"scenic", "cable-car", "outdoor"},
			PriceRange:             3,
			TypicalDurationMinutes: 240,
		},
		{
			ID:       "wong-tai-sin-temple",
			Name:     "Wong Tai Sin Temple",
			Category: "temple",
			Coordinates: entities.Coordinates{
				Latitude: 22.3421, Longitude: 114.1933,
			},
			Tags:                   []string{"heritage", "culture", "religion"},
			PriceRange:             1,
			TypicalDurationMinutes: 90,
		},
		{
			ID:       "man-mo-temple",
			Name:     "Man Mo Temple",
			Category: "temple",
			Coordinates: entities.Coordinates{
				Latitude: 22.2839, Longitude: 114.1500,
			},
			Tags:                   []string{"heritage", "culture", "religion"},
			PriceRange:             1,
			TypicalDurationMinutes: 60,
		},
		{
			ID:       "temple-street-night-market",
			Name:     "Temple Street Night Market",
			Category: "market",
			Coordinates: entities.Coordinates{
				Latitude: 22.3050, Longitude: 114.1700,
			},
			Tags:                   []string{"shopping", "street-food", "nightlife"},
			PriceRange:             1,
			TypicalDurationMinutes: 120,
		},
		{
			ID:       "ladies-market",
			Name:     "Ladies' Market",
			Category: "market",
			Coordinates: entities.Coordinates{
				Latitude: 22.3194, Longitude: 114.1705,
			},
			Tags:                   []string{"shopping", "street-food", "bargains"},
			PriceRange:             1,
			TypicalDurationMinutes: 120,
		},
		{
			ID:       "hk-museum-of-history",
			Name:     "Hong Kong Museum of History",
			Category: "museum",
			Coordinates: entities.Coordinates{
				Latitude: 22.3015, Longitude: 114.1774,
			},
			Tags:                   []string{"culture", "indoor", "heritage"},
			PriceRange:             1,
			TypicalDurationMinutes: 150,
		},
		{
			ID:       "m-plus-museum",
			Name:     "M+ Museum",
			Category: "museum",
			Coordinates: entities.Coordinates{
				Latitude: 22.3009, Longitude: 114.1604,
			},
			Tags:                   []string{"culture", "indoor", "art"},
			PriceRange:             2,
			TypicalDurationMinutes: 180,
		},
		{
			ID:       "hong-kong-park",
			Name:     "Hong Kong Park",
			Category: "park",
			Coordinates: entities.Coordinates{
				Latitude: 22.2770, Longitude: 114.1618,
			},
			Tags:                   []string{"outdoor", "garden", "family"},
			PriceRange:             1,
			TypicalDurationMinutes: 90,
		},
		{
			ID:       "victoria-park",
			Name:     "Victoria Park",
			Category: "park",
			Coordinates: entities.Coordinates{
				Latitude: 22.2820, Longitude: 114.1882,
			},
			Tags:                   []string{"outdoor", "garden", "sports"},
			PriceRange:             1,
			TypicalDurationMinutes: 90,
		},
		{
			ID:       "avenue-of-stars",
			Name:     "Avenue of Stars",
			Category: "viewpoint",
			Coordinates: entities.Coordinates{
				Latitude: 22.2932, Longitude: 114.1740,
			},
			Tags:                   []string{"scenic", "outdoor", "harbour", "photography"},
			PriceRange:             1,
			TypicalDurationMinutes: 60,
		},
	}
}
