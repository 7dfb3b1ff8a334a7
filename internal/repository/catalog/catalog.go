// Package catalog loads the read-only location catalog. The backing store is
// a SQLite file; when none is available the built-in seed set is used so the
// service can start with no external state.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "modernc.org/sqlite"

	"crowdwatch/internal/domain/entities"
)

// Repository serves location profiles from an immutable in-memory map built
// at load time. No locking is needed: nothing mutates after construction.
type Repository struct {
	profiles map[string]*entities.LocationProfile
	order    []string
}

// NewFromProfiles builds a catalog from an in-memory profile list.
func NewFromProfiles(profiles []*entities.LocationProfile) *Repository {
	r := &Repository{
		profiles: make(map[string]*entities.LocationProfile, len(profiles)),
		order:    make([]string, 0, len(profiles)),
	}
	for _, p := range profiles {
		if _, exists := r.profiles[p.ID]; exists {
			continue
		}
		r.profiles[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r
}

// Load opens the SQLite catalog at path and reads every location row. An
// empty path, or a database that cannot be opened or queried, falls back to
// the built-in seed catalog.
func Load(path string) *Repository {
	if path == "" {
		return NewFromProfiles(SeedProfiles())
	}

	profiles, err := loadFromSQLite(path)
	if err != nil {
		log.Printf("[CATALOG] %v; using built-in seed catalog", err)
		return NewFromProfiles(SeedProfiles())
	}

	log.Printf("[CATALOG] Loaded %d locations from %s", len(profiles), path)
	return NewFromProfiles(profiles)
}

func loadFromSQLite(path string) ([]*entities.LocationProfile, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog db: %w", err)
	}
	defer db.Close()

	rows, err := db.Query(`
		SELECT id, name, category, lat, lng, tags, price_range, typical_duration_minutes
		FROM locations
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query catalog: %w", err)
	}
	defer rows.Close()

	var profiles []*entities.LocationProfile
	for rows.Next() {
		var p entities.LocationProfile
		var tagsCSV string
		if err := rows.Scan(&p.ID, &p.Name, &p.Category,
			&p.Coordinates.Latitude, &p.Coordinates.Longitude,
			&tagsCSV, &p.PriceRange, &p.TypicalDurationMinutes); err != nil {
			return nil, fmt.Errorf("scan catalog row: %w", err)
		}
		p.Tags = splitTags(tagsCSV)
		profiles = append(profiles, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalog rows: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("catalog at %s has no locations", path)
	}
	return profiles, nil
}

func splitTags(csv string) []string {
	if csv == "" {
		return nil
	}
	parts := strings.Split(csv, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		if tag := strings.TrimSpace(part); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// GetProfile returns the profile for a location, or (nil, nil) if the
// location is not in the catalog.
func (r *Repository) GetProfile(ctx context.Context, locationID string) (*entities.LocationProfile, error) {
	return r.profiles[locationID], nil
}

// ListProfiles returns every profile in load order.
func (r *Repository) ListProfiles(ctx context.Context) ([]*entities.LocationProfile, error) {
	profiles := make([]*entities.LocationProfile, 0, len(r.order))
	for _, id := range r.order {
		profiles = append(profiles, r.profiles[id])
	}
	return profiles, nil
}
